// Package mondo builds the cross-reference tables that resolve MONDO disease
// IDs into other ontologies from MONDO SSSOM mapping files.
package mondo

import "iter"

// Table maps a source-ontology ID to the ordered target IDs collected for it.
// Targets accumulate across rows and files; nothing is ever overwritten.
type Table struct {
	order   []string
	targets map[string][]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{targets: make(map[string][]string)}
}

// Append adds target to the list for source.
func (t *Table) Append(source, target string) {
	if _, ok := t.targets[source]; !ok {
		t.order = append(t.order, source)
	}
	t.targets[source] = append(t.targets[source], target)
}

// Lookup returns the targets for source. A miss is not an error.
func (t *Table) Lookup(source string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	targets, ok := t.targets[source]
	return targets, ok
}

// Len returns the number of distinct source IDs.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Pair is one source → target entry. Position is the index of Target within
// the source's list.
type Pair struct {
	Source   string
	Target   string
	Position int
}

// Pairs iterates every entry in insertion order.
func (t *Table) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		if t == nil {
			return
		}
		for _, src := range t.order {
			for i, tgt := range t.targets[src] {
				if !yield(Pair{Source: src, Target: tgt, Position: i}) {
					return
				}
			}
		}
	}
}
