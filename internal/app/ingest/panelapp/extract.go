// Package panelapp projects flat value lists out of nested PanelApp API
// records according to declared key specifications.
package panelapp

import (
	"fmt"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Extracted is the flat projection of one record. Keys[i] is the path
// ("name" or "parent.child") that produced Values[i].
type Extracted struct {
	Keys   []string
	Values []any
}

// Get returns the value extracted under path.
func (e Extracted) Get(path string) (any, bool) {
	for i, k := range e.Keys {
		if k == path {
			return e.Values[i], true
		}
	}
	return nil, false
}

// Extract applies specs to record in order. A plain field contributes
// record[name] verbatim; a nested group contributes record[parent][child] for
// each child. Every key must be present.
func Extract(record map[string]any, specs []domain.KeySpec) (Extracted, error) {
	var out Extracted
	for _, spec := range specs {
		switch s := spec.(type) {
		case domain.PlainField:
			v, ok := record[s.Name]
			if !ok {
				return Extracted{}, domain.SchemaError(s.Name, "record")
			}
			out.Keys = append(out.Keys, s.Name)
			out.Values = append(out.Values, v)

		case domain.NestedFields:
			raw, ok := record[s.Parent]
			if !ok {
				return Extracted{}, domain.SchemaError(s.Parent, "record")
			}
			nested, ok := raw.(map[string]any)
			if !ok {
				return Extracted{}, fmt.Errorf("%w: key %q is %T, not an object", domain.ErrSchemaMismatch, s.Parent, raw)
			}
			for _, child := range s.Children {
				v, ok := nested[child]
				if !ok {
					return Extracted{}, domain.SchemaError(child, fmt.Sprintf("%q", s.Parent))
				}
				out.Keys = append(out.Keys, s.Parent+"."+child)
				out.Values = append(out.Values, v)
			}

		default:
			return Extracted{}, fmt.Errorf("unsupported key spec %T", spec)
		}
	}
	return out, nil
}
