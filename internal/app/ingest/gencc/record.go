package gencc

import "iter"

// Record is one reassembled logical row, restricted to the declared columns.
type Record struct {
	ID     string
	Fields map[string]string
}

// Get returns the value of the named column, or "" when it was not declared.
func (r Record) Get(column string) string {
	return r.Fields[column]
}

// RecordSet holds reassembled records keyed by record ID in input order.
// Putting an ID that is already present replaces its values but keeps its
// original position.
type RecordSet struct {
	columns []string
	order   []string
	byID    map[string]Record
}

// NewRecordSet creates an empty set for the given column names.
func NewRecordSet(columns []string) *RecordSet {
	return &RecordSet{
		columns: columns,
		byID:    make(map[string]Record),
	}
}

// Put inserts or replaces rec.
func (s *RecordSet) Put(rec Record) {
	if _, ok := s.byID[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.byID[rec.ID] = rec
}

// Get returns the record with the given ID.
func (s *RecordSet) Get(id string) (Record, bool) {
	rec, ok := s.byID[id]
	return rec, ok
}

// Columns returns the declared column names.
func (s *RecordSet) Columns() []string { return s.columns }

// IDs returns record IDs in input order.
func (s *RecordSet) IDs() []string { return s.order }

// Len returns the number of distinct records.
func (s *RecordSet) Len() int { return len(s.order) }

// All iterates records in input order.
func (s *RecordSet) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, id := range s.order {
			if !yield(s.byID[id]) {
				return
			}
		}
	}
}
