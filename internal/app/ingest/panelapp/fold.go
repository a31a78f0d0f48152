package panelapp

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// CompositeKey identifies a record as "<entity_name>_panel<panel.id>".
func CompositeKey(record map[string]any) (string, error) {
	name, ok := record["entity_name"]
	if !ok {
		return "", domain.SchemaError("entity_name", "record")
	}
	rawPanel, ok := record["panel"]
	if !ok {
		return "", domain.SchemaError("panel", "record")
	}
	panel, ok := rawPanel.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: key \"panel\" is %T, not an object", domain.ErrSchemaMismatch, rawPanel)
	}
	id, ok := panel["id"]
	if !ok {
		return "", domain.SchemaError("id", `"panel"`)
	}
	return fmt.Sprintf("%v_panel%s", name, formatID(id)), nil
}

// formatID renders numeric IDs without exponent notation.
func formatID(v any) string {
	switch id := v.(type) {
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// ExtractedSet holds extracted records keyed by composite key in input order.
// A repeated key replaces the earlier entry (last write wins) and keeps the
// position of the first insertion.
type ExtractedSet struct {
	order      []string
	byKey      map[string]Extracted
	collisions int
}

// NewExtractedSet creates an empty set.
func NewExtractedSet() *ExtractedSet {
	return &ExtractedSet{byKey: make(map[string]Extracted)}
}

// Put inserts or replaces the entry for key.
func (s *ExtractedSet) Put(key string, e Extracted) {
	if _, ok := s.byKey[key]; ok {
		s.collisions++
	} else {
		s.order = append(s.order, key)
	}
	s.byKey[key] = e
}

// Get returns the entry for key.
func (s *ExtractedSet) Get(key string) (Extracted, bool) {
	e, ok := s.byKey[key]
	return e, ok
}

// Keys returns composite keys in input order.
func (s *ExtractedSet) Keys() []string { return s.order }

// Len returns the number of distinct keys.
func (s *ExtractedSet) Len() int { return len(s.order) }

// Collisions returns how many Put calls replaced an existing entry.
func (s *ExtractedSet) Collisions() int { return s.collisions }

// All iterates entries in input order.
func (s *ExtractedSet) All() iter.Seq2[string, Extracted] {
	return func(yield func(string, Extracted) bool) {
		for _, k := range s.order {
			if !yield(k, s.byKey[k]) {
				return
			}
		}
	}
}

// Fold extracts every record and keys it by CompositeKey.
func Fold(records []map[string]any, specs []domain.KeySpec) (*ExtractedSet, error) {
	set := NewExtractedSet()
	for i, rec := range records {
		key, err := CompositeKey(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		e, err := Extract(rec, specs)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		set.Put(key, e)
	}
	return set, nil
}
