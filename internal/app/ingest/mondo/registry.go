package mondo

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Well-known target ontologies.
const (
	OntologyOMIM     = "omim"
	OntologyOrphanet = "orphanet"
)

// Registry holds one read-only Table per target ontology.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry wraps prebuilt tables.
func NewRegistry(tables map[string]*Table) *Registry {
	if tables == nil {
		tables = make(map[string]*Table)
	}
	return &Registry{tables: tables}
}

// BuildRegistry builds a table for every target ontology. targets maps an
// ontology name to the substring that selects its files; the match against
// each file's base name is case-insensitive. A file may feed several tables.
func BuildRegistry(b *Builder, paths []string, targets map[string]string) (*Registry, error) {
	tables := make(map[string]*Table, len(targets))
	for _, ontology := range slices.Sorted(maps.Keys(targets)) {
		needle := strings.ToLower(targets[ontology])
		t := NewTable()
		for _, p := range paths {
			if !strings.Contains(strings.ToLower(filepath.Base(p)), needle) {
				continue
			}
			if err := b.AddFile(t, p); err != nil {
				return nil, fmt.Errorf("build %s table: %w", ontology, err)
			}
		}
		tables[ontology] = t
	}
	return &Registry{tables: tables}, nil
}

// Table returns the table for ontology, or nil when none was built.
func (r *Registry) Table(ontology string) *Table {
	if r == nil {
		return nil
	}
	return r.tables[ontology]
}

// Ontologies returns the target ontology names in sorted order.
func (r *Registry) Ontologies() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.tables))
}

// Lookup resolves id through the table for ontology.
func (r *Registry) Lookup(ontology, id string) ([]string, bool) {
	return r.Table(ontology).Lookup(id)
}
