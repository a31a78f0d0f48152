package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// KeySpec declares which values to project out of one nested record.
// It is either a PlainField or a NestedFields group.
type KeySpec interface {
	// Paths returns the key paths produced by the spec, in declared order.
	// Nested paths are written "parent.child".
	Paths() []string

	keySpec()
}

// PlainField projects record[Name] verbatim.
type PlainField struct {
	Name string
}

// NestedFields projects record[Parent][child] for every child, one level deep.
type NestedFields struct {
	Parent   string
	Children []string
}

func (PlainField) keySpec()   {}
func (NestedFields) keySpec() {}

func (f PlainField) Paths() []string { return []string{f.Name} }

func (f NestedFields) Paths() []string {
	paths := make([]string, len(f.Children))
	for i, c := range f.Children {
		paths[i] = f.Parent + "." + c
	}
	return paths
}

// KeySpecs is an ordered list of key specifications.
type KeySpecs []KeySpec

// Paths flattens the paths of every spec in order.
func (s KeySpecs) Paths() []string {
	var paths []string
	for _, spec := range s {
		paths = append(paths, spec.Paths()...)
	}
	return paths
}

// UnmarshalYAML implements yaml.Unmarshaler for KeySpecs.
// Accepts a sequence whose items are either:
//   - a scalar: "phenotypes"
//   - a single-entry mapping: {gene_data: [hgnc_id, hgnc_symbol]}
func (s *KeySpecs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("key specs: expected sequence, got %v", node.Kind)
	}

	specs := make(KeySpecs, 0, len(node.Content))
	for i, item := range node.Content {
		spec, err := decodeKeySpec(item)
		if err != nil {
			return fmt.Errorf("key specs[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}

	*s = specs
	return nil
}

func decodeKeySpec(node *yaml.Node) (KeySpec, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return nil, err
		}
		if name == "" {
			return nil, fmt.Errorf("empty field name")
		}
		return PlainField{Name: name}, nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, fmt.Errorf("nested key spec must have exactly one parent, got %d", len(node.Content)/2)
		}
		var parent string
		if err := node.Content[0].Decode(&parent); err != nil {
			return nil, err
		}
		var children []string
		if err := node.Content[1].Decode(&children); err != nil {
			return nil, fmt.Errorf("children of %q: %w", parent, err)
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("children of %q: empty list", parent)
		}
		return NestedFields{Parent: parent, Children: children}, nil

	default:
		return nil, fmt.Errorf("expected string or single-key mapping, got %v", node.Kind)
	}
}
