package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKeySpecs_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	src := `
keys:
  - entity_name
  - hobby: [game, waterski]
  - gene_data:
      - hgnc_id
  - publications
`
	var doc struct {
		Keys KeySpecs `yaml:"keys"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	want := KeySpecs{
		PlainField{Name: "entity_name"},
		NestedFields{Parent: "hobby", Children: []string{"game", "waterski"}},
		NestedFields{Parent: "gene_data", Children: []string{"hgnc_id"}},
		PlainField{Name: "publications"},
	}
	assert.Equal(t, want, doc.Keys)
	assert.Equal(t,
		[]string{"entity_name", "hobby.game", "hobby.waterski", "gene_data.hgnc_id", "publications"},
		doc.Keys.Paths(),
	)
}

func TestKeySpecs_UnmarshalYAML_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"not a sequence", "keys: entity_name"},
		{"two parents", "keys:\n  - {a: [x], b: [y]}"},
		{"children not a list", "keys:\n  - {a: x}"},
		{"empty children", "keys:\n  - {a: []}"},
		{"nested sequence", "keys:\n  - [a, b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var doc struct {
				Keys KeySpecs `yaml:"keys"`
			}
			assert.Error(t, yaml.Unmarshal([]byte(tt.src), &doc))
		})
	}
}

func TestAssociation_Validate(t *testing.T) {
	t.Parallel()

	ok := Association{Source: SourceGenCC, SourceRecordID: "GENCC_000101"}
	assert.NoError(t, ok.Validate())

	err := Association{Source: "clinvar"}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}
