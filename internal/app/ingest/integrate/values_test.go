package integrate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

func TestConcatenateAliases(t *testing.T) {
	tests := []struct {
		name  string
		elems []any
		want  string
	}{
		{"mixed", []any{[]string{"g1", "g2"}, "alias1", []string{"g3"}}, "g1;g2;alias1;g3;"},
		{"decoded json list", []any{"BRCA1", []any{"RNF53", "BRCC1"}}, "BRCA1;RNF53;BRCC1;"},
		{"single string", []any{"disorder"}, "disorder;"},
		{"empty list", []any{[]any{}}, ";"},
		{"null", []any{"A", nil}, "A;;"},
		{"nothing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConcatenateAliases(tt.elems...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcatenateAliases_UnsupportedType(t *testing.T) {
	_, err := ConcatenateAliases("a", 42)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)

	_, err = ConcatenateAliases([]any{"a", map[string]any{}})
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestParseIDs(t *testing.T) {
	input := []string{"MIM 618494", "no id here", "PMID: 30827498"}

	tests := []struct {
		name   string
		strs   []string
		digits int
		want   []string
	}{
		{"six digits", input, 6, []string{"618494"}},
		{"eight digits", input, 8, []string{"30827498"}},
		{"first match per element", []string{"OMIM:100100, 200200"}, 6, []string{"100100"}},
		{"duplicates kept", []string{"612345", "x 612345 y"}, 6, []string{"612345", "612345"}},
		{"longer run skipped", []string{"1234567 then 654321"}, 6, []string{"654321"}},
		{"nothing matches", []string{"abc"}, 6, []string{}},
		{"empty input", nil, 8, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIDs(tt.strs, tt.digits))
		})
	}
}

func TestToStrings(t *testing.T) {
	got, err := toStrings([]any{"a", json.Number("12"), nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "12", ""}, got)

	got, err = toStrings("solo")
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, got)

	got, err = toStrings(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = toStrings(map[string]any{})
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestGenCCFields_Columns(t *testing.T) {
	f := DefaultGenCCFields()
	f.Submitter = f.GeneID

	cols := f.Columns()
	assert.Len(t, cols, 10)
	assert.Equal(t, "gene_curie", cols[0])
}
