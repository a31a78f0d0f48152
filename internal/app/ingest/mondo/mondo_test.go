package mondo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const header = "#This is a MONDO mapping file\n" +
	"subject_id\tsubject_label\tpredicate_id\tobject_id\tobject_label\tmapping_justification\n"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuildFiles_AccumulatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	exact := writeFile(t, dir, "mondo_exactmatch_omim.sssom.tsv", header+
		"MONDO:0001\tdisease 0001\tskos:exactMatch\tOMIM:0001\tdisease 0001\tManual\n")
	broad := writeFile(t, dir, "mondo_broadmatch_omim.sssom.tsv", header+
		"MONDO:0001\tdisease 0001\tskos:broadMatch\tOMIM:0002\tdisease 0001\tManual\n")

	table, err := NewBuilder().BuildFiles(exact, broad)
	require.NoError(t, err)

	got, ok := table.Lookup("MONDO:0001")
	require.True(t, ok)
	assert.Equal(t, []string{"OMIM:0001", "OMIM:0002"}, got)
	assert.Equal(t, 1, table.Len())
}

func TestBuilder_Add(t *testing.T) {
	input := header +
		"MONDO:0001\td1\tskos:exactMatch\tOMIM:100\td1\tManual\n" +
		"MONDO:0002\td2\tskos:exactMatch\tOMIM:200\td2\tManual\n" +
		"MONDO:0001\td1\tskos:exactMatch\tOMIM:101\td1\tManual\n"

	table := NewTable()
	require.NoError(t, NewBuilder().Add(table, strings.NewReader(input)))

	assert.Equal(t, 2, table.Len())
	got, _ := table.Lookup("MONDO:0001")
	assert.Equal(t, []string{"OMIM:100", "OMIM:101"}, got)

	_, ok := table.Lookup("MONDO:9999")
	assert.False(t, ok)

	pairs := slices.Collect(table.Pairs())
	assert.Equal(t, []Pair{
		{Source: "MONDO:0001", Target: "OMIM:100", Position: 0},
		{Source: "MONDO:0001", Target: "OMIM:101", Position: 1},
		{Source: "MONDO:0002", Target: "OMIM:200", Position: 0},
	}, pairs)
}

func TestBuilder_MalformedRow(t *testing.T) {
	input := header + "MONDO:0001\td1\tskos:exactMatch\n"

	err := NewBuilder().Add(NewTable(), strings.NewReader(input))
	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}

func TestBuilder_MissingFile(t *testing.T) {
	_, err := NewBuilder().BuildFiles(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
}

func TestBuildRegistry_RoutesByFileName(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "mondo_exactmatch_omim.sssom.tsv", header+
			"MONDO:0001\td\tskos:exactMatch\tOMIM:0001\td\tManual\n"),
		writeFile(t, dir, "mondo_exactmatch_ORPHA.sssom.tsv", header+
			"MONDO:0001\td\tskos:exactMatch\tOrphanet:77\td\tManual\n"),
	}

	reg, err := BuildRegistry(NewBuilder(), paths, map[string]string{
		OntologyOMIM:     "omim",
		OntologyOrphanet: "orpha",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{OntologyOMIM, OntologyOrphanet}, reg.Ontologies())

	got, ok := reg.Lookup(OntologyOMIM, "MONDO:0001")
	require.True(t, ok)
	assert.Equal(t, []string{"OMIM:0001"}, got)

	got, ok = reg.Lookup(OntologyOrphanet, "MONDO:0001")
	require.True(t, ok)
	assert.Equal(t, []string{"Orphanet:77"}, got)

	_, ok = reg.Lookup("doid", "MONDO:0001")
	assert.False(t, ok)
}

func TestRegistry_NilSafe(t *testing.T) {
	var reg *Registry
	_, ok := reg.Lookup(OntologyOMIM, "MONDO:1")
	assert.False(t, ok)
	assert.Zero(t, reg.Table(OntologyOMIM).Len())
	assert.Empty(t, slices.Collect(NewRegistry(nil).Table("x").Pairs()))
}
