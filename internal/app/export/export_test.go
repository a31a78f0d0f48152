package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// pagedLister serves rows in pages and records the filters it was called with.
type pagedLister struct {
	rows    []domain.Association
	filters []domain.AssociationFilter
	err     error
}

func (l *pagedLister) List(_ context.Context, f domain.AssociationFilter) ([]domain.Association, error) {
	l.filters = append(l.filters, f)
	if l.err != nil {
		return nil, l.err
	}
	if f.Offset >= len(l.rows) {
		return nil, nil
	}
	end := min(f.Offset+f.Limit, len(l.rows))
	return l.rows[f.Offset:end], nil
}

func makeRows(n int) []domain.Association {
	rows := make([]domain.Association, n)
	for i := range rows {
		rows[i] = domain.Association{
			RunID:              uuid.New(),
			Source:             domain.SourceGenCC,
			SourceRecordID:     "GENCC_" + strings.Repeat("0", i+1),
			GeneSymbol:         "SKI",
			PrediseaseOtherIDs: []string{"OMIM:182212", "Orphanet:2462"},
			PMIDs:              []string{"23023332"},
		}
	}
	return rows
}

func TestWrite_Pages(t *testing.T) {
	lister := &pagedLister{rows: makeRows(5)}
	var buf bytes.Buffer

	gencc := domain.SourceGenCC
	n, err := Write(context.Background(), lister, domain.AssociationFilter{Source: &gencc, Limit: 2, Offset: 7}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.Len(t, lister.filters, 3)
	assert.Equal(t, 0, lister.filters[0].Offset)
	assert.Equal(t, 4, lister.filters[2].Offset)
	assert.Equal(t, &gencc, lister.filters[2].Source)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, strings.Join(Header, "\t"), lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, len(Header))
	assert.Equal(t, "gencc", fields[0])
	assert.Equal(t, "OMIM:182212|Orphanet:2462", fields[7])
	assert.Equal(t, "23023332", fields[15])
}

func TestWrite_ExactPageBoundary(t *testing.T) {
	lister := &pagedLister{rows: makeRows(4)}
	var buf bytes.Buffer

	n, err := Write(context.Background(), lister, domain.AssociationFilter{Limit: 2}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Len(t, lister.filters, 3, "a full last page needs one more empty call")
}

func TestWrite_DefaultPageSize(t *testing.T) {
	lister := &pagedLister{}
	var buf bytes.Buffer

	n, err := Write(context.Background(), lister, domain.AssociationFilter{}, &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.Len(t, lister.filters, 1)
	assert.Equal(t, DefaultPageSize, lister.filters[0].Limit)
	assert.Equal(t, strings.Join(Header, "\t")+"\n", buf.String())
}

func TestWrite_ListError(t *testing.T) {
	lister := &pagedLister{err: errors.New("connection refused")}

	_, err := Write(context.Background(), lister, domain.AssociationFilter{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list associations")
}
