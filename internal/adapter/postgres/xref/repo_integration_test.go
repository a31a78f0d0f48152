//go:build integration

package xref_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/xref"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

func TestRepo_BulkInsertAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Reset(t, pool)
	run := testhelper.SeedRun(t, pool)

	repo := xref.New(pool)
	ctx := context.Background()

	pairs := []domain.OntologyXref{
		{TargetOntology: "omim", SourceID: "MONDO:0002", Position: 0, TargetID: "OMIM:0003", RunID: run.ID},
		{TargetOntology: "omim", SourceID: "MONDO:0001", Position: 0, TargetID: "OMIM:0001", RunID: run.ID},
		{TargetOntology: "omim", SourceID: "MONDO:0001", Position: 1, TargetID: "OMIM:0002", RunID: run.ID},
		{TargetOntology: "orphanet", SourceID: "MONDO:0001", Position: 0, TargetID: "Orphanet:1"},
	}

	n, err := repo.BulkInsert(ctx, pairs)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	omim, err := repo.ListByOntology(ctx, "omim")
	require.NoError(t, err)
	require.Len(t, omim, 3)
	assert.Equal(t, "OMIM:0001", omim[0].TargetID)
	assert.Equal(t, "OMIM:0002", omim[1].TargetID)
	assert.Equal(t, "OMIM:0003", omim[2].TargetID)
	assert.Equal(t, run.ID, omim[0].RunID)

	deleted, err := repo.DeleteByOntology(ctx, "omim")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	orpha, err := repo.ListByOntology(ctx, "orphanet")
	require.NoError(t, err)
	assert.Len(t, orpha, 1)
}
