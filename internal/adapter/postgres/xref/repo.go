// Package xref stores the MONDO cross-reference pairs of each target ontology.
package xref

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Repo provides persistence for domain.OntologyXref.
type Repo struct {
	db postgres.Querier
}

// New creates a new xref repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// DeleteByOntology removes every pair of one target ontology.
func (r *Repo) DeleteByOntology(ctx context.Context, ontology string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM ontology_xrefs WHERE target_ontology = $1`, ontology)
	if err != nil {
		return 0, postgres.MapError(err, "ontology_xref", ontology)
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts pairs using pgx.Batch.
// Existing pairs (same ontology, source ID and position) are overwritten.
func (r *Repo) BulkInsert(ctx context.Context, xrefs []domain.OntologyXref) (int, error) {
	if len(xrefs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, x := range xrefs {
		var runID *uuid.UUID
		if x.RunID != uuid.Nil {
			runID = &x.RunID
		}

		batch.Queue(
			`INSERT INTO ontology_xrefs (target_ontology, source_id, position, target_id, run_id)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (target_ontology, source_id, position) DO UPDATE
			 SET target_id = EXCLUDED.target_id, run_id = EXCLUDED.run_id`,
			x.TargetOntology, x.SourceID, x.Position, x.TargetID, runID,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "ontology_xref", "batch")
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListByOntology returns every stored pair of ontology ordered by source ID
// and position, so appending them in order rebuilds the original table.
func (r *Repo) ListByOntology(ctx context.Context, ontology string) ([]domain.OntologyXref, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT target_ontology, source_id, position, target_id, run_id
		 FROM ontology_xrefs
		 WHERE target_ontology = $1
		 ORDER BY source_id, position`,
		ontology,
	)
	if err != nil {
		return nil, postgres.MapError(err, "ontology_xref", ontology)
	}
	defer rows.Close()

	var result []domain.OntologyXref
	for rows.Next() {
		var (
			x     domain.OntologyXref
			runID *uuid.UUID
		)
		if err := rows.Scan(&x.TargetOntology, &x.SourceID, &x.Position, &x.TargetID, &runID); err != nil {
			return nil, fmt.Errorf("scan ontology_xref: %w", err)
		}
		if runID != nil {
			x.RunID = *runID
		}
		result = append(result, x)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "ontology_xref", ontology)
	}

	return result, nil
}
