// Package ingestrun stores the data source registry and the ingest run log.
package ingestrun

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Repo provides persistence for domain.DataSource and domain.IngestRun.
type Repo struct {
	db postgres.Querier
}

// New creates a new ingest run repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// UpsertDataSources inserts or updates data sources by slug.
func (r *Repo) UpsertDataSources(ctx context.Context, sources []domain.DataSource) error {
	if len(sources) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	for _, s := range sources {
		_, err := q.Exec(ctx,
			`INSERT INTO data_sources (slug, name, description, source_type, is_active, dataset_version, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (slug) DO UPDATE
			 SET name = EXCLUDED.name,
			     description = EXCLUDED.description,
			     source_type = EXCLUDED.source_type,
			     is_active = EXCLUDED.is_active,
			     dataset_version = EXCLUDED.dataset_version,
			     updated_at = EXCLUDED.updated_at`,
			s.Slug, s.Name, nilIfEmpty(s.Description), s.SourceType, s.IsActive,
			nilIfEmpty(s.DatasetVersion), s.CreatedAt, s.UpdatedAt,
		)
		if err != nil {
			return postgres.MapError(err, "data_source", s.Slug)
		}
	}

	return nil
}

// Start records a new run.
func (r *Repo) Start(ctx context.Context, run domain.IngestRun) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO ingest_runs (id, status, phases, counts, started_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.ID, string(run.Status), nonNilStrings(run.Phases), nonNilCounts(run.Counts), run.StartedAt,
	)
	if err != nil {
		return postgres.MapError(err, "ingest_run", run.ID.String())
	}
	return nil
}

// Finish stores the terminal status, counts and error of a run.
func (r *Repo) Finish(ctx context.Context, run domain.IngestRun) error {
	finishedAt := time.Now().UTC()
	if run.FinishedAt != nil {
		finishedAt = *run.FinishedAt
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	tag, err := q.Exec(ctx,
		`UPDATE ingest_runs
		 SET status = $2, counts = $3, error = $4, finished_at = $5
		 WHERE id = $1`,
		run.ID, string(run.Status), nonNilCounts(run.Counts), run.Error, finishedAt,
	)
	if err != nil {
		return postgres.MapError(err, "ingest_run", run.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingest_run %s: %w", run.ID, domain.ErrNotFound)
	}
	return nil
}

// Get returns one run by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.IngestRun, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var (
		run    domain.IngestRun
		status string
	)
	err := q.QueryRow(ctx,
		`SELECT id, status, phases, counts, error, started_at, finished_at
		 FROM ingest_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &status, &run.Phases, &run.Counts, &run.Error, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		return nil, postgres.MapError(err, "ingest_run", id.String())
	}

	run.Status = domain.RunStatus(status)
	return &run, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
