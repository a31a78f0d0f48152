package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Reset empties every ingest table. DB-backed tests share one container and
// replace rows by source, so they call Reset instead of running in parallel.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE gene_disease_associations, ontology_xrefs, ingest_runs, data_sources`)
	if err != nil {
		t.Fatalf("testhelper: Reset: %v", err)
	}
}

// SeedDataSources registers the gencc, panelapp and mondo sources so
// association rows satisfy their foreign key.
func SeedDataSources(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	for _, slug := range []string{"gencc", "panelapp", "mondo"} {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO data_sources (slug, name, source_type) VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO NOTHING`,
			slug, slug, "test",
		)
		if err != nil {
			t.Fatalf("testhelper: SeedDataSources %s: %v", slug, err)
		}
	}
}

// SeedRun inserts a RUNNING ingest run and returns it.
func SeedRun(t *testing.T, pool *pgxpool.Pool) domain.IngestRun {
	t.Helper()

	run := domain.IngestRun{
		ID:        uuid.New(),
		Status:    domain.RunStatusRunning,
		Phases:    []string{"gencc"},
		Counts:    map[string]int{},
		StartedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO ingest_runs (id, status, phases, counts, started_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, string(run.Status), run.Phases, run.Counts, run.StartedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRun: %v", err)
	}

	return run
}
