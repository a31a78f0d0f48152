package ingestrun

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func TestRepo_UpsertDataSources(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	sources := []domain.DataSource{
		{Slug: "gencc", Name: "GenCC", SourceType: "associations", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{Slug: "mondo", Name: "MONDO", Description: "Mondo Disease Ontology mappings", SourceType: "xrefs", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, s := range sources {
		mock.ExpectExec(`INSERT INTO data_sources`).
			WithArgs(s.Slug, s.Name, pgxmock.AnyArg(), s.SourceType, true, pgxmock.AnyArg(), now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	if err := repo.UpsertDataSources(context.Background(), sources); err != nil {
		t.Fatalf("UpsertDataSources: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_StartAndFinish(t *testing.T) {
	repo, mock := newMockRepo(t)

	run := domain.IngestRun{
		ID:        uuid.New(),
		Status:    domain.RunStatusRunning,
		Phases:    []string{"mondo", "gencc"},
		StartedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO ingest_runs`).
		WithArgs(run.ID, "RUNNING", run.Phases, map[string]int{}, run.StartedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE ingest_runs`).
		WithArgs(run.ID, "SUCCEEDED", map[string]int{"gencc": 3}, (*string)(nil), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ctx := context.Background()
	if err := repo.Start(ctx, run); err != nil {
		t.Fatalf("Start: %v", err)
	}

	run.Status = domain.RunStatusSucceeded
	run.Counts = map[string]int{"gencc": 3}
	if err := repo.Finish(ctx, run); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_Finish_UnknownRun(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE ingest_runs`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Finish(context.Background(), domain.IngestRun{ID: uuid.New(), Status: domain.RunStatusFailed})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Get(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	started := time.Now().UTC()
	msg := "gencc: schema mismatch"

	rows := pgxmock.NewRows([]string{"id", "status", "phases", "counts", "error", "started_at", "finished_at"}).
		AddRow(id, "FAILED", []string{"gencc"}, map[string]int{"gencc": 0}, &msg, started, &started)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM ingest_runs WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(rows)

	run, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run.Status != domain.RunStatusFailed {
		t.Errorf("status = %s, want FAILED", run.Status)
	}
	if run.Error == nil || *run.Error != msg {
		t.Errorf("error = %v, want %q", run.Error, msg)
	}
	if run.FinishedAt == nil {
		t.Error("finished_at should be set")
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM ingest_runs`).WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
