package xref

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
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

func TestRepo_DeleteByOntology(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM ontology_xrefs WHERE target_ontology`).
		WithArgs("omim").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := repo.DeleteByOntology(context.Background(), "omim")
	if err != nil {
		t.Fatalf("DeleteByOntology: %v", err)
	}
	if n != 4 {
		t.Errorf("deleted = %d, want 4", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_ListByOntology(t *testing.T) {
	repo, mock := newMockRepo(t)

	runID := uuid.New()
	rows := pgxmock.NewRows([]string{"target_ontology", "source_id", "position", "target_id", "run_id"}).
		AddRow("omim", "MONDO:0001", 0, "OMIM:0001", &runID).
		AddRow("omim", "MONDO:0001", 1, "OMIM:0002", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM ontology_xrefs`)).
		WithArgs("omim").
		WillReturnRows(rows)

	got, err := repo.ListByOntology(context.Background(), "omim")
	if err != nil {
		t.Fatalf("ListByOntology: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got))
	}
	if got[0].TargetID != "OMIM:0001" || got[1].Position != 1 {
		t.Errorf("unexpected pairs: %+v", got)
	}
	if got[0].RunID != runID || got[1].RunID != uuid.Nil {
		t.Errorf("run ids = %v, %v", got[0].RunID, got[1].RunID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	repo, _ := newMockRepo(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("BulkInsert(nil) = %d, %v; want 0, nil", n, err)
	}
}
