package association

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
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

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_DeleteBySource(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM gene_disease_associations WHERE source`).
		WithArgs("panelapp").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := repo.DeleteBySource(context.Background(), domain.SourcePanelApp)
	if err != nil {
		t.Fatalf("DeleteBySource: %v", err)
	}
	if n != 7 {
		t.Errorf("deleted = %d, want 7", n)
	}
	expectationsMet(t, mock)
}

func TestRepo_DeleteBySource_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM gene_disease_associations`).
		WithArgs("gencc").
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.DeleteBySource(context.Background(), domain.SourceGenCC)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	n, err := repo.BulkInsert(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("BulkInsert(nil) = %d, %v; want 0, nil", n, err)
	}
	expectationsMet(t, mock)
}

func TestRepo_BulkInsert_InvalidAssociation(t *testing.T) {
	repo, _ := newMockRepo(t)

	_, err := repo.BulkInsert(context.Background(), []domain.Association{{Source: domain.SourceGenCC}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for a missing source record ID, got %v", err)
	}
}

func TestRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	runID := uuid.New()
	now := time.Now().UTC()
	source := domain.SourceGenCC

	rows := pgxmock.NewRows(columns).AddRow(
		id, &runID, "gencc", "GENCC_000101-1",
		"HGNC:10896", "SKI", []string{}, "",
		"MONDO:0008426", []string{"OMIM:182212"}, "Shprintzen-Goldberg syndrome", "",
		"Definitive", "Autosomal dominant", "Ambry Genetics", "2018-03-30", "2020-12-24", []string{"23023332"},
		now,
	)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM gene_disease_associations WHERE source = $1 AND (predisease_primary_id = $2 OR $3 = ANY(predisease_other_ids)) ORDER BY source, source_record_id`,
	)).
		WithArgs("gencc", "OMIM:182212", "OMIM:182212").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), domain.AssociationFilter{
		Source:    &source,
		DiseaseID: "OMIM:182212",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 association, got %d", len(got))
	}

	a := got[0]
	if a.ID != id || a.RunID != runID {
		t.Errorf("ids = %v/%v, want %v/%v", a.ID, a.RunID, id, runID)
	}
	if a.Source != domain.SourceGenCC || a.SourceRecordID != "GENCC_000101-1" {
		t.Errorf("source = %s/%s", a.Source, a.SourceRecordID)
	}
	if len(a.PrediseaseOtherIDs) != 1 || a.PrediseaseOtherIDs[0] != "OMIM:182212" {
		t.Errorf("other ids = %v", a.PrediseaseOtherIDs)
	}
	expectationsMet(t, mock)
}

func TestRepo_List_InvalidFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.List(context.Background(), domain.AssociationFilter{Limit: -1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRepo_CountBySource(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"source", "count"}).
		AddRow("gencc", int64(12)).
		AddRow("panelapp", int64(30))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT source, count(*) FROM gene_disease_associations GROUP BY source`)).
		WillReturnRows(rows)

	counts, err := repo.CountBySource(context.Background())
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if counts[domain.SourceGenCC] != 12 || counts[domain.SourcePanelApp] != 30 {
		t.Errorf("counts = %v", counts)
	}
	expectationsMet(t, mock)
}

func TestApplyFilter(t *testing.T) {
	source := domain.SourcePanelApp

	tests := []struct {
		name     string
		filter   domain.AssociationFilter
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "no filter",
			filter:  domain.AssociationFilter{},
			wantSQL: "SELECT id FROM gene_disease_associations",
		},
		{
			name:     "gene and submitter",
			filter:   domain.AssociationFilter{GeneSymbol: "SKI", Submitter: "PanelApp"},
			wantSQL:  "SELECT id FROM gene_disease_associations WHERE gene_symbol = $1 AND submitter = $2",
			wantArgs: 2,
		},
		{
			name:     "source and gene id",
			filter:   domain.AssociationFilter{Source: &source, GeneID: "HGNC:1100"},
			wantSQL:  "SELECT id FROM gene_disease_associations WHERE source = $1 AND gene_id = $2",
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := applyFilter(psql.Select("id").From(table), tt.filter).ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v, want %d args", args, tt.wantArgs)
			}
		})
	}
}
