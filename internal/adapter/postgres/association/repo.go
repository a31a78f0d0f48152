// Package association stores normalized gene–disease associations.
package association

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const table = "gene_disease_associations"

// columns is the select/insert column order shared by scanAssociation.
var columns = []string{
	"id", "run_id", "source", "source_record_id",
	"gene_id", "gene_symbol", "gene_other_ids", "gene_alias",
	"predisease_primary_id", "predisease_other_ids", "predisease_title", "predisease_alias",
	"confidence", "mode_of_inheritance", "submitter", "evaluation_date", "submission_date", "pmids",
	"created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides persistence for domain.Association.
// Writes join the transaction carried by ctx, if any.
type Repo struct {
	db postgres.Querier
}

// New creates a new association repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// DeleteBySource removes every association ingested from source.
func (r *Repo) DeleteBySource(ctx context.Context, source domain.Source) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM gene_disease_associations WHERE source = $1`, string(source))
	if err != nil {
		return 0, postgres.MapError(err, "association", source.String())
	}
	return int(tag.RowsAffected()), nil
}

// BulkInsert inserts associations using pgx.Batch. A row with an existing
// (source, source_record_id) is overwritten with the new values.
// Returns the number of affected rows.
func (r *Repo) BulkInsert(ctx context.Context, items []domain.Association) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, a := range items {
		if err := a.Validate(); err != nil {
			return 0, fmt.Errorf("association %s/%s: %w", a.Source, a.SourceRecordID, err)
		}
		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		batch.Queue(
			`INSERT INTO gene_disease_associations (
			     id, run_id, source, source_record_id,
			     gene_id, gene_symbol, gene_other_ids, gene_alias,
			     predisease_primary_id, predisease_other_ids, predisease_title, predisease_alias,
			     confidence, mode_of_inheritance, submitter, evaluation_date, submission_date, pmids,
			     created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			 ON CONFLICT ON CONSTRAINT uq_gene_disease_associations_source_record DO UPDATE
			 SET run_id = EXCLUDED.run_id,
			     gene_id = EXCLUDED.gene_id,
			     gene_symbol = EXCLUDED.gene_symbol,
			     gene_other_ids = EXCLUDED.gene_other_ids,
			     gene_alias = EXCLUDED.gene_alias,
			     predisease_primary_id = EXCLUDED.predisease_primary_id,
			     predisease_other_ids = EXCLUDED.predisease_other_ids,
			     predisease_title = EXCLUDED.predisease_title,
			     predisease_alias = EXCLUDED.predisease_alias,
			     confidence = EXCLUDED.confidence,
			     mode_of_inheritance = EXCLUDED.mode_of_inheritance,
			     submitter = EXCLUDED.submitter,
			     evaluation_date = EXCLUDED.evaluation_date,
			     submission_date = EXCLUDED.submission_date,
			     pmids = EXCLUDED.pmids`,
			a.ID, nilIfZero(a.RunID), string(a.Source), a.SourceRecordID,
			a.GeneID, a.GeneSymbol, nonNil(a.GeneOtherIDs), a.GeneAlias,
			a.PrediseasePrimaryID, nonNil(a.PrediseaseOtherIDs), a.PrediseaseTitle, a.PrediseaseAlias,
			a.Confidence, a.ModeOfInheritance, a.Submitter, a.EvaluationDate, a.SubmissionDate, nonNil(a.PMIDs),
			createdAt,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// List returns stored associations matching filter, ordered by source and
// source record ID.
func (r *Repo) List(ctx context.Context, filter domain.AssociationFilter) ([]domain.Association, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := applyFilter(psql.Select(columns...).From(table), filter).
		OrderBy("source", "source_record_id")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "association", "list")
	}
	defer rows.Close()

	var result []domain.Association
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, postgres.MapError(err, "association", "list")
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "association", "list")
	}

	return result, nil
}

// CountBySource returns the number of stored associations per source.
func (r *Repo) CountBySource(ctx context.Context) (map[domain.Source]int, error) {
	sql, args, err := psql.Select("source", "count(*)").From(table).GroupBy("source").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "association", "count")
	}
	defer rows.Close()

	counts := make(map[domain.Source]int)
	for rows.Next() {
		var (
			source string
			n      int64
		)
		if err := rows.Scan(&source, &n); err != nil {
			return nil, postgres.MapError(err, "association", "count")
		}
		counts[domain.Source(source)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "association", "count")
	}

	return counts, nil
}

func applyFilter(query squirrel.SelectBuilder, f domain.AssociationFilter) squirrel.SelectBuilder {
	if f.Source != nil {
		query = query.Where(squirrel.Eq{"source": string(*f.Source)})
	}
	if f.GeneID != "" {
		query = query.Where(squirrel.Eq{"gene_id": f.GeneID})
	}
	if f.GeneSymbol != "" {
		query = query.Where(squirrel.Eq{"gene_symbol": f.GeneSymbol})
	}
	if f.Submitter != "" {
		query = query.Where(squirrel.Eq{"submitter": f.Submitter})
	}
	if f.DiseaseID != "" {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"predisease_primary_id": f.DiseaseID},
			squirrel.Expr("? = ANY(predisease_other_ids)", f.DiseaseID),
		})
	}
	return query
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, postgres.MapError(err, "association", "batch")
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
