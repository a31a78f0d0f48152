package association

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

func scanAssociation(row pgx.Row) (domain.Association, error) {
	var (
		a      domain.Association
		runID  *uuid.UUID
		source string
	)

	err := row.Scan(
		&a.ID, &runID, &source, &a.SourceRecordID,
		&a.GeneID, &a.GeneSymbol, &a.GeneOtherIDs, &a.GeneAlias,
		&a.PrediseasePrimaryID, &a.PrediseaseOtherIDs, &a.PrediseaseTitle, &a.PrediseaseAlias,
		&a.Confidence, &a.ModeOfInheritance, &a.Submitter, &a.EvaluationDate, &a.SubmissionDate, &a.PMIDs,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.Association{}, err
	}

	a.Source = domain.Source(source)
	if runID != nil {
		a.RunID = *runID
	}
	return a, nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nilIfZero(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
