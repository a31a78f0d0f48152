// Package export writes stored associations as a tab-separated table.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// DefaultPageSize is the number of rows fetched per List call.
const DefaultPageSize = 1000

// ListSeparator joins list-valued columns.
const ListSeparator = "|"

// Header is the output column order.
var Header = []string{
	"source", "source_record_id",
	"gene_id", "gene_symbol", "gene_other_ids", "gene_alias",
	"predisease_primary_id", "predisease_other_ids", "predisease_title", "predisease_alias",
	"confidence", "mode_of_inheritance", "submitter", "evaluation_date", "submission_date", "pmids",
	"run_id",
}

// Lister pages through stored associations. Implemented by association.Repo.
type Lister interface {
	List(ctx context.Context, filter domain.AssociationFilter) ([]domain.Association, error)
}

// Write pages through every association matching filter and writes them to w
// with a header line. filter.Limit is the page size; filter.Offset is ignored.
// It returns the number of rows written.
func Write(ctx context.Context, lister Lister, filter domain.AssociationFilter, w io.Writer) (int, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	filter.Offset = 0

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	total := 0
	for {
		page, err := lister.List(ctx, filter)
		if err != nil {
			return total, fmt.Errorf("list associations: %w", err)
		}
		for _, a := range page {
			if err := cw.Write(row(a)); err != nil {
				return total, fmt.Errorf("write %s/%s: %w", a.Source, a.SourceRecordID, err)
			}
			total++
		}
		if len(page) < filter.Limit {
			break
		}
		filter.Offset += filter.Limit
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return total, fmt.Errorf("flush: %w", err)
	}
	return total, nil
}

func row(a domain.Association) []string {
	return []string{
		a.Source.String(), a.SourceRecordID,
		a.GeneID, a.GeneSymbol, strings.Join(a.GeneOtherIDs, ListSeparator), a.GeneAlias,
		a.PrediseasePrimaryID, strings.Join(a.PrediseaseOtherIDs, ListSeparator), a.PrediseaseTitle, a.PrediseaseAlias,
		a.Confidence, a.ModeOfInheritance, a.Submitter, a.EvaluationDate, a.SubmissionDate,
		strings.Join(a.PMIDs, ListSeparator),
		a.RunID.String(),
	}
}
