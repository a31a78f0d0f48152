package domain

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies the registry an association was ingested from.
type Source string

const (
	SourceGenCC    Source = "gencc"
	SourcePanelApp Source = "panelapp"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceGenCC, SourcePanelApp:
		return true
	}
	return false
}

// PanelAppSubmitter is recorded as the submitter of every PanelApp association.
const PanelAppSubmitter = "PanelApp"

// Association is one genomic entity ↔ predisease pair contributed by exactly
// one source record. Associations are never merged across sources.
type Association struct {
	ID             uuid.UUID
	RunID          uuid.UUID
	Source         Source
	SourceRecordID string

	GeneID       string
	GeneSymbol   string
	GeneOtherIDs []string
	GeneAlias    string

	PrediseasePrimaryID string
	PrediseaseOtherIDs  []string
	PrediseaseTitle     string
	PrediseaseAlias     string

	Confidence        string
	ModeOfInheritance string
	Submitter         string
	EvaluationDate    string
	SubmissionDate    string
	PMIDs             []string

	CreatedAt time.Time
}

// Validate checks the bookkeeping fields required for persistence.
func (a Association) Validate() error {
	var errs []FieldError
	if !a.Source.IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "unknown source " + string(a.Source)})
	}
	if a.SourceRecordID == "" {
		errs = append(errs, FieldError{Field: "source_record_id", Message: "required"})
	}
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}
