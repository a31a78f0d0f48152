package domain

import (
	"time"

	"github.com/google/uuid"
)

// DataSource describes one external registry or ontology feed.
type DataSource struct {
	Slug           string
	Name           string
	Description    string
	SourceType     string
	IsActive       bool
	DatasetVersion string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RunStatus is the lifecycle state of an ingest run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

func (s RunStatus) String() string { return string(s) }

// IngestRun records one execution of the ingest pipeline.
type IngestRun struct {
	ID         uuid.UUID
	Status     RunStatus
	Phases     []string
	Counts     map[string]int
	Error      *string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// OntologyXref is one persisted cross-reference pair. Position keeps the
// accumulation order of targets for the same source ID.
type OntologyXref struct {
	SourceID       string
	TargetOntology string
	TargetID       string
	Position       int
	RunID          uuid.UUID
}
