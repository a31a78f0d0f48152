// Package ingest orchestrates the download, reassembly, normalization and
// persistence of gene–disease associations.
package ingest

import (
	"context"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// AssociationRepo is the association store consumed by the pipeline.
// Implemented by association.Repo.
type AssociationRepo interface {
	DeleteBySource(ctx context.Context, source domain.Source) (int, error)
	BulkInsert(ctx context.Context, items []domain.Association) (int, error)
}

// XrefRepo is the cross-reference store consumed by the pipeline.
// Implemented by xref.Repo.
type XrefRepo interface {
	DeleteByOntology(ctx context.Context, ontology string) (int, error)
	BulkInsert(ctx context.Context, xrefs []domain.OntologyXref) (int, error)
	ListByOntology(ctx context.Context, ontology string) ([]domain.OntologyXref, error)
}

// RunRepo records data sources and runs. Implemented by ingestrun.Repo.
type RunRepo interface {
	UpsertDataSources(ctx context.Context, sources []domain.DataSource) error
	Start(ctx context.Context, run domain.IngestRun) error
	Finish(ctx context.Context, run domain.IngestRun) error
}

// TxManager runs fn inside one transaction. Implemented by postgres.TxManager.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles the persistence collaborators. It may be left zero for dry runs.
type Store struct {
	Tx           TxManager
	Associations AssociationRepo
	Xrefs        XrefRepo
	Runs         RunRepo
}

// Downloader saves a remote file locally. Implemented by download.Client.
type Downloader interface {
	Fetch(ctx context.Context, url, dst string) error
}

// PanelAppSource fetches PanelApp entity lists. Implemented by the panelapp
// provider client.
type PanelAppSource interface {
	FetchAll(ctx context.Context, entity string) ([]map[string]any, error)
	WriteDump(path string, results []map[string]any) error
}
