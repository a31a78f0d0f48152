package ingest_test

import (
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/association"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/ingestrun"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/xref"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/provider/download"
	panelappapi "github.com/heartmarshall/genedisease-ingest/internal/adapter/provider/panelapp"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest"
)

// Compile-time checks: the adapters must satisfy the pipeline's collaborators.
var (
	_ ingest.AssociationRepo = (*association.Repo)(nil)
	_ ingest.XrefRepo        = (*xref.Repo)(nil)
	_ ingest.RunRepo         = (*ingestrun.Repo)(nil)
	_ ingest.TxManager       = (*postgres.TxManager)(nil)
	_ ingest.Downloader      = (*download.Client)(nil)
	_ ingest.PanelAppSource  = (*panelappapi.Client)(nil)
)
