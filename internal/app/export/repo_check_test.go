package export_test

import (
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/association"
	"github.com/heartmarshall/genedisease-ingest/internal/app/export"
)

// Compile-time check: *association.Repo must satisfy Lister.
var _ export.Lister = (*association.Repo)(nil)
