package ingest

import (
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/gencc"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/integrate"
	"github.com/heartmarshall/genedisease-ingest/internal/config"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Config holds pipeline settings.
type Config struct {
	DownloadDir string
	BatchSize   int
	DryRun      bool
	// Artifacts enables the reformatted GenCC file and the PanelApp dumps.
	Artifacts bool

	GenCC    GenCCConfig
	Mondo    MondoConfig
	PanelApp PanelAppConfig

	Normalizer integrate.Options
}

// GenCCConfig locates and parses the GenCC export.
type GenCCConfig struct {
	URL          string
	RawFilename  string
	HeaderField  string
	RecordPrefix string
	Separator    string
	Compare      []string
	CompareMode  gencc.CompareMode
}

// MondoConfig locates the MONDO mapping files. A file entry containing "://"
// is downloaded as is, any other entry is resolved against BaseURL.
type MondoConfig struct {
	BaseURL string
	Files   []string
	Targets map[string]string
}

// PanelAppConfig selects the PanelApp entities and their key specs.
type PanelAppConfig struct {
	Entities []string
	Keys     map[string]domain.KeySpecs
}

// FromConfig derives the pipeline settings from the application config.
func FromConfig(c *config.Config) Config {
	keys := make(map[string]domain.KeySpecs, len(c.PanelApp.Entities))
	for _, entity := range c.PanelApp.Entities {
		keys[entity] = c.PanelApp.KeysFor(entity)
	}

	opts := integrate.DefaultOptions()
	opts.ExcludeOMIM = c.GenCC.ExcludeOMIM
	opts.GenCC = c.GenCC.Fields
	opts.PanelApp = c.PanelApp.Fields

	return Config{
		DownloadDir: c.Ingest.DownloadDir,
		BatchSize:   c.Ingest.BatchSize,
		DryRun:      c.Ingest.DryRun,
		Artifacts:   c.Ingest.Artifacts,
		GenCC: GenCCConfig{
			URL:          c.GenCC.DownloadURL,
			RawFilename:  c.GenCC.RawFilename,
			HeaderField:  c.GenCC.HeaderField,
			RecordPrefix: c.GenCC.RecordPrefix,
			Separator:    c.GenCC.Separator,
			Compare:      c.GenCC.Compare,
			CompareMode:  gencc.ParseCompareMode(c.GenCC.CompareMode),
		},
		Mondo: MondoConfig{
			BaseURL: c.Mondo.DownloadURL,
			Files:   c.Mondo.Files,
			Targets: c.Mondo.Targets,
		},
		PanelApp: PanelAppConfig{
			Entities: c.PanelApp.Entities,
			Keys:     keys,
		},
		Normalizer: opts,
	}
}
