package config

import (
	"time"

	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/integrate"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Retry    RetryConfig    `yaml:"retry"`
	HTTP     HTTPConfig     `yaml:"http"`
	Ingest   IngestConfig   `yaml:"ingest"`
	GenCC    GenCCConfig    `yaml:"gencc"`
	Mondo    MondoConfig    `yaml:"mondo"`
	PanelApp PanelAppConfig `yaml:"panelapp"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN may be empty for
// dry runs.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RetryConfig is the download and API retry schedule: Attempts tries spaced
// by Interval, then one final try after FinalWait.
type RetryConfig struct {
	Attempts  int           `yaml:"attempts"   env:"RETRY_ATTEMPTS"   env-default:"3"`
	Interval  time.Duration `yaml:"interval"   env:"RETRY_INTERVAL"   env-default:"10s"`
	FinalWait time.Duration `yaml:"final_wait" env:"RETRY_FINAL_WAIT" env-default:"1h"`
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"60s"`
}

// IngestConfig holds pipeline-wide settings.
type IngestConfig struct {
	DownloadDir string `yaml:"download_dir" env:"INGEST_DOWNLOAD_DIR" env-default:"./data"`
	BatchSize   int    `yaml:"batch_size"   env:"INGEST_BATCH_SIZE"   env-default:"500"`
	DryRun      bool   `yaml:"dry_run"      env:"INGEST_DRY_RUN"`
	Artifacts   bool   `yaml:"artifacts"    env:"INGEST_ARTIFACTS"    env-default:"true"`
}

// GenCCConfig describes the GenCC submission export.
type GenCCConfig struct {
	DownloadURL  string `yaml:"download_url"  env:"GENCC_DOWNLOAD_URL"  env-default:"https://search.thegencc.org/download/action/submissions-export-tsv"`
	RawFilename  string `yaml:"raw_filename"  env:"GENCC_RAW_FILENAME"  env-default:"gencc_submission.tsv"`
	HeaderField  string `yaml:"header_field"  env:"GENCC_HEADER_FIELD"  env-default:"uuid"`
	RecordPrefix string `yaml:"record_prefix" env:"GENCC_RECORD_PREFIX" env-default:"GENCC"`
	Separator    string `yaml:"separator"     env:"GENCC_SEPARATOR"     env-default:";"`
	ExcludeOMIM  bool   `yaml:"exclude_omim"  env:"GENCC_EXCLUDE_OMIM"`

	Fields integrate.GenCCFields `yaml:"fields"`

	// Compare names two columns whose values are reported when they disagree.
	Compare     []string `yaml:"compare"      env:"GENCC_COMPARE"`
	CompareMode string   `yaml:"compare_mode" env:"GENCC_COMPARE_MODE" env-default:"exact"`
}

// MondoConfig describes the MONDO SSSOM mapping files.
type MondoConfig struct {
	DownloadURL string   `yaml:"download_url" env:"MONDO_DOWNLOAD_URL" env-default:"https://raw.githubusercontent.com/monarch-initiative/mondo/master/src/ontology/mappings"`
	Files       []string `yaml:"files"        env:"MONDO_FILES"        env-default:"mondo_exactmatch_omim.sssom.tsv,mondo_exactmatch_orphanet.sssom.tsv"`
	// Targets maps an ontology name to the file-name substring selecting its files.
	Targets map[string]string `yaml:"targets" env:"MONDO_TARGETS" env-default:"omim:omim,orphanet:orpha"`
}

// PanelAppConfig describes the PanelApp REST API.
type PanelAppConfig struct {
	APIURL   string   `yaml:"api_url"  env:"PANELAPP_API_URL"  env-default:"https://panelapp.genomicsengland.co.uk/api/v1"`
	Entities []string `yaml:"entities" env:"PANELAPP_ENTITIES" env-default:"genes"`

	// Keys holds the key specs extracted per entity. Entities without an
	// entry fall back to DefaultPanelAppKeys.
	Keys map[string]domain.KeySpecs `yaml:"keys"`

	Fields integrate.PanelAppFields `yaml:"fields"`
}

// DefaultPanelAppKeys returns the key specs matching the default PanelApp
// field mapping.
func DefaultPanelAppKeys() domain.KeySpecs {
	return domain.KeySpecs{
		domain.NestedFields{Parent: "gene_data", Children: []string{
			"gene_name", "hgnc_id", "hgnc_symbol", "omim_gene", "alias", "alias_name",
		}},
		domain.NestedFields{Parent: "panel", Children: []string{
			"name", "disease_group", "disease_sub_group", "relevant_disorders",
		}},
		domain.PlainField{Name: "phenotypes"},
		domain.PlainField{Name: "confidence_level"},
		domain.PlainField{Name: "mode_of_inheritance"},
		domain.PlainField{Name: "mode_of_pathogenicity"},
		domain.PlainField{Name: "publications"},
	}
}

// KeysFor returns the key specs for entity.
func (c PanelAppConfig) KeysFor(entity string) domain.KeySpecs {
	if keys, ok := c.Keys[entity]; ok && len(keys) > 0 {
		return keys
	}
	return DefaultPanelAppKeys()
}
