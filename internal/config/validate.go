package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownEntities = map[string]bool{"genes": true, "strs": true, "regions": true}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug|info|warn|error (got %q)", c.Log.Level))
	}

	if c.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("retry.attempts must be >= 1 (got %d)", c.Retry.Attempts))
	}
	if c.Retry.Interval < 0 || c.Retry.FinalWait < 0 {
		errs = append(errs, errors.New("retry durations must not be negative"))
	}

	if c.Ingest.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("ingest.batch_size must be > 0 (got %d)", c.Ingest.BatchSize))
	}
	if c.Ingest.DownloadDir == "" {
		errs = append(errs, errors.New("ingest.download_dir is required"))
	}

	if err := c.GenCC.validate(); err != nil {
		errs = append(errs, fmt.Errorf("gencc: %w", err))
	}
	if err := c.Mondo.validate(); err != nil {
		errs = append(errs, fmt.Errorf("mondo: %w", err))
	}
	if err := c.PanelApp.validate(); err != nil {
		errs = append(errs, fmt.Errorf("panelapp: %w", err))
	}

	return errors.Join(errs...)
}

func (g *GenCCConfig) validate() error {
	if g.HeaderField == "" || g.RecordPrefix == "" || g.Separator == "" {
		return errors.New("header_field, record_prefix and separator are required")
	}
	if len(g.Fields.Columns()) == 0 {
		return errors.New("fields: no columns configured")
	}
	if len(g.Compare) != 0 && len(g.Compare) != 2 {
		return fmt.Errorf("compare must name exactly two columns (got %d)", len(g.Compare))
	}
	switch strings.ToLower(g.CompareMode) {
	case "exact", "prefix":
	default:
		return fmt.Errorf("compare_mode must be exact or prefix (got %q)", g.CompareMode)
	}
	return nil
}

func (m *MondoConfig) validate() error {
	if len(m.Files) == 0 {
		return errors.New("files must not be empty")
	}
	if len(m.Targets) == 0 {
		return errors.New("targets must not be empty")
	}
	return nil
}

func (p *PanelAppConfig) validate() error {
	if len(p.Entities) == 0 {
		return errors.New("entities must not be empty")
	}
	for _, e := range p.Entities {
		if !knownEntities[e] {
			return fmt.Errorf("unknown entity %q (want genes|strs|regions)", e)
		}
	}
	for entity := range p.Keys {
		if !knownEntities[entity] {
			return fmt.Errorf("keys: unknown entity %q", entity)
		}
	}
	return nil
}

// RequireDatabase reports an error when no DSN is configured.
func (c *Config) RequireDatabase() error {
	if c.Database.DSN == "" {
		return errors.New("config: database.dsn is required")
	}
	return nil
}
