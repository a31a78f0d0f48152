package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/association"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/ingestrun"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/postgres/xref"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/provider/download"
	panelappapi "github.com/heartmarshall/genedisease-ingest/internal/adapter/provider/panelapp"
	"github.com/heartmarshall/genedisease-ingest/internal/adapter/retry"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest"
	"github.com/heartmarshall/genedisease-ingest/internal/config"
)

// Options are the command-line overrides of an ingest run.
type Options struct {
	ConfigPath string
	Phases     []string
	DryRun     bool
}

// Run is the ingest entry point. It loads configuration, initializes the
// logger, wires the adapters and runs the pipeline. The database is only
// opened for non-dry runs.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.LoadFrom(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.DryRun {
		cfg.Ingest.DryRun = true
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting ingest",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("dry_run", cfg.Ingest.DryRun),
	)

	phases, err := ingest.SelectPhases(opts.Phases)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	policy := RetryPolicy(cfg.Retry)

	var store ingest.Store
	if !cfg.Ingest.DryRun {
		if err := cfg.RequireDatabase(); err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		store = ingest.Store{
			Tx:           postgres.NewTxManager(pool),
			Associations: association.New(pool),
			Xrefs:        xref.New(pool),
			Runs:         ingestrun.New(pool),
		}
	}

	pipeline := ingest.NewPipeline(logger, ingest.FromConfig(cfg), store,
		download.NewClient(httpClient, policy, logger),
		panelappapi.NewClientWithURL(cfg.PanelApp.APIURL, httpClient, policy, logger),
	)
	if err := pipeline.Run(ctx, phases); err != nil {
		return err
	}

	for _, phase := range phases {
		r := pipeline.Results()[phase]
		logger.Info("phase summary",
			slog.String("phase", phase),
			slog.Int("read", r.Read),
			slog.Int("inserted", r.Inserted),
			slog.Int("deleted", r.Deleted),
			slog.Int("skipped", r.Skipped),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// RetryPolicy builds the download and API retry schedule from cfg.
func RetryPolicy(cfg config.RetryConfig) retry.Policy {
	return retry.Policy{
		Delays: retry.Schedule(cfg.Attempts, cfg.Interval, cfg.FinalWait),
		Clock:  clockwork.NewRealClock(),
	}
}
