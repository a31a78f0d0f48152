package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/mondo"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
	"github.com/heartmarshall/genedisease-ingest/pkg/ctxutil"
)

// Phase names, in canonical execution order.
const (
	PhaseMondo    = "mondo"
	PhaseGenCC    = "gencc"
	PhasePanelApp = "panelapp"
)

var allPhases = []string{PhaseMondo, PhaseGenCC, PhasePanelApp}

// AllPhases returns the canonical phase order.
func AllPhases() []string { return slices.Clone(allPhases) }

func knownDataSources() []domain.DataSource {
	now := time.Now()
	return []domain.DataSource{
		{Slug: "gencc", Name: "GenCC", Description: "Gene Curation Coalition submission export", SourceType: "associations", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{Slug: "panelapp", Name: "PanelApp", Description: "Genomics England PanelApp REST API", SourceType: "associations", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{Slug: "mondo", Name: "MONDO", Description: "Mondo Disease Ontology exact-match mappings", SourceType: "xrefs", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Read     int
	Inserted int
	Deleted  int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline runs the mondo, gencc and panelapp phases. Phases run one at a
// time and the first failing phase aborts the run.
type Pipeline struct {
	log        *slog.Logger
	cfg        Config
	store      Store
	downloader Downloader
	panelapp   PanelAppSource

	runID    uuid.UUID
	registry *mondo.Registry
	results  map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg Config, store Store, downloader Downloader, panelapp PanelAppSource) *Pipeline {
	return &Pipeline{
		log:        log.With("component", "ingest"),
		cfg:        cfg,
		store:      store,
		downloader: downloader,
		panelapp:   panelapp,
		results:    make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// RunID returns the ID of the last run.
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// SelectPhases returns the requested phases in canonical order. An empty
// request selects every phase.
func SelectPhases(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return AllPhases(), nil
	}
	for _, ph := range requested {
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (want one of %v)", ph, allPhases)
		}
	}
	var selected []string
	for _, ph := range allPhases {
		if slices.Contains(requested, ph) {
			selected = append(selected, ph)
		}
	}
	return selected, nil
}

// Run executes the pipeline. If phases is non-empty, only the listed phases run.
func (p *Pipeline) Run(ctx context.Context, phases []string) (err error) {
	toRun, err := SelectPhases(phases)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.cfg.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	p.runID = uuid.New()
	ctx = ctxutil.WithRunID(ctx, p.runID)
	p.registry = nil
	p.results = make(map[string]PhaseResult)

	run := domain.IngestRun{
		ID:        p.runID,
		Status:    domain.RunStatusRunning,
		Phases:    toRun,
		Counts:    make(map[string]int),
		StartedAt: time.Now().UTC(),
	}

	if !p.cfg.DryRun {
		if err := p.store.Runs.UpsertDataSources(ctx, knownDataSources()); err != nil {
			return fmt.Errorf("upsert data sources: %w", err)
		}
		if err := p.store.Runs.Start(ctx, run); err != nil {
			return fmt.Errorf("start run: %w", err)
		}
		defer func() {
			p.finishRun(ctx, run, err)
		}()
	}

	p.log.InfoContext(ctx, "pipeline started",
		slog.Any("phases", toRun),
		slog.Bool("dry_run", p.cfg.DryRun),
	)

	for _, phase := range toRun {
		start := time.Now()
		phaseCtx := ctxutil.WithPhase(ctx, phase)
		p.log.InfoContext(phaseCtx, "starting phase")

		var result PhaseResult
		switch phase {
		case PhaseMondo:
			result = p.runMondo(phaseCtx)
		case PhaseGenCC:
			result = p.runGenCC(phaseCtx)
		case PhasePanelApp:
			result = p.runPanelApp(phaseCtx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result
		run.Counts[phase] = result.Inserted

		if result.Err != nil {
			p.log.ErrorContext(phaseCtx, "phase failed",
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}

		p.log.InfoContext(phaseCtx, "phase completed",
			slog.Int("read", result.Read),
			slog.Int("inserted", result.Inserted),
			slog.Int("deleted", result.Deleted),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.InfoContext(ctx, "pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// finishRun stores the terminal state of run. A failure to record it is
// logged, never returned.
func (p *Pipeline) finishRun(ctx context.Context, run domain.IngestRun, runErr error) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	run.Status = domain.RunStatusSucceeded
	if runErr != nil {
		run.Status = domain.RunStatusFailed
		msg := runErr.Error()
		run.Error = &msg
	}

	// The run row is recorded even when ctx was cancelled mid-phase.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := p.store.Runs.Finish(finishCtx, run); err != nil {
		p.log.ErrorContext(ctx, "record run result",
			slog.String("error", err.Error()),
		)
	}
}

// replaceAssociations swaps every stored association of source for items in
// one transaction.
func (p *Pipeline) replaceAssociations(ctx context.Context, source domain.Source, items []domain.Association) (deleted, inserted int, err error) {
	err = p.store.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := p.store.Associations.DeleteBySource(txCtx, source)
		if err != nil {
			return fmt.Errorf("delete %s associations: %w", source, err)
		}
		deleted = n

		inserted, err = batchProcess(items, p.cfg.BatchSize, func(batch []domain.Association) (int, error) {
			return p.store.Associations.BulkInsert(txCtx, batch)
		})
		if err != nil {
			return fmt.Errorf("insert %s associations: %w", source, err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return deleted, inserted, nil
}

// stamp assigns bookkeeping fields to freshly normalized associations.
func (p *Pipeline) stamp(items []domain.Association) {
	now := time.Now().UTC()
	for i := range items {
		items[i].ID = uuid.New()
		items[i].RunID = p.runID
		items[i].CreatedAt = now
	}
}

// batchProcess splits items into chunks of batchSize and calls fn for each chunk.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
