package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/gencc"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/integrate"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/mondo"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/panelapp"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const (
	reformattedFilename = "gencc_reformatted.tsv"
	maxLoggedMismatches = 20
)

// runMondo downloads the mapping files, builds the cross-reference registry
// and replaces the stored pairs of every target ontology.
func (p *Pipeline) runMondo(ctx context.Context) PhaseResult {
	paths := make([]string, 0, len(p.cfg.Mondo.Files))
	for _, file := range p.cfg.Mondo.Files {
		url := mondoFileURL(p.cfg.Mondo.BaseURL, file)
		dst := filepath.Join(p.cfg.DownloadDir, path.Base(file))
		if err := p.downloader.Fetch(ctx, url, dst); err != nil {
			return PhaseResult{Err: fmt.Errorf("download %s: %w", file, err)}
		}
		paths = append(paths, dst)
	}

	registry, err := mondo.BuildRegistry(mondo.NewBuilder(), paths, p.cfg.Mondo.Targets)
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.registry = registry

	var result PhaseResult
	for _, ontology := range registry.Ontologies() {
		n := registry.Table(ontology).Len()
		result.Read += n
		p.log.InfoContext(ctx, "xref table built", slog.String("ontology", ontology), slog.Int("source_ids", n))
	}

	if p.cfg.DryRun {
		result.Skipped = result.Read
		return result
	}

	err = p.store.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, ontology := range registry.Ontologies() {
			deleted, err := p.store.Xrefs.DeleteByOntology(txCtx, ontology)
			if err != nil {
				return fmt.Errorf("delete %s xrefs: %w", ontology, err)
			}
			result.Deleted += deleted

			var pairs []domain.OntologyXref
			for pair := range registry.Table(ontology).Pairs() {
				pairs = append(pairs, domain.OntologyXref{
					SourceID:       pair.Source,
					TargetOntology: ontology,
					TargetID:       pair.Target,
					Position:       pair.Position,
					RunID:          p.runID,
				})
			}

			inserted, err := batchProcess(pairs, p.cfg.BatchSize, func(batch []domain.OntologyXref) (int, error) {
				return p.store.Xrefs.BulkInsert(txCtx, batch)
			})
			if err != nil {
				return fmt.Errorf("insert %s xrefs: %w", ontology, err)
			}
			result.Inserted += inserted
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}

	return result
}

// runGenCC downloads and reassembles the export, writes the optional
// artifacts, normalizes it and replaces the stored GenCC associations.
func (p *Pipeline) runGenCC(ctx context.Context) PhaseResult {
	cfg := p.cfg.GenCC
	raw := filepath.Join(p.cfg.DownloadDir, cfg.RawFilename)
	if err := p.downloader.Fetch(ctx, cfg.URL, raw); err != nil {
		return PhaseResult{Err: fmt.Errorf("download export: %w", err)}
	}

	columns := p.cfg.Normalizer.GenCC.Columns()
	for _, col := range cfg.Compare {
		if !slices.Contains(columns, col) {
			columns = append(columns, col)
		}
	}

	reassembler := &gencc.Reassembler{
		HeaderField:  cfg.HeaderField,
		RecordPrefix: cfg.RecordPrefix,
		Separator:    cfg.Separator,
		Columns:      columns,
	}
	set, err := reassembler.ReadFile(raw)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("reassemble %s: %w", raw, err)}
	}
	p.log.InfoContext(ctx, "gencc reassembled", slog.Int("records", set.Len()))

	if p.cfg.Artifacts {
		out := filepath.Join(p.cfg.DownloadDir, reformattedFilename)
		if err := gencc.WriteFile(out, cfg.HeaderField, set); err != nil {
			return PhaseResult{Err: err}
		}
		p.log.InfoContext(ctx, "gencc reformatted file written", slog.String("path", out))
	}

	if len(cfg.Compare) == 2 {
		p.reportMismatches(set, cfg.Compare[0], cfg.Compare[1], cfg.CompareMode)
	}

	registry, err := p.xrefRegistry(ctx)
	if err != nil {
		return PhaseResult{Err: err}
	}

	items, err := integrate.NewNormalizer(p.log, registry, p.cfg.Normalizer).ConvertGenCC(set)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("normalize: %w", err)}
	}
	p.stamp(items)

	result := PhaseResult{Read: set.Len(), Skipped: set.Len() - len(items)}
	if p.cfg.DryRun {
		result.Skipped = set.Len()
		return result
	}

	result.Deleted, result.Inserted, err = p.replaceAssociations(ctx, domain.SourceGenCC, items)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

func (p *Pipeline) reportMismatches(set *gencc.RecordSet, a, b string, mode gencc.CompareMode) {
	ids := gencc.CompareColumns(set, a, b, mode)
	if len(ids) == 0 {
		p.log.Info("gencc columns agree", slog.String("a", a), slog.String("b", b))
		return
	}
	p.log.Warn("gencc columns disagree",
		slog.String("a", a),
		slog.String("b", b),
		slog.Int("records", len(ids)),
		slog.Any("sample", ids[:min(len(ids), maxLoggedMismatches)]),
	)
}

// runPanelApp fetches every configured entity, folds and normalizes it, and
// replaces the stored PanelApp associations.
func (p *Pipeline) runPanelApp(ctx context.Context) PhaseResult {
	normalizer := integrate.NewNormalizer(p.log, nil, p.cfg.Normalizer)

	var (
		result PhaseResult
		items  []domain.Association
	)
	for _, entity := range p.cfg.PanelApp.Entities {
		records, err := p.panelapp.FetchAll(ctx, entity)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("fetch %s: %w", entity, err)}
		}
		result.Read += len(records)
		p.log.InfoContext(ctx, "panelapp entity fetched", slog.String("entity", entity), slog.Int("records", len(records)))

		if p.cfg.Artifacts {
			dump := filepath.Join(p.cfg.DownloadDir, "panelapp_"+entity+".json")
			if err := p.panelapp.WriteDump(dump, records); err != nil {
				return PhaseResult{Err: err}
			}
		}

		set, err := panelapp.Fold(records, p.cfg.PanelApp.Keys[entity])
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("fold %s: %w", entity, err)}
		}
		if n := set.Collisions(); n > 0 {
			p.log.Warn("panelapp composite key collisions, last record kept",
				slog.String("entity", entity), slog.Int("collisions", n))
		}

		converted, err := normalizer.ConvertPanelApp(set)
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("normalize %s: %w", entity, err)}
		}
		items = append(items, converted...)
	}

	items, dropped := lastWriteWins(items)
	if dropped > 0 {
		p.log.Warn("panelapp composite key collisions across entities, last record kept",
			slog.Int("collisions", dropped))
	}
	p.stamp(items)

	if p.cfg.DryRun {
		result.Skipped = len(items)
		return result
	}

	var err error
	result.Deleted, result.Inserted, err = p.replaceAssociations(ctx, domain.SourcePanelApp, items)
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

// xrefRegistry returns the registry built by the mondo phase of this run or,
// when that phase did not run, the pairs stored by an earlier run.
func (p *Pipeline) xrefRegistry(ctx context.Context) (*mondo.Registry, error) {
	if p.registry != nil {
		return p.registry, nil
	}
	if p.store.Xrefs == nil {
		p.log.Warn("no cross-reference store, disease IDs stay unresolved")
		return mondo.NewRegistry(nil), nil
	}

	tables := make(map[string]*mondo.Table, len(p.cfg.Mondo.Targets))
	for ontology := range p.cfg.Mondo.Targets {
		pairs, err := p.store.Xrefs.ListByOntology(ctx, ontology)
		if err != nil {
			return nil, fmt.Errorf("load %s xrefs: %w", ontology, err)
		}
		t := mondo.NewTable()
		for _, x := range pairs {
			t.Append(x.SourceID, x.TargetID)
		}
		tables[ontology] = t
		p.log.InfoContext(ctx, "xref table loaded", slog.String("ontology", ontology), slog.Int("source_ids", t.Len()))
	}

	p.registry = mondo.NewRegistry(tables)
	return p.registry, nil
}

// lastWriteWins keeps one association per source record ID: the values of
// the last occurrence at the position of the first.
func lastWriteWins(items []domain.Association) ([]domain.Association, int) {
	index := make(map[string]int, len(items))
	out := make([]domain.Association, 0, len(items))
	dropped := 0
	for _, a := range items {
		if i, ok := index[a.SourceRecordID]; ok {
			out[i] = a
			dropped++
			continue
		}
		index[a.SourceRecordID] = len(out)
		out = append(out, a)
	}
	return out, dropped
}

func mondoFileURL(baseURL, file string) string {
	if strings.Contains(file, "://") {
		return file
	}
	return strings.TrimRight(baseURL, "/") + "/" + file
}
