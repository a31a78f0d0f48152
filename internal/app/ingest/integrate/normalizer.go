// Package integrate converts per-source raw records into canonical
// domain.Association values, resolving MONDO disease IDs through the
// cross-reference registry.
package integrate

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/gencc"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/mondo"
	"github.com/heartmarshall/genedisease-ingest/internal/app/ingest/panelapp"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// PMIDSeparator splits the GenCC literature-ID column.
const PMIDSeparator = ", "

const (
	pmidDigits = 8
	omimDigits = 6
)

// Options tunes the normalizer.
type Options struct {
	// ExcludeOMIM drops GenCC records whose disease ID resolves to an OMIM ID.
	ExcludeOMIM bool
	// XrefOntologies are the registry tables consulted for other disease IDs,
	// in order.
	XrefOntologies []string
	GenCC          GenCCFields
	PanelApp       PanelAppFields
}

// DefaultOptions returns options for the public GenCC and PanelApp formats.
func DefaultOptions() Options {
	return Options{
		XrefOntologies: []string{mondo.OntologyOMIM, mondo.OntologyOrphanet},
		GenCC:          DefaultGenCCFields(),
		PanelApp:       DefaultPanelAppFields(),
	}
}

// Normalizer builds Associations. It holds no mutable state.
type Normalizer struct {
	log   *slog.Logger
	xrefs *mondo.Registry
	opts  Options
}

// NewNormalizer creates a Normalizer. xrefs may be empty.
func NewNormalizer(log *slog.Logger, xrefs *mondo.Registry, opts Options) *Normalizer {
	if xrefs == nil {
		xrefs = mondo.NewRegistry(nil)
	}
	return &Normalizer{
		log:   log.With("component", "integrate"),
		xrefs: xrefs,
		opts:  opts,
	}
}

// ConvertGenCC maps every reassembled record to an Association, in input order.
func (n *Normalizer) ConvertGenCC(set *gencc.RecordSet) ([]domain.Association, error) {
	f := n.opts.GenCC
	for _, col := range f.Columns() {
		if !slices.Contains(set.Columns(), col) {
			return nil, domain.SchemaError(col, "gencc record set")
		}
	}

	out := make([]domain.Association, 0, set.Len())
	excluded := 0
	for rec := range set.All() {
		primary := rec.Get(f.PrediseasePrimaryID)

		if n.opts.ExcludeOMIM && strings.HasPrefix(n.resolveForExclusion(primary), "OMIM") {
			excluded++
			continue
		}

		out = append(out, domain.Association{
			Source:              domain.SourceGenCC,
			SourceRecordID:      rec.ID,
			GeneID:              rec.Get(f.GeneID),
			GeneSymbol:          rec.Get(f.GeneSymbol),
			GeneOtherIDs:        []string{},
			PrediseasePrimaryID: primary,
			PrediseaseOtherIDs:  n.otherDiseaseIDs(rec.Get(f.PrediseaseOtherID), primary),
			PrediseaseTitle:     rec.Get(f.PrediseaseTitle),
			Confidence:          rec.Get(f.Confidence),
			ModeOfInheritance:   rec.Get(f.ModeOfInheritance),
			Submitter:           rec.Get(f.Submitter),
			EvaluationDate:      rec.Get(f.EvaluationDate),
			SubmissionDate:      rec.Get(f.SubmissionDate),
			PMIDs:               strings.Split(rec.Get(f.PMIDs), PMIDSeparator),
		})
	}

	if excluded > 0 {
		n.log.Info("excluded OMIM-resolved records", slog.Int("count", excluded))
	}
	return out, nil
}

// otherDiseaseIDs starts from the native ID and appends every cross-reference
// match of the MONDO ID, skipping duplicates.
func (n *Normalizer) otherDiseaseIDs(native, mondoID string) []string {
	ids := []string{native}
	seen := map[string]bool{native: true}
	for _, ontology := range n.opts.XrefOntologies {
		targets, _ := n.xrefs.Lookup(ontology, mondoID)
		for _, t := range targets {
			if !seen[t] {
				seen[t] = true
				ids = append(ids, t)
			}
		}
	}
	return ids
}

// resolveForExclusion prefers the first OMIM match, then the first Orphanet
// match, then the unresolved ID.
func (n *Normalizer) resolveForExclusion(mondoID string) string {
	for _, ontology := range []string{mondo.OntologyOMIM, mondo.OntologyOrphanet} {
		if targets, ok := n.xrefs.Lookup(ontology, mondoID); ok && len(targets) > 0 {
			return targets[0]
		}
	}
	return mondoID
}

// ConvertPanelApp maps every extracted record to an Association, in input order.
func (n *Normalizer) ConvertPanelApp(set *panelapp.ExtractedSet) ([]domain.Association, error) {
	out := make([]domain.Association, 0, set.Len())
	for key, e := range set.All() {
		a, err := n.convertPanelApp(key, e)
		if err != nil {
			return nil, fmt.Errorf("panelapp record %s: %w", key, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (n *Normalizer) convertPanelApp(key string, e panelapp.Extracted) (domain.Association, error) {
	f := n.opts.PanelApp
	r := reader{e: e}

	geneAlias, err := ConcatenateAliases(r.raw(f.GeneName), r.raw(f.Alias), r.raw(f.AliasName))
	if err != nil {
		return domain.Association{}, fmt.Errorf("gene alias: %w", err)
	}
	diseaseAlias, err := ConcatenateAliases(r.raw(f.RelevantDisorders))
	if err != nil {
		return domain.Association{}, fmt.Errorf("disease alias: %w", err)
	}

	a := domain.Association{
		Source:             domain.SourcePanelApp,
		SourceRecordID:     key,
		GeneID:             r.str(f.HGNCID),
		GeneSymbol:         r.str(f.HGNCSymbol),
		GeneOtherIDs:       r.list(f.OMIMGene),
		GeneAlias:          geneAlias,
		PrediseaseOtherIDs: ParseIDs(r.list(f.Phenotypes), omimDigits),
		PrediseaseTitle:    r.str(f.PanelName),
		PrediseaseAlias:    diseaseAlias,
		Confidence:         r.str(f.Confidence),
		ModeOfInheritance:  r.str(f.ModeOfInheritance),
		Submitter:          domain.PanelAppSubmitter,
		PMIDs:              ParseIDs(r.list(f.Publications), pmidDigits),
	}
	if a.GeneOtherIDs == nil {
		a.GeneOtherIDs = []string{}
	}
	return a, r.err
}

// reader pulls typed values out of an Extracted record and keeps the first
// failure.
type reader struct {
	e   panelapp.Extracted
	err error
}

func (r *reader) raw(path string) any {
	v, ok := r.e.Get(path)
	if !ok && r.err == nil {
		r.err = domain.SchemaError(path, "extracted record")
	}
	return v
}

func (r *reader) str(path string) string {
	s, err := toString(r.raw(path))
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", path, err)
	}
	return s
}

func (r *reader) list(path string) []string {
	l, err := toStrings(r.raw(path))
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", path, err)
	}
	return l
}
