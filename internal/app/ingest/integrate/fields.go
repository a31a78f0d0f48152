package integrate

// GenCCFields names the export columns read for each Association field.
type GenCCFields struct {
	GeneID              string `yaml:"gene_id" env-default:"gene_curie"`
	GeneSymbol          string `yaml:"gene_symbol" env-default:"gene_symbol"`
	PrediseasePrimaryID string `yaml:"predisease_primary_id" env-default:"disease_curie"`
	PrediseaseTitle     string `yaml:"predisease_title" env-default:"disease_title"`
	PrediseaseOtherID   string `yaml:"predisease_other_id" env-default:"disease_original_curie"`
	Confidence          string `yaml:"confidence" env-default:"classification_title"`
	ModeOfInheritance   string `yaml:"mode_of_inheritance" env-default:"moi_title"`
	Submitter           string `yaml:"submitter" env-default:"submitter_title"`
	EvaluationDate      string `yaml:"evaluation_date" env-default:"submitted_as_date"`
	PMIDs               string `yaml:"pmids" env-default:"submitted_as_pmids"`
	SubmissionDate      string `yaml:"submission_date" env-default:"submitted_run_date"`
}

// DefaultGenCCFields returns the column names of the public GenCC export.
func DefaultGenCCFields() GenCCFields {
	return GenCCFields{
		GeneID:              "gene_curie",
		GeneSymbol:          "gene_symbol",
		PrediseasePrimaryID: "disease_curie",
		PrediseaseTitle:     "disease_title",
		PrediseaseOtherID:   "disease_original_curie",
		Confidence:          "classification_title",
		ModeOfInheritance:   "moi_title",
		Submitter:           "submitter_title",
		EvaluationDate:      "submitted_as_date",
		PMIDs:               "submitted_as_pmids",
		SubmissionDate:      "submitted_run_date",
	}
}

// Columns returns the distinct column names in field order, for the reassembler.
func (f GenCCFields) Columns() []string {
	return distinct(
		f.GeneID, f.GeneSymbol, f.PrediseasePrimaryID, f.PrediseaseTitle,
		f.PrediseaseOtherID, f.Confidence, f.ModeOfInheritance, f.Submitter,
		f.EvaluationDate, f.PMIDs, f.SubmissionDate,
	)
}

// PanelAppFields names the extracted key paths read for each Association
// field. Nested values are addressed as "parent.child".
type PanelAppFields struct {
	GeneName          string `yaml:"gene_name" env-default:"gene_data.gene_name"`
	HGNCID            string `yaml:"hgnc_id" env-default:"gene_data.hgnc_id"`
	HGNCSymbol        string `yaml:"hgnc_symbol" env-default:"gene_data.hgnc_symbol"`
	OMIMGene          string `yaml:"omim_gene" env-default:"gene_data.omim_gene"`
	Alias             string `yaml:"alias" env-default:"gene_data.alias"`
	AliasName         string `yaml:"alias_name" env-default:"gene_data.alias_name"`
	PanelName         string `yaml:"panel_name" env-default:"panel.name"`
	RelevantDisorders string `yaml:"relevant_disorders" env-default:"panel.relevant_disorders"`
	Phenotypes        string `yaml:"phenotypes" env-default:"phenotypes"`
	Confidence        string `yaml:"confidence" env-default:"confidence_level"`
	ModeOfInheritance string `yaml:"mode_of_inheritance" env-default:"mode_of_inheritance"`
	Publications      string `yaml:"publications" env-default:"publications"`
}

// DefaultPanelAppFields returns the key paths of the PanelApp v1 API.
func DefaultPanelAppFields() PanelAppFields {
	return PanelAppFields{
		GeneName:          "gene_data.gene_name",
		HGNCID:            "gene_data.hgnc_id",
		HGNCSymbol:        "gene_data.hgnc_symbol",
		OMIMGene:          "gene_data.omim_gene",
		Alias:             "gene_data.alias",
		AliasName:         "gene_data.alias_name",
		PanelName:         "panel.name",
		RelevantDisorders: "panel.relevant_disorders",
		Phenotypes:        "phenotypes",
		Confidence:        "confidence_level",
		ModeOfInheritance: "mode_of_inheritance",
		Publications:      "publications",
	}
}

func distinct(names ...string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
