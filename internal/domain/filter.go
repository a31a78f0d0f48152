package domain

// AssociationFilter contains filtering/pagination parameters for stored
// association listings. Nil and empty fields do not filter.
type AssociationFilter struct {
	Source     *Source
	GeneID     string
	GeneSymbol string
	// DiseaseID matches the primary disease ID or any of the other IDs.
	DiseaseID string
	Submitter string
	Limit     int
	Offset    int
}

// Validate checks paging bounds and the source value.
func (f AssociationFilter) Validate() error {
	var errs []FieldError
	if f.Source != nil && !f.Source.IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "unknown source " + string(*f.Source)})
	}
	if f.Limit < 0 {
		errs = append(errs, FieldError{Field: "limit", Message: "must not be negative"})
	}
	if f.Offset < 0 {
		errs = append(errs, FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}
