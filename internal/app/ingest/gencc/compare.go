package gencc

import "strings"

// CompareMode selects how two column values are considered consistent.
type CompareMode int

const (
	// CompareExact requires byte-equal values.
	CompareExact CompareMode = iota
	// ComparePrefix accepts values where either one is a case-insensitive
	// prefix of the other.
	ComparePrefix
)

// ParseCompareMode maps a config value to a CompareMode. Unknown values fall
// back to CompareExact.
func ParseCompareMode(s string) CompareMode {
	if strings.EqualFold(s, "prefix") {
		return ComparePrefix
	}
	return CompareExact
}

// CompareColumns returns the IDs of records whose values in columns a and b
// disagree under mode, in input order.
func CompareColumns(set *RecordSet, a, b string, mode CompareMode) []string {
	var mismatched []string
	for rec := range set.All() {
		if !columnsAgree(rec.Get(a), rec.Get(b), mode) {
			mismatched = append(mismatched, rec.ID)
		}
	}
	return mismatched
}

func columnsAgree(x, y string, mode CompareMode) bool {
	if mode == ComparePrefix {
		x, y = strings.ToLower(x), strings.ToLower(y)
		return strings.HasPrefix(x, y) || strings.HasPrefix(y, x)
	}
	return x == y
}
