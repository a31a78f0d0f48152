package gencc

import "strings"

// Trim normalizes one raw field: quote characters, non-breaking spaces and
// embedded tabs are removed, then leading and trailing ASCII spaces are
// stripped. Trim is idempotent.
func Trim(field string) string {
	field = trimReplacer.Replace(field)
	return strings.Trim(field, " ")
}

var trimReplacer = strings.NewReplacer(
	"\"", "",
	"\u00a0", "",
	"\t", "",
)

// TrimAll trims every field in place and returns the slice.
func TrimAll(fields []string) []string {
	for i, f := range fields {
		fields[i] = Trim(f)
	}
	return fields
}
