package integrate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// ConcatenateAliases joins free-text alias sources into one
// semicolon-terminated string. A string contributes "s;", a list contributes
// its elements joined by ";" followed by ";", and nil contributes ";".
func ConcatenateAliases(elems ...any) (string, error) {
	var b strings.Builder
	for i, e := range elems {
		switch v := e.(type) {
		case nil:
		case string:
			b.WriteString(v)
		case []string:
			b.WriteString(strings.Join(v, ";"))
		case []any:
			parts, err := toStrings(v)
			if err != nil {
				return "", fmt.Errorf("alias element %d: %w", i, err)
			}
			b.WriteString(strings.Join(parts, ";"))
		default:
			return "", fmt.Errorf("%w: alias element %d has type %T", domain.ErrSchemaMismatch, i, e)
		}
		b.WriteByte(';')
	}
	return b.String(), nil
}

var (
	idPatternsMu sync.Mutex
	idPatterns   = map[int]*regexp.Regexp{}
)

func idPattern(digits int) *regexp.Regexp {
	idPatternsMu.Lock()
	defer idPatternsMu.Unlock()

	re, ok := idPatterns[digits]
	if !ok {
		re = regexp.MustCompile(`(?:^|[^0-9])([0-9]{` + strconv.Itoa(digits) + `})(?:[^0-9]|$)`)
		idPatterns[digits] = re
	}
	return re
}

// ParseIDs returns, for each element of strs, the first run of exactly digits
// consecutive digits. Elements without one are dropped; order and duplicates
// are kept.
func ParseIDs(strs []string, digits int) []string {
	re := idPattern(digits)
	ids := make([]string, 0, len(strs))
	for _, s := range strs {
		if m := re.FindStringSubmatch(s); m != nil {
			ids = append(ids, m[1])
		}
	}
	return ids
}

// toString renders a scalar JSON value. nil becomes "".
func toString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", fmt.Errorf("%w: expected scalar, got %T", domain.ErrSchemaMismatch, v)
	}
}

// toStrings renders a JSON list of scalars. nil becomes an empty list and a
// lone scalar becomes a singleton.
func toStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			s, err := toString(e)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}
