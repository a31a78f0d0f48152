// Package gencc reassembles the GenCC submission export: a quoted,
// tab-separated text file in which one logical record may span several
// physical lines. Pure functions: reader in, named-field records out.
package gencc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const (
	DefaultHeaderField  = "uuid"
	DefaultRecordPrefix = "GENCC"
	DefaultSeparator    = ";"

	// fieldDelimiter separates individually quoted fields on one physical line.
	fieldDelimiter = "\"\t\""
)

// Reassembler turns the raw export into one Record per logical row.
type Reassembler struct {
	// HeaderField is the first column name of the header line.
	HeaderField string
	// RecordPrefix starts the first field of every new logical record.
	RecordPrefix string
	// Separator joins a continuation piece onto the previous field.
	Separator string
	// Columns are the column names kept in every Record.
	Columns []string
}

// NewReassembler creates a Reassembler with the GenCC defaults.
func NewReassembler(columns []string) *Reassembler {
	return &Reassembler{
		HeaderField:  DefaultHeaderField,
		RecordPrefix: DefaultRecordPrefix,
		Separator:    DefaultSeparator,
		Columns:      columns,
	}
}

// ReadFile opens path and reassembles it.
func (a *Reassembler) ReadFile(path string) (*RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return a.Read(f)
}

// Read reassembles logical records from r.
//
// Column positions are resolved once from the header line. A line whose first
// trimmed field starts with RecordPrefix opens a new record; any other line
// after the header continues the current one.
func (a *Reassembler) Read(r io.Reader) (*RecordSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	set := NewRecordSet(a.Columns)

	var (
		indexes    []int
		current    []string
		lineNo     int
		seenHeader bool
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		rec, err := a.project(current, indexes)
		if err != nil {
			return err
		}
		set.Put(rec)
		current = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		pieces := TrimAll(strings.Split(strings.TrimSpace(scanner.Text()), fieldDelimiter))

		switch {
		case !seenHeader && pieces[0] == a.HeaderField:
			idx, err := resolveColumns(pieces, a.Columns)
			if err != nil {
				return nil, err
			}
			indexes = idx
			seenHeader = true

		case strings.HasPrefix(pieces[0], a.RecordPrefix):
			if !seenHeader {
				return nil, fmt.Errorf("%w: line %d: record before header", domain.ErrMalformedRow, lineNo)
			}
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = pieces

		default:
			if current == nil {
				return nil, fmt.Errorf("%w: line %d: continuation without an open record", domain.ErrMalformedRow, lineNo)
			}
			current = a.join(current, pieces)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	if !seenHeader {
		return nil, fmt.Errorf("%w: header field %q not found", domain.ErrSchemaMismatch, a.HeaderField)
	}
	if err := flush(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo, err)
	}

	return set, nil
}

// join appends a continuation line onto the current record. The first piece
// extends the last field; the remaining pieces become new trailing fields.
func (a *Reassembler) join(current, pieces []string) []string {
	last := len(current) - 1
	if strings.HasSuffix(current[last], a.Separator) {
		current[last] += pieces[0]
	} else {
		current[last] += a.Separator + pieces[0]
	}
	return append(current, pieces[1:]...)
}

func (a *Reassembler) project(fields []string, indexes []int) (Record, error) {
	rec := Record{ID: fields[0], Fields: make(map[string]string, len(a.Columns))}
	for i, idx := range indexes {
		if idx >= len(fields) {
			return Record{}, fmt.Errorf("%w: record %s has %d fields, column %q is at position %d",
				domain.ErrMalformedRow, rec.ID, len(fields), a.Columns[i], idx)
		}
		rec.Fields[a.Columns[i]] = fields[idx]
	}
	return rec, nil
}

// resolveColumns maps every declared column name to its header position.
func resolveColumns(header, columns []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := pos[col]
		if !ok {
			return nil, domain.SchemaError(col, "header")
		}
		indexes[i] = idx
	}
	return indexes, nil
}
