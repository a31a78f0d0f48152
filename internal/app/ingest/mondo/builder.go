package mondo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const (
	DefaultSourcePrefix = "MONDO"
	DefaultSourceColumn = 0
	DefaultTargetColumn = 3
)

// Builder reads tab-separated mapping files into a Table.
type Builder struct {
	// SourcePrefix selects data rows; header and comment rows never start with it.
	SourcePrefix string
	SourceColumn int
	TargetColumn int
}

// NewBuilder creates a Builder for MONDO SSSOM files.
func NewBuilder() *Builder {
	return &Builder{
		SourcePrefix: DefaultSourcePrefix,
		SourceColumn: DefaultSourceColumn,
		TargetColumn: DefaultTargetColumn,
	}
}

// Add appends every qualifying row of r to t.
func (b *Builder) Add(t *Table, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	need := max(b.SourceColumn, b.TargetColumn) + 1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, b.SourcePrefix) {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < need {
			return fmt.Errorf("%w: line %d: %d columns, need %d", domain.ErrMalformedRow, lineNo, len(cols), need)
		}
		t.Append(cols[b.SourceColumn], cols[b.TargetColumn])
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// AddFile appends the rows of the file at path to t.
func (b *Builder) AddFile(t *Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if err := b.Add(t, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// BuildFiles creates one table from all paths, in order.
func (b *Builder) BuildFiles(paths ...string) (*Table, error) {
	t := NewTable()
	for _, p := range paths {
		if err := b.AddFile(t, p); err != nil {
			return nil, err
		}
	}
	return t, nil
}
