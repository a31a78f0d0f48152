package gencc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteTSV serializes set as one quoted, tab-separated line per record. The
// header line starts with headerField followed by the set's columns, so the
// output reads back through a Reassembler with the same columns.
func WriteTSV(w io.Writer, headerField string, set *RecordSet) error {
	bw := bufio.NewWriter(w)

	header := append([]string{headerField}, set.Columns()...)
	if err := writeLine(bw, header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for rec := range set.All() {
		row = append(row[:0], rec.ID)
		for _, col := range set.Columns() {
			row = append(row, rec.Get(col))
		}
		if err := writeLine(bw, row); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// WriteFile writes set to path, replacing any existing file.
func WriteFile(path, headerField string, set *RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := WriteTSV(f, headerField, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeLine(w *bufio.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		// Embedded newlines would split the record on read.
		quoted[i] = `"` + strings.ReplaceAll(f, "\n", " ") + `"`
	}
	if _, err := w.WriteString(strings.Join(quoted, "\t") + "\n"); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}
