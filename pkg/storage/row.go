package storage

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
)

// WriteRow writes row as a single CSV record. An empty row produces a bare
// line terminator; a row holding one empty field is written as "" so it
// still reads back with one field.
func WriteRow(w io.Writer, row model.Row, crlf bool) error {
	if len(row) == 1 && row[0] == "" {
		eol := "\n"
		if crlf {
			eol = "\r\n"
		}
		if _, err := io.WriteString(w, `""`+eol); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		return nil
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = crlf

	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv row: %w", err)
	}
	return nil
}
