package banksort

import (
	"encoding/csv"
	"fmt"
	"io"
)

// this file contains the spreadsheet export format: one CSV row per entry,
// metadata columns first, then the raw record fields in canonical order.

// ExportCSV writes the entries to w as CSV. Metadata columns are prefixed
// with "meta." to keep them apart from same-named raw fields.
func ExportCSV(w io.Writer, entries []*Entry) error {
	cw := csv.NewWriter(w)

	header := []string{"meta.action", "meta.type", "meta.name", "meta.category"}
	header = append(header, RecordFields...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{string(e.Action), e.SourceType, e.SourceName, e.Category}
		for _, field := range RecordFields {
			v, _ := e.Raw.Field(field)
			row = append(row, v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
