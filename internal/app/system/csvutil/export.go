package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportTable writes a header row followed by the prepared data rows.
// List screens render their column spec into the cell matrix so the
// download matches what the table shows.
func ExportTable(w io.Writer, headers []string, cells [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range cells {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
