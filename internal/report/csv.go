package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bsan5566/food-waste/pkg/types"
)

// WriteCSV emits the table as delimited text: one header row with the column
// names, then the data rows. NULL cells become empty fields.
func WriteCSV(w io.Writer, table *types.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, cell := range row {
			if cell == nil {
				record[i] = ""
				continue
			}
			record[i] = fmt.Sprint(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
