package dbexport

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVEncoder writes a header record with the first row's column names in
// server order, followed by one record per row.
type CSVEncoder struct{}

func (CSVEncoder) Encode(w io.Writer, rows RowIter) error {
	csvWriter := csv.NewWriter(w)
	var header []string
	first := true
	for rows.Next() {
		row := rows.Row()
		if first {
			header = append([]string(nil), row.Columns...)
			if err := csvWriter.Write(header); err != nil {
				return fmt.Errorf("error writing CSV header: %w", err)
			}
			first = false
		}
		record := make([]string, len(header))
		for i, col := range header {
			v, _ := row.Get(col)
			record[i] = FormatValue(v, "")
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return rows.Err()
}
