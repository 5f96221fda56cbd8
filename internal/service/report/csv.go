package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/workstead/hr-backend-go/internal/domain/report"
)

func renderCSV(name string, headers []string, rows [][]string) (report.File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return report.File{}, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return report.File{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return report.File{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	return report.File{
		Name:        name + ".csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}
