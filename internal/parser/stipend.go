// stipend.go - Stipend spreadsheet parser
package parser

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/interntrack/backend/internal/models"
)

// StipendColumns is the required header set of the stipend file.
var StipendColumns = []string{"COMPANY", "STIPEND"}

// ParseStipendDetails reads stipend rows. Rows with an empty name or a
// stipend cell that is not a non-negative whole number are skipped and
// counted; only a missing column is fatal.
func ParseStipendDetails(name string, r io.Reader) ([]models.StipendRow, *models.ParseReport, error) {
	t, err := ReadTable(name, r)
	if err != nil {
		return nil, nil, err
	}

	idx, err := t.columns(name, StipendColumns)
	if err != nil {
		return nil, nil, err
	}

	report := &models.ParseReport{}
	rows := make([]models.StipendRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 2
		company := cell(row, idx["COMPANY"])
		if company == "" {
			report.Skip(line, "empty company name")
			continue
		}

		stipend, err := parseStipend(cell(row, idx["STIPEND"]))
		if err != nil {
			report.Skip(line, fmt.Sprintf("stipend: %v", err))
			continue
		}

		rows = append(rows, models.StipendRow{Name: company, Stipend: stipend})
		report.Rows++
	}

	return rows, report, nil
}

// parseStipend accepts integer cells and the "20000.0" form Excel
// exports produce, rejecting negatives and fractional amounts.
func parseStipend(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty cell")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount: %q", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole amount: %q", raw)
	}
	// converting beyond the int range would wrap negative
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("amount out of range: %q", raw)
	}
	return int(f), nil
}
