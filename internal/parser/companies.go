// companies.go - Company-details spreadsheet parser
package parser

import (
	"io"

	"github.com/interntrack/backend/internal/models"
)

// CompanyColumns is the required header set of the company-details
// file. Names follow the source spreadsheets exactly.
var CompanyColumns = []string{"COMPANY", "PROJECT", "LOCATION", "Business Domain", "Tags"}

// ParseCompanyDetails reads company-details rows. A row with an empty
// COMPANY cell is skipped and counted, not fatal. A missing required
// column fails the whole parse with a MalformedInputError.
func ParseCompanyDetails(name string, r io.Reader) ([]models.CompanyRow, *models.ParseReport, error) {
	t, err := ReadTable(name, r)
	if err != nil {
		return nil, nil, err
	}

	idx, err := t.columns(name, CompanyColumns)
	if err != nil {
		return nil, nil, err
	}

	report := &models.ParseReport{}
	rows := make([]models.CompanyRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 2 // 1-based, after the header
		company := cell(row, idx["COMPANY"])
		if company == "" {
			report.Skip(line, "empty company name")
			continue
		}

		rows = append(rows, models.CompanyRow{
			Name:           company,
			Location:       cell(row, idx["LOCATION"]),
			BusinessDomain: cell(row, idx["Business Domain"]),
			Tags:           splitList(cell(row, idx["Tags"])),
			Projects:       splitList(cell(row, idx["PROJECT"])),
		})
		report.Rows++
	}

	return rows, report, nil
}
