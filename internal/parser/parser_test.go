package parser

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const companyCSV = `COMPANY,PROJECT,LOCATION,Business Domain,Tags
Acme,"Infra,Search",Pune,Software,"ml,backend"
Globex,Mapping,Berlin,Logistics,geo
,Orphan,Nowhere,None,none
Acme,Billing,Pune,Software,"backend,ml"
`

func TestParseCompanyDetails(t *testing.T) {
	rows, report, err := ParseCompanyDetails("companies.csv", strings.NewReader(companyCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if report.SkipCount() != 1 {
		t.Errorf("expected 1 skipped row, got %d", report.SkipCount())
	}

	first := rows[0]
	if first.Name != "Acme" || first.Location != "Pune" || first.BusinessDomain != "Software" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if !reflect.DeepEqual(first.Tags, []string{"ml", "backend"}) {
		t.Errorf("expected tags [ml backend], got %v", first.Tags)
	}
	if !reflect.DeepEqual(first.Projects, []string{"Infra", "Search"}) {
		t.Errorf("expected projects [Infra Search], got %v", first.Projects)
	}
}

func TestParseCompanyDetailsMissingColumn(t *testing.T) {
	csv := "COMPANY,LOCATION\nAcme,Pune\n"
	_, _, err := ParseCompanyDetails("companies.csv", strings.NewReader(csv))

	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
	if len(malformed.Missing) != 3 {
		t.Errorf("expected 3 missing columns, got %v", malformed.Missing)
	}
}

func TestParseStipendDetails(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		wantRows  int
		wantSkips int
	}{
		{
			name:     "valid rows",
			csv:      "COMPANY,STIPEND\nAcme,20000\nGlobex,15000.0\n",
			wantRows: 2,
		},
		{
			name:      "non-numeric stipend skips the row only",
			csv:       "COMPANY,STIPEND\nAcme,lots\nGlobex,15000\n",
			wantRows:  1,
			wantSkips: 1,
		},
		{
			name:      "negative stipend skips the row",
			csv:       "COMPANY,STIPEND\nAcme,-500\n",
			wantSkips: 1,
		},
		{
			name:      "absurdly large stipend skips the row instead of wrapping negative",
			csv:       "COMPANY,STIPEND\nAcme,100000000000000000000\n",
			wantSkips: 1,
		},
		{
			name:      "empty name skips the row",
			csv:       "COMPANY,STIPEND\n,20000\n",
			wantSkips: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, report, err := ParseStipendDetails("stipend.csv", strings.NewReader(tt.csv))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, len(rows))
			}
			if report.SkipCount() != tt.wantSkips {
				t.Errorf("expected %d skips, got %d", tt.wantSkips, report.SkipCount())
			}
			for _, row := range rows {
				if row.Stipend < 0 {
					t.Errorf("row %q: negative stipend %d must never be parsed", row.Name, row.Stipend)
				}
			}
		})
	}
}

func TestParseStipendDetailsMissingColumn(t *testing.T) {
	_, _, err := ParseStipendDetails("stipend.csv", strings.NewReader("COMPANY\nAcme\n"))

	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"COMPANY", "STIPEND"},
		{"Acme", 20000},
	}
	for i, row := range cells {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("building workbook: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	rows, report, err := ParseStipendDetails("stipend.xlsx", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || report.SkipCount() != 0 {
		t.Fatalf("expected 1 clean row, got %d rows %d skips", len(rows), report.SkipCount())
	}
	if rows[0].Name != "Acme" || rows[0].Stipend != 20000 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestReadTableUnsupportedExtension(t *testing.T) {
	_, err := ReadTable("companies.pdf", strings.NewReader("x"))
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedInputError, got %v", err)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"ml,backend", []string{"ml", "backend"}},
		{" ml , backend , ml ", []string{"ml", "backend"}},
		{"", nil},
		{" , ,", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
