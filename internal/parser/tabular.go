// tabular.go - Format-agnostic spreadsheet reading (CSV and XLSX)
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MalformedInputError means an uploaded file cannot be used at all: a
// required column is missing, the format is unsupported, or the
// workbook is unreadable. Ingestion aborts and commits nothing.
type MalformedInputError struct {
	File    string
	Missing []string
	Cause   error
}

func (e *MalformedInputError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Missing, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.File, e.Cause)
	}
	return fmt.Sprintf("%s: malformed input", e.File)
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// Table is a fully-read tabular file: one header row plus data rows.
// Both upload files are small enough to hold in memory.
type Table struct {
	Header []string
	Rows   [][]string
}

// SupportedFile reports whether the file extension is one the parser
// understands. Mirrors the original tool's upload allow-list.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ReadTable reads a spreadsheet into a Table, dispatching on the file
// extension.
func ReadTable(name string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		t, err := readCSV(r)
		if err != nil {
			return nil, &MalformedInputError{File: name, Cause: err}
		}
		return t, nil
	case ".xlsx":
		t, err := readXLSX(r)
		if err != nil {
			return nil, &MalformedInputError{File: name, Cause: err}
		}
		return t, nil
	}
	return nil, &MalformedInputError{File: name, Cause: fmt.Errorf("unsupported file type %q", filepath.Ext(name))}
}

func readCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-cell
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	// The original tool reads the first sheet only.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// columns maps required column names to their indices. Header matching
// trims whitespace but is otherwise exact, like the original's
// required-column check.
func (t *Table) columns(file string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		idx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MalformedInputError{File: file, Missing: missing}
	}
	return idx, nil
}

// cell returns the trimmed cell at the given column, or "" when the
// row is shorter than the header.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// splitList parses a comma-delimited cell into an ordered list,
// trimming entries, dropping empties and deduplicating while keeping
// first-seen order.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
