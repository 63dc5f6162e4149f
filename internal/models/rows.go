package models

// CompanyRow is one parsed row from the company-details spreadsheet.
// Tags and Projects come from comma-delimited cells, already trimmed
// and deduplicated in first-seen order.
type CompanyRow struct {
	Name           string
	Location       string
	BusinessDomain string
	Tags           []string
	Projects       []string
}

// StipendRow is one parsed row from the stipend spreadsheet.
type StipendRow struct {
	Name    string
	Stipend int
}

// SkippedRow records a non-fatal row-level parse failure.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseReport accumulates row-level outcomes of a single file parse.
// Skips are not failures; they are surfaced in the ingestion summary.
type ParseReport struct {
	Rows    int          `json:"rows"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// Skip records a skipped row with its 1-based line number.
func (r *ParseReport) Skip(line int, reason string) {
	r.Skipped = append(r.Skipped, SkippedRow{Line: line, Reason: reason})
}

// SkipCount returns the number of skipped rows.
func (r *ParseReport) SkipCount() int {
	return len(r.Skipped)
}
