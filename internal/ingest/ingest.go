// ingest.go - One upload = parse both files, merge, commit one snapshot
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/interntrack/backend/internal/archive"
	"github.com/interntrack/backend/internal/models"
	"github.com/interntrack/backend/internal/parser"
	"github.com/interntrack/backend/internal/store"
)

// FilePartCompanies and FilePartStipend are the multipart field names
// fixed by the client contract.
const (
	FilePartCompanies = "companies_details"
	FilePartStipend   = "stipend_details"
)

// File is an uploaded spreadsheet: its client-side filename (used to
// pick the format) and its content.
type File struct {
	Name   string
	Reader io.Reader
}

// Result summarizes a committed ingestion.
type Result struct {
	IngestionID  string
	Imported     int
	CompanySkips []models.SkippedRow
	StipendSkips []models.SkippedRow
}

// SkipCount returns the total number of skipped rows across both files.
func (r *Result) SkipCount() int {
	return len(r.CompanySkips) + len(r.StipendSkips)
}

// Summary builds the upload response message, matching the original
// tool's "Imported N companies." wording.
func (r *Result) Summary() string {
	msg := fmt.Sprintf("Imported %d companies.", r.Imported)
	if n := r.SkipCount(); n > 0 {
		msg += fmt.Sprintf(" Skipped %d rows.", n)
	}
	return msg
}

// Ingestor runs the parse → merge → commit pipeline.
type Ingestor struct {
	store   *store.CompanyStore
	archive *archive.Archive
}

func NewIngestor(s *store.CompanyStore) *Ingestor {
	return &Ingestor{store: s}
}

// WithArchive makes the ingestor keep a copy of every committed
// upload.
func (ing *Ingestor) WithArchive(a *archive.Archive) *Ingestor {
	ing.archive = a
	return ing
}

// Run ingests one upload. The two files are parsed concurrently; a
// MalformedInputError from either aborts the whole ingestion before
// anything is written. The merged set is committed in one store
// transaction, so the new snapshot becomes visible all at once.
func (ing *Ingestor) Run(ctx context.Context, companies File, stipends File) (*Result, error) {
	companyData, err := io.ReadAll(companies.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FilePartCompanies, err)
	}
	stipendData, err := io.ReadAll(stipends.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FilePartStipend, err)
	}

	var (
		companyRows   []models.CompanyRow
		companyReport *models.ParseReport
		stipendRows   []models.StipendRow
		stipendReport *models.ParseReport
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		companyRows, companyReport, err = parser.ParseCompanyDetails(companies.Name, bytes.NewReader(companyData))
		return err
	})
	g.Go(func() error {
		var err error
		stipendRows, stipendReport, err = parser.ParseStipendDetails(stipends.Name, bytes.NewReader(stipendData))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := MergeRows(companyRows, stipendRows)

	result := &Result{
		IngestionID:  uuid.New().String(),
		Imported:     len(merged),
		CompanySkips: companyReport.Skipped,
		StipendSkips: stipendReport.Skipped,
	}

	rec := store.Ingestion{
		ID:       result.IngestionID,
		Imported: result.Imported,
		Skipped:  result.SkipCount(),
	}
	if err := ing.store.ApplySnapshot(ctx, rec, merged); err != nil {
		return nil, err
	}

	// committed uploads are archived best-effort
	if ing.archive != nil {
		if _, err := ing.archive.Save(result.IngestionID, FilePartCompanies, companies.Name, companyData); err != nil {
			fmt.Printf("[Ingest %s] Warning: %v\n", result.IngestionID[:8], err)
		}
		if _, err := ing.archive.Save(result.IngestionID, FilePartStipend, stipends.Name, stipendData); err != nil {
			fmt.Printf("[Ingest %s] Warning: %v\n", result.IngestionID[:8], err)
		}
	}

	fmt.Printf("[Ingest %s] imported=%d skipped=%d\n",
		result.IngestionID[:8], result.Imported, result.SkipCount())

	return result, nil
}
