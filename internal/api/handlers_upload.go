// handlers_upload.go - Spreadsheet upload handler
package api

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interntrack/backend/internal/ingest"
	"github.com/interntrack/backend/internal/parser"
)

// form part names, fixed by the client contract
const (
	partCompanies = ingest.FilePartCompanies
	partStipend   = ingest.FilePartStipend
)

// HandleUpload accepts the two spreadsheet parts and runs the
// ingestion pipeline. Either both files commit as one snapshot or
// nothing does.
func (h *Handler) HandleUpload(c echo.Context) error {
	compHeader, err := c.FormFile(partCompanies)
	if err != nil {
		return NewMalformedInputError(
			fmt.Sprintf("Both files (%s, %s) are required.", partCompanies, partStipend))
	}
	stipHeader, err := c.FormFile(partStipend)
	if err != nil {
		return NewMalformedInputError(
			fmt.Sprintf("Both files (%s, %s) are required.", partCompanies, partStipend))
	}

	if !parser.SupportedFile(compHeader.Filename) || !parser.SupportedFile(stipHeader.Filename) {
		return NewMalformedInputError("Only CSV and Excel (.xlsx) files are allowed.")
	}

	compFile, err := compHeader.Open()
	if err != nil {
		return NewInternalError("failed to read uploaded file")
	}
	defer compFile.Close()

	stipFile, err := stipHeader.Open()
	if err != nil {
		return NewInternalError("failed to read uploaded file")
	}
	defer stipFile.Close()

	result, err := h.ingestor.Run(c.Request().Context(),
		ingest.File{Name: safeFilename(compHeader), Reader: compFile},
		ingest.File{Name: safeFilename(stipHeader), Reader: stipFile},
	)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":      result.Summary(),
		"ingestion_id": result.IngestionID,
		"imported":     result.Imported,
		"skipped_rows": result.SkipCount(),
	})
}

func safeFilename(h *multipart.FileHeader) string {
	if h.Filename == "" {
		return "upload"
	}
	return h.Filename
}
