// handlers.go - Company query, rating update and ranking handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interntrack/backend/internal/ingest"
	"github.com/interntrack/backend/internal/models"
	"github.com/interntrack/backend/internal/rank"
	"github.com/interntrack/backend/internal/store"
)

// Handler carries the handler dependencies: the company table and the
// ingestion pipeline.
type Handler struct {
	store    *store.CompanyStore
	ingestor *ingest.Ingestor
	version  string
}

func NewHandler(s *store.CompanyStore, ing *ingest.Ingestor, version string) *Handler {
	return &Handler{store: s, ingestor: ing, version: version}
}

// HandleHealth reports liveness and the build version.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleListCompanies returns every company name in the fixed stable
// order (name ascending).
func (h *Handler) HandleListCompanies(c echo.Context) error {
	names, err := h.store.ListNames(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"companies": names})
}

// HandleGetCompany returns the full merged+rated view of one company.
func (h *Handler) HandleGetCompany(c echo.Context) error {
	name := c.Param("name")
	company, err := h.store.Get(c.Request().Context(), name)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]*models.Company{"company": company})
}

// HandleUpdateCompany applies a rating patch and returns the updated
// view. A patch with any out-of-range rating is rejected whole.
func (h *Handler) HandleUpdateCompany(c echo.Context) error {
	name := c.Param("name")

	var patch models.RatingPatch
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON payload")
	}

	company, err := h.store.UpdatePatch(c.Request().Context(), name, &patch)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]*models.Company{"company": company})
}

// HandleRanking recomputes the leaderboard from the current table.
func (h *Handler) HandleRanking(c echo.Context) error {
	companies, err := h.store.All(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string][]rank.Entry{"ranking": rank.Rank(companies)})
}
