// routes.go - Route registration
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes binds the observed client contract. Paths are fixed;
// the browser client hardcodes them.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.HandleHealth)

	e.POST("/upload", h.HandleUpload)
	e.GET("/companies", h.HandleListCompanies)
	e.GET("/company/:name", h.HandleGetCompany)
	e.POST("/company/:name/update", h.HandleUpdateCompany)
	e.GET("/ranking", h.HandleRanking)
}

// SetupMiddleware configures the middleware chain and the error
// handler.
func SetupMiddleware(e *echo.Echo, allowOrigins []string, bodyLimit string, logRequests bool) {
	e.HTTPErrorHandler = ErrorHandler
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !logRequests {
				return true
			}
			return strings.HasSuffix(c.Request().URL.Path, "/health")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
}
