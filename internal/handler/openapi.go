package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/booking-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIUIPath is the docs page; it loads openapi.json from /static.
const OpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the interactive API docs.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves static/openapi.html, uncached so doc edits show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(OpenAPIUIPath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}
