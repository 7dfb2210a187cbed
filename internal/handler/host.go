package handler

import (
	"github.com/deppfellow/booking-api/internal/model"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/deppfellow/booking-api/internal/service"
	"github.com/labstack/echo/v4"
)

// HostHandler serves /api/v1/hosts.
type HostHandler struct {
	Handler
	hosts *service.HostService
}

func NewHostHandler(s *server.Server, hosts *service.HostService) *HostHandler {
	return &HostHandler{
		Handler: NewHandler(s),
		hosts:   hosts,
	}
}

// GetHosts lists hosts, optionally filtered by a partial name.
func (h *HostHandler) GetHosts(c echo.Context, query *model.GetHostsQuery) ([]model.Host, error) {
	return h.hosts.GetHosts(c.Request().Context(), query)
}

func (h *HostHandler) GetHost(c echo.Context, param *model.HostIDParam) (*model.Host, error) {
	return h.hosts.GetHost(c.Request().Context(), param.UUID())
}

func (h *HostHandler) CreateHost(c echo.Context, payload *model.CreateHostPayload) (*model.Host, error) {
	return h.hosts.CreateHost(c.Request().Context(), payload)
}

func (h *HostHandler) UpdateHost(c echo.Context, payload *model.UpdateHostPayload) (*model.Host, error) {
	return h.hosts.UpdateHost(c.Request().Context(), payload)
}

func (h *HostHandler) DeleteHost(c echo.Context, param *model.HostIDParam) (*model.DeleteResponse, error) {
	if err := h.hosts.DeleteHost(c.Request().Context(), param.UUID()); err != nil {
		return nil, err
	}
	return &model.DeleteResponse{Message: "Host deleted successfully"}, nil
}
