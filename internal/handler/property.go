package handler

import (
	"github.com/deppfellow/booking-api/internal/model"
	"github.com/deppfellow/booking-api/internal/server"
	"github.com/deppfellow/booking-api/internal/service"
	"github.com/labstack/echo/v4"
)

// PropertyHandler serves /api/v1/properties.
type PropertyHandler struct {
	Handler
	properties *service.PropertyService
}

func NewPropertyHandler(s *server.Server, properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		Handler:    NewHandler(s),
		properties: properties,
	}
}

// GetProperties lists properties filtered by location and a maximum nightly price.
func (h *PropertyHandler) GetProperties(c echo.Context, query *model.GetPropertiesQuery) ([]model.Property, error) {
	return h.properties.GetProperties(c.Request().Context(), query)
}

func (h *PropertyHandler) GetProperty(c echo.Context, param *model.PropertyIDParam) (*model.Property, error) {
	return h.properties.GetProperty(c.Request().Context(), param.UUID())
}

func (h *PropertyHandler) CreateProperty(c echo.Context, payload *model.CreatePropertyPayload) (*model.Property, error) {
	return h.properties.CreateProperty(c.Request().Context(), payload)
}

func (h *PropertyHandler) UpdateProperty(c echo.Context, payload *model.UpdatePropertyPayload) (*model.Property, error) {
	return h.properties.UpdateProperty(c.Request().Context(), payload)
}

func (h *PropertyHandler) DeleteProperty(c echo.Context, param *model.PropertyIDParam) (*model.DeleteResponse, error) {
	if err := h.properties.DeleteProperty(c.Request().Context(), param.UUID()); err != nil {
		return nil, err
	}
	return &model.DeleteResponse{Message: "Property deleted successfully"}, nil
}
