package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var amenitiesResource = resource{
	name:         "amenity",
	handle:       schema.Amenities,
	layer:        cache.LayerAmenities,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules:  map[string]interface{}{"name": "required,min=1,max=255"},
}

// ListAmenities serves GET /api/amenities.
func (h *Handler) ListAmenities(c echo.Context) error {
	return h.list(c, amenitiesResource)
}

// GetAmenity serves GET /api/amenities/:id.
func (h *Handler) GetAmenity(c echo.Context) error {
	return h.get(c, amenitiesResource)
}

// CreateAmenity serves POST /api/amenities.
func (h *Handler) CreateAmenity(c echo.Context) error {
	return h.create(c, amenitiesResource)
}

// UpdateAmenity serves PUT /api/amenities/:id.
func (h *Handler) UpdateAmenity(c echo.Context) error {
	return h.update(c, amenitiesResource)
}

// DeleteAmenity serves DELETE /api/amenities/:id.
func (h *Handler) DeleteAmenity(c echo.Context) error {
	return h.remove(c, amenitiesResource)
}

// AmenityStats serves GET /api/amenities/stats.
func (h *Handler) AmenityStats(c echo.Context) error {
	return h.stats(c, amenitiesResource)
}
