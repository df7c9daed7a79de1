package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var locationsResource = resource{
	name:         "location",
	handle:       schema.Locations,
	layer:        cache.LayerLocations,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules: map[string]interface{}{
		"name":    "required,min=1,max=255",
		"country": "required,min=1,max=255",
	},
}

// ListLocations serves GET /api/locations.
func (h *Handler) ListLocations(c echo.Context) error {
	return h.list(c, locationsResource)
}

// GetLocation serves GET /api/locations/:id.
func (h *Handler) GetLocation(c echo.Context) error {
	return h.get(c, locationsResource)
}

// CreateLocation serves POST /api/locations.
func (h *Handler) CreateLocation(c echo.Context) error {
	return h.create(c, locationsResource)
}

// UpdateLocation serves PUT /api/locations/:id.
func (h *Handler) UpdateLocation(c echo.Context) error {
	return h.update(c, locationsResource)
}

// DeleteLocation serves DELETE /api/locations/:id.
func (h *Handler) DeleteLocation(c echo.Context) error {
	return h.remove(c, locationsResource)
}

// LocationStats serves GET /api/locations/stats.
func (h *Handler) LocationStats(c echo.Context) error {
	return h.stats(c, locationsResource)
}
