package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var venuesResource = resource{
	name:         "venue",
	handle:       schema.Venues,
	layer:        cache.LayerVenues,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules: map[string]interface{}{
		"name":          "required,min=1,max=255",
		"venue_type_id": "required,numeric",
	},
}

var venueTypesResource = resource{
	name:         "venue type",
	handle:       schema.VenueTypes,
	layer:        cache.LayerVenues,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
}

// ListVenues serves GET /api/venues.
func (h *Handler) ListVenues(c echo.Context) error {
	return h.list(c, venuesResource)
}

// GetVenue serves GET /api/venues/:id.
func (h *Handler) GetVenue(c echo.Context) error {
	return h.get(c, venuesResource)
}

// CreateVenue serves POST /api/venues.
func (h *Handler) CreateVenue(c echo.Context) error {
	return h.create(c, venuesResource)
}

// UpdateVenue serves PUT /api/venues/:id.
func (h *Handler) UpdateVenue(c echo.Context) error {
	return h.update(c, venuesResource)
}

// DeleteVenue serves DELETE /api/venues/:id.
func (h *Handler) DeleteVenue(c echo.Context) error {
	return h.remove(c, venuesResource)
}

// VenueStats serves GET /api/venues/stats.
func (h *Handler) VenueStats(c echo.Context) error {
	return h.stats(c, venuesResource)
}

// ListVenueTypes serves GET /api/venue-types.
func (h *Handler) ListVenueTypes(c echo.Context) error {
	return h.list(c, venueTypesResource)
}
