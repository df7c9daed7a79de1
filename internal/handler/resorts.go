package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var resortsResource = resource{
	name:         "resort",
	handle:       schema.Resorts,
	layer:        cache.LayerResorts,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules: map[string]interface{}{
		"name":        "required,min=1,max=255",
		"location_id": "required,numeric",
	},
}

var resortAmenitiesRelation = relation{
	owner:         resortsResource,
	related:       amenitiesResource,
	junction:      schema.ResortAmenities,
	ownerColumn:   "resort_id",
	relatedColumn: "amenity_id",
	payloadKey:    "amenityIds",
}

var resortVenuesRelation = relation{
	owner:         resortsResource,
	related:       venuesResource,
	junction:      schema.ResortVenues,
	ownerColumn:   "resort_id",
	relatedColumn: "venue_id",
	payloadKey:    "venueIds",
}

// ListResorts serves GET /api/resorts.
func (h *Handler) ListResorts(c echo.Context) error {
	return h.list(c, resortsResource)
}

// GetResort serves GET /api/resorts/:id.
func (h *Handler) GetResort(c echo.Context) error {
	return h.get(c, resortsResource)
}

// CreateResort serves POST /api/resorts.
func (h *Handler) CreateResort(c echo.Context) error {
	return h.create(c, resortsResource)
}

// UpdateResort serves PUT /api/resorts/:id.
func (h *Handler) UpdateResort(c echo.Context) error {
	return h.update(c, resortsResource)
}

// DeleteResort serves DELETE /api/resorts/:id.
func (h *Handler) DeleteResort(c echo.Context) error {
	return h.remove(c, resortsResource)
}

// ResortStats serves GET /api/resorts/stats.
func (h *Handler) ResortStats(c echo.Context) error {
	return h.stats(c, resortsResource)
}

// GetResortAmenities serves GET /api/resorts/:id/amenities.
func (h *Handler) GetResortAmenities(c echo.Context) error {
	return h.relatedList(c, resortAmenitiesRelation)
}

// ReplaceResortAmenities serves PUT /api/resorts/:id/amenities.
func (h *Handler) ReplaceResortAmenities(c echo.Context) error {
	return h.relatedReplace(c, resortAmenitiesRelation)
}

// GetResortVenues serves GET /api/resorts/:id/venues.
func (h *Handler) GetResortVenues(c echo.Context) error {
	return h.relatedList(c, resortVenuesRelation)
}

// ReplaceResortVenues serves PUT /api/resorts/:id/venues.
func (h *Handler) ReplaceResortVenues(c echo.Context) error {
	return h.relatedReplace(c, resortVenuesRelation)
}
