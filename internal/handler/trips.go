package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var tripsResource = resource{
	name:         "trip",
	handle:       schema.Trips,
	layer:        cache.LayerTrips,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "start_date"}, Direction: query.Desc},
	createRules: map[string]interface{}{
		"name":       "required,min=1,max=255",
		"slug":       "required,min=1,max=255",
		"start_date": "required",
		"end_date":   "required",
	},
}

// ListTrips serves GET /api/trips. Trips sort by departure date,
// newest first.
func (h *Handler) ListTrips(c echo.Context) error {
	return h.list(c, tripsResource)
}

// GetTrip serves GET /api/trips/:id.
func (h *Handler) GetTrip(c echo.Context) error {
	return h.get(c, tripsResource)
}

// CreateTrip serves POST /api/trips.
func (h *Handler) CreateTrip(c echo.Context) error {
	return h.create(c, tripsResource)
}

// UpdateTrip serves PUT /api/trips/:id.
func (h *Handler) UpdateTrip(c echo.Context) error {
	return h.update(c, tripsResource)
}

// DeleteTrip serves DELETE /api/trips/:id.
func (h *Handler) DeleteTrip(c echo.Context) error {
	return h.remove(c, tripsResource)
}

// TripStats serves GET /api/trips/stats.
func (h *Handler) TripStats(c echo.Context) error {
	return h.stats(c, tripsResource)
}

// GetTripItinerary serves GET /api/trips/:id/itinerary, ordered by day.
func (h *Handler) GetTripItinerary(c echo.Context) error {
	return h.childList(c, tripsResource, schema.Itineraries, "trip_id",
		query.OrderSpec{Column: query.ColumnRef{Name: "day"}, Direction: query.Asc})
}

// GetTripEvents serves GET /api/trips/:id/events, ordered by date.
func (h *Handler) GetTripEvents(c echo.Context) error {
	return h.childList(c, tripsResource, schema.Events, "trip_id",
		query.OrderSpec{Column: query.ColumnRef{Name: "date"}, Direction: query.Asc})
}

// GetTripTalent serves GET /api/trips/:id/talent.
func (h *Handler) GetTripTalent(c echo.Context) error {
	return h.relatedList(c, tripTalentRelation)
}

// ReplaceTripTalent serves PUT /api/trips/:id/talent.
func (h *Handler) ReplaceTripTalent(c echo.Context) error {
	return h.relatedReplace(c, tripTalentRelation)
}

var talentResource = resource{
	name:         "talent",
	handle:       schema.Talent,
	layer:        cache.LayerTrips,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules:  map[string]interface{}{"name": "required,min=1,max=255"},
}

var tripTalentRelation = relation{
	owner:         tripsResource,
	related:       talentResource,
	junction:      schema.TripTalent,
	ownerColumn:   "trip_id",
	relatedColumn: "talent_id",
	payloadKey:    "talentIds",
}

// ListTalent serves GET /api/talent.
func (h *Handler) ListTalent(c echo.Context) error {
	return h.list(c, talentResource)
}

// GetTalent serves GET /api/talent/:id.
func (h *Handler) GetTalent(c echo.Context) error {
	return h.get(c, talentResource)
}

// CreateTalent serves POST /api/talent.
func (h *Handler) CreateTalent(c echo.Context) error {
	return h.create(c, talentResource)
}

// UpdateTalent serves PUT /api/talent/:id.
func (h *Handler) UpdateTalent(c echo.Context) error {
	return h.update(c, talentResource)
}

// DeleteTalent serves DELETE /api/talent/:id.
func (h *Handler) DeleteTalent(c echo.Context) error {
	return h.remove(c, talentResource)
}
