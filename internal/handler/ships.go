package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/schema"
)

var shipsResource = resource{
	name:         "ship",
	handle:       schema.Ships,
	layer:        cache.LayerShips,
	searchColumn: "name",
	defaultOrder: query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc},
	createRules: map[string]interface{}{
		"name":        "required,min=1,max=255",
		"cruise_line": "required,min=1,max=255",
	},
}

var shipAmenitiesRelation = relation{
	owner:         shipsResource,
	related:       amenitiesResource,
	junction:      schema.ShipAmenities,
	ownerColumn:   "ship_id",
	relatedColumn: "amenity_id",
	payloadKey:    "amenityIds",
}

var shipVenuesRelation = relation{
	owner:         shipsResource,
	related:       venuesResource,
	junction:      schema.ShipVenues,
	ownerColumn:   "ship_id",
	relatedColumn: "venue_id",
	payloadKey:    "venueIds",
}

// ListShips serves GET /api/ships.
func (h *Handler) ListShips(c echo.Context) error {
	return h.list(c, shipsResource)
}

// GetShip serves GET /api/ships/:id.
func (h *Handler) GetShip(c echo.Context) error {
	return h.get(c, shipsResource)
}

// CreateShip serves POST /api/ships.
func (h *Handler) CreateShip(c echo.Context) error {
	return h.create(c, shipsResource)
}

// UpdateShip serves PUT /api/ships/:id.
func (h *Handler) UpdateShip(c echo.Context) error {
	return h.update(c, shipsResource)
}

// DeleteShip serves DELETE /api/ships/:id.
func (h *Handler) DeleteShip(c echo.Context) error {
	return h.remove(c, shipsResource)
}

// ShipStats serves GET /api/ships/stats.
func (h *Handler) ShipStats(c echo.Context) error {
	return h.stats(c, shipsResource)
}

// GetShipAmenities serves GET /api/ships/:id/amenities.
func (h *Handler) GetShipAmenities(c echo.Context) error {
	return h.relatedList(c, shipAmenitiesRelation)
}

// ReplaceShipAmenities serves PUT /api/ships/:id/amenities.
func (h *Handler) ReplaceShipAmenities(c echo.Context) error {
	return h.relatedReplace(c, shipAmenitiesRelation)
}

// GetShipVenues serves GET /api/ships/:id/venues.
func (h *Handler) GetShipVenues(c echo.Context) error {
	return h.relatedList(c, shipVenuesRelation)
}

// ReplaceShipVenues serves PUT /api/ships/:id/venues.
func (h *Handler) ReplaceShipVenues(c echo.Context) error {
	return h.relatedReplace(c, shipVenuesRelation)
}
