package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/middleware"
)

// Register wires every route onto e. The guard middleware protects
// mutating routes and is expected to enforce the content editor role.
func (h *Handler) Register(e *echo.Echo, guard echo.MiddlewareFunc) {
	api := e.Group("/api")

	api.GET("/amenities/stats", h.AmenityStats)
	api.GET("/amenities", h.ListAmenities)
	api.GET("/amenities/:id", h.GetAmenity)
	api.POST("/amenities", h.CreateAmenity, guard, middleware.AuditAction("admin.amenity.create"))
	api.PUT("/amenities/:id", h.UpdateAmenity, guard, middleware.AuditAction("admin.amenity.update"))
	api.DELETE("/amenities/:id", h.DeleteAmenity, guard, middleware.AuditAction("admin.amenity.delete"))

	api.GET("/venue-types", h.ListVenueTypes)

	api.GET("/venues/stats", h.VenueStats)
	api.GET("/venues", h.ListVenues)
	api.GET("/venues/:id", h.GetVenue)
	api.POST("/venues", h.CreateVenue, guard, middleware.AuditAction("admin.venue.create"))
	api.PUT("/venues/:id", h.UpdateVenue, guard, middleware.AuditAction("admin.venue.update"))
	api.DELETE("/venues/:id", h.DeleteVenue, guard, middleware.AuditAction("admin.venue.delete"))

	api.GET("/resorts/stats", h.ResortStats)
	api.GET("/resorts", h.ListResorts)
	api.GET("/resorts/:id", h.GetResort)
	api.POST("/resorts", h.CreateResort, guard, middleware.AuditAction("admin.resort.create"))
	api.PUT("/resorts/:id", h.UpdateResort, guard, middleware.AuditAction("admin.resort.update"))
	api.DELETE("/resorts/:id", h.DeleteResort, guard, middleware.AuditAction("admin.resort.delete"))
	api.GET("/resorts/:id/amenities", h.GetResortAmenities)
	api.PUT("/resorts/:id/amenities", h.ReplaceResortAmenities, guard, middleware.AuditAction("admin.resort.amenities.update"))
	api.GET("/resorts/:id/venues", h.GetResortVenues)
	api.PUT("/resorts/:id/venues", h.ReplaceResortVenues, guard, middleware.AuditAction("admin.resort.venues.update"))

	api.GET("/ships/stats", h.ShipStats)
	api.GET("/ships", h.ListShips)
	api.GET("/ships/:id", h.GetShip)
	api.POST("/ships", h.CreateShip, guard, middleware.AuditAction("admin.ship.create"))
	api.PUT("/ships/:id", h.UpdateShip, guard, middleware.AuditAction("admin.ship.update"))
	api.DELETE("/ships/:id", h.DeleteShip, guard, middleware.AuditAction("admin.ship.delete"))
	api.GET("/ships/:id/amenities", h.GetShipAmenities)
	api.PUT("/ships/:id/amenities", h.ReplaceShipAmenities, guard, middleware.AuditAction("admin.ship.amenities.update"))
	api.GET("/ships/:id/venues", h.GetShipVenues)
	api.PUT("/ships/:id/venues", h.ReplaceShipVenues, guard, middleware.AuditAction("admin.ship.venues.update"))

	api.GET("/locations/stats", h.LocationStats)
	api.GET("/locations", h.ListLocations)
	api.GET("/locations/:id", h.GetLocation)
	api.POST("/locations", h.CreateLocation, guard, middleware.AuditAction("admin.location.create"))
	api.PUT("/locations/:id", h.UpdateLocation, guard, middleware.AuditAction("admin.location.update"))
	api.DELETE("/locations/:id", h.DeleteLocation, guard, middleware.AuditAction("admin.location.delete"))

	api.GET("/trips/stats", h.TripStats)
	api.GET("/trips", h.ListTrips)
	api.GET("/trips/:id", h.GetTrip)
	api.POST("/trips", h.CreateTrip, guard, middleware.AuditAction("admin.trip.create"))
	api.PUT("/trips/:id", h.UpdateTrip, guard, middleware.AuditAction("admin.trip.update"))
	api.DELETE("/trips/:id", h.DeleteTrip, guard, middleware.AuditAction("admin.trip.delete"))
	api.GET("/trips/:id/itinerary", h.GetTripItinerary)
	api.GET("/trips/:id/events", h.GetTripEvents)
	api.GET("/trips/:id/talent", h.GetTripTalent)
	api.PUT("/trips/:id/talent", h.ReplaceTripTalent, guard, middleware.AuditAction("admin.trip.talent.update"))

	api.GET("/talent", h.ListTalent)
	api.GET("/talent/:id", h.GetTalent)
	api.POST("/talent", h.CreateTalent, guard, middleware.AuditAction("admin.talent.create"))
	api.PUT("/talent/:id", h.UpdateTalent, guard, middleware.AuditAction("admin.talent.update"))
	api.DELETE("/talent/:id", h.DeleteTalent, guard, middleware.AuditAction("admin.talent.delete"))

	api.GET("/admin/cache/stats", h.CacheStats, guard)
}
