// Package schema declares the table handles the route handlers pass to
// the query layer. Every handle's name must stay in the query
// package's known-table registry.
package schema

import "github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"

var (
	// Trips holds one cruise or resort trip per row.
	Trips = query.Handle{SQLName: "trips"}

	// Itineraries holds per-day stops for a trip.
	Itineraries = query.Handle{SQLName: "itineraries"}

	// Events holds scheduled happenings aboard a trip.
	Events = query.Handle{SQLName: "events"}

	// Talent holds performers and hosts.
	Talent = query.Handle{SQLName: "talent"}

	// TripTalent links talent to the trips they appear on.
	TripTalent = query.Handle{SQLName: "trip_talent"}

	// Ships holds cruise ships.
	Ships = query.Handle{SQLName: "ships"}

	// Resorts holds land resorts.
	Resorts = query.Handle{SQLName: "resorts"}

	// Locations holds ports and destinations.
	Locations = query.Handle{SQLName: "locations"}

	// Venues holds on-board and on-property venues.
	Venues = query.Handle{SQLName: "venues"}

	// VenueTypes holds the venue classification list.
	VenueTypes = query.Handle{SQLName: "venue_types"}

	// Amenities holds ship and resort amenities.
	Amenities = query.Handle{SQLName: "amenities"}

	// ShipVenues links ships to their venues.
	ShipVenues = query.Handle{SQLName: "ship_venues"}

	// ShipAmenities links ships to their amenities.
	ShipAmenities = query.Handle{SQLName: "ship_amenities"}

	// ResortVenues links resorts to their venues.
	ResortVenues = query.Handle{SQLName: "resort_venues"}

	// ResortAmenities links resorts to their amenities.
	ResortAmenities = query.Handle{SQLName: "resort_amenities"}

	// TripInfoSections holds the editorial sections of a trip guide.
	TripInfoSections = query.Handle{SQLName: "trip_info_sections"}

	// TripStatus holds the trip lifecycle states.
	TripStatus = query.Handle{SQLName: "trip_status"}

	// Profiles and Settings predate the SQLName field and carry their
	// names in the metadata block.

	// Profiles holds admin user profiles.
	Profiles = query.Handle{Meta: &query.TableMeta{Name: "profiles", Schema: "public"}}

	// Settings holds application settings rows.
	Settings = query.Handle{Meta: &query.TableMeta{Name: "settings", Schema: "public"}}
)

// All returns every declared handle keyed by its resolved table name.
func All() map[string]query.Handle {
	handles := []query.Handle{
		Trips, Itineraries, Events, Talent, TripTalent,
		Ships, Resorts, Locations,
		Venues, VenueTypes, Amenities,
		ShipVenues, ShipAmenities, ResortVenues, ResortAmenities,
		TripInfoSections, TripStatus, Profiles, Settings,
	}
	out := make(map[string]query.Handle, len(handles))
	for _, h := range handles {
		out[query.Resolve(h)] = h
	}
	return out
}
