package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store/storetest"
)

func TestGetShipAmenities_ResolvesJunctionInMemory(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("ships", store.Record{"id": 1, "name": "Oosterdam"})
	fake.RespondTo("ship_amenities",
		store.Record{"ship_id": 1, "amenity_id": 2},
		store.Record{"ship_id": 1, "amenity_id": 3},
	)
	fake.RespondTo("amenities",
		store.Record{"id": 1, "name": "Casino"},
		store.Record{"id": 2, "name": "Pool"},
		store.Record{"id": 3, "name": "Spa"},
	)

	c, rec := newContext(jsonRequest(http.MethodGet, "/api/ships/1/amenities", ""))
	require.NoError(t, h.GetShipAmenities(withID(c, "1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Pool"},{"id":3,"name":"Spa"}]`, rec.Body.String())

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "ships", calls[0].Table)
	assert.Equal(t, "ship_amenities", calls[1].Table)
	assert.Equal(t, "amenity_id", calls[1].Columns)
	assert.Equal(t, []storetest.Filter{{Column: "ship_id", Op: "eq", Value: 1}}, calls[1].Filters)
	assert.Equal(t, "amenities", calls[2].Table)
}

func TestGetShipAmenities_NoLinksReturnsEmptyArray(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("ships", store.Record{"id": 1})
	fake.RespondTo("ship_amenities")

	c, rec := newContext(jsonRequest(http.MethodGet, "/api/ships/1/amenities", ""))
	require.NoError(t, h.GetShipAmenities(withID(c, "1")))

	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Len(t, fake.Calls(), 2, "amenity catalog should not be fetched when nothing is linked")
}

func TestGetShipAmenities_UnknownShip(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("ships")

	c, _ := newContext(jsonRequest(http.MethodGet, "/api/ships/42/amenities", ""))
	err := h.GetShipAmenities(withID(c, "42"))

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
}

func TestReplaceShipAmenities_DeletesThenUpserts(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("ships", store.Record{"id": 1})
	fake.RespondTo("ship_amenities",
		store.Record{"ship_id": 1, "amenity_id": 2},
		store.Record{"ship_id": 1, "amenity_id": 3},
	)
	fake.RespondTo("amenities",
		store.Record{"id": 2, "name": "Pool"},
		store.Record{"id": 3, "name": "Spa"},
	)

	c, rec := newContext(jsonRequest(http.MethodPut, "/api/ships/1/amenities", `{"amenityIds":[3,2,3]}`))
	require.NoError(t, h.ReplaceShipAmenities(withID(c, "1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Pool"},{"id":3,"name":"Spa"}]`, rec.Body.String())

	calls := fake.Calls()
	require.Len(t, calls, 6)

	assert.Equal(t, "fetch", calls[0].Op)
	assert.Equal(t, "ships", calls[0].Table)

	assert.Equal(t, "delete", calls[1].Op)
	assert.Equal(t, "ship_amenities", calls[1].Table)
	assert.Equal(t, []storetest.Filter{{Column: "ship_id", Op: "eq", Value: 1}}, calls[1].Filters)

	assert.Equal(t, "upsert", calls[2].Op)
	assert.Equal(t, store.Record{"ship_id": 1, "amenity_id": 2}, calls[2].Payload, "duplicate ids should collapse")
	assert.Equal(t, "id", calls[2].ConflictKey)
	assert.True(t, calls[2].IgnoreDuplicates)

	assert.Equal(t, "upsert", calls[3].Op)
	assert.Equal(t, store.Record{"ship_id": 1, "amenity_id": 3}, calls[3].Payload)

	assert.Equal(t, "fetch", calls[4].Op)
	assert.Equal(t, "ship_amenities", calls[4].Table)
	assert.Equal(t, "fetch", calls[5].Op)
	assert.Equal(t, "amenities", calls[5].Table)
}

func TestReplaceShipAmenities_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing key", body: `{"venueIds":[1]}`},
		{name: "not an array", body: `{"amenityIds":"nope"}`},
		{name: "non numeric entry", body: `{"amenityIds":[1,"two"]}`},
		{name: "non positive entry", body: `{"amenityIds":[0]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fake := newTestHandler()
			fake.RespondTo("ships", store.Record{"id": 1})

			c, _ := newContext(jsonRequest(http.MethodPut, "/api/ships/1/amenities", tt.body))
			err := h.ReplaceShipAmenities(withID(c, "1"))

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))

			for _, call := range fake.Calls() {
				assert.NotEqual(t, "delete", call.Op, "invalid payloads must not clear links")
			}
		})
	}
}

func TestReplaceResortVenues_UsesResortColumns(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("resorts", store.Record{"id": 9})
	fake.RespondTo("resort_venues", store.Record{"resort_id": 9, "venue_id": 4})
	fake.RespondTo("venues", store.Record{"id": 4, "name": "Main Stage"})

	c, _ := newContext(jsonRequest(http.MethodPut, "/api/resorts/9/venues", `{"venueIds":[4]}`))
	require.NoError(t, h.ReplaceResortVenues(withID(c, "9")))

	calls := fake.Calls()
	require.Len(t, calls, 5)
	assert.Equal(t, "resort_venues", calls[1].Table)
	assert.Equal(t, []storetest.Filter{{Column: "resort_id", Op: "eq", Value: 9}}, calls[1].Filters)
	assert.Equal(t, store.Record{"resort_id": 9, "venue_id": 4}, calls[2].Payload)
}

func TestGetTripItinerary_OrderedByDay(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("trips", store.Record{"id": 5})
	fake.RespondTo("itineraries",
		store.Record{"trip_id": 5, "day": 1, "location_id": 11},
		store.Record{"trip_id": 5, "day": 2, "location_id": 12},
	)

	c, rec := newContext(jsonRequest(http.MethodGet, "/api/trips/5/itinerary", ""))
	require.NoError(t, h.GetTripItinerary(withID(c, "5")))

	assert.JSONEq(t,
		`[{"tripId":5,"day":1,"locationId":11},{"tripId":5,"day":2,"locationId":12}]`,
		rec.Body.String())

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "itineraries", calls[1].Table)
	assert.Equal(t, []storetest.Filter{{Column: "trip_id", Op: "eq", Value: 5}}, calls[1].Filters)
	assert.Equal(t, []storetest.Order{{Column: "day", Ascending: true}}, calls[1].Orders)
}

func TestGetTripEvents_UnknownTrip(t *testing.T) {
	h, fake := newTestHandler()
	fake.RespondTo("trips")

	c, _ := newContext(jsonRequest(http.MethodGet, "/api/trips/5/events", ""))
	err := h.GetTripEvents(withID(c, "5"))

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apierror.StatusOf(err))
	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, "trips", fake.Calls()[0].Table)
}
