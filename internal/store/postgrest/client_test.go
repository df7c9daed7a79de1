package postgrest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store/postgrest"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

func newTestClient(t *testing.T, status int, response string) (*postgrest.Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		captured.Header = r.Header.Clone()
		captured.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client := postgrest.NewClient(postgrest.Config{
		BaseURL:    srv.URL,
		ServiceKey: "service-key",
	}, zerolog.Nop())
	return client, captured
}

func TestClient_FetchBuildsRESTQuery(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[{"id":1,"name":"Athens"}]`)

	rows, err := client.From("locations").
		Select("id,name").
		Eq("country", "Greece").
		Ilike("name", "*ath*").
		Order("name", true).
		Order("id", false).
		Limit(10).
		Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Athens", rows[0]["name"])

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/locations", captured.Path)
	assert.Equal(t, []string{"id,name"}, captured.Query["select"])
	assert.Equal(t, []string{"eq.Greece"}, captured.Query["country"])
	assert.Equal(t, []string{"ilike.*ath*"}, captured.Query["name"])
	assert.Equal(t, []string{"name.asc,id.desc"}, captured.Query["order"])
	assert.Equal(t, []string{"10"}, captured.Query["limit"])
	assert.Equal(t, "service-key", captured.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", captured.Header.Get("Authorization"))
}

func TestClient_InsertRequestsRepresentation(t *testing.T) {
	client, captured := newTestClient(t, http.StatusCreated, `[{"id":5,"name":"Spa"}]`)

	rows, err := client.From("amenities").Insert(context.Background(), store.Record{"name": "Spa"}, true)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "return=representation", captured.Header.Get("Prefer"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.Body, &payload))
	assert.Equal(t, "Spa", payload["name"])
}

func TestClient_UpsertIgnoresDuplicates(t *testing.T) {
	client, captured := newTestClient(t, http.StatusCreated, `[]`)

	_, err := client.From("ship_amenities").
		Upsert(context.Background(), store.Record{"ship_id": 1, "amenity_id": 2}, "id", true)

	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, captured.Query["on_conflict"])
	assert.Equal(t, "resolution=ignore-duplicates,return=representation", captured.Header.Get("Prefer"))
}

func TestClient_UpdateScopedByFilters(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `[{"id":3,"status":"archived"}]`)

	rows, err := client.From("trips").
		Eq("id", 3).
		Update(context.Background(), store.Record{"status": "archived"}, true)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, http.MethodPatch, captured.Method)
	assert.Equal(t, []string{"eq.3"}, captured.Query["id"])
}

func TestClient_DeleteScopedByFilters(t *testing.T) {
	client, captured := newTestClient(t, http.StatusNoContent, "")

	err := client.From("ship_venues").Eq("ship_id", 4).Delete(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, captured.Method)
	assert.Equal(t, []string{"eq.4"}, captured.Query["ship_id"])
}

func TestClient_ErrorBodyBecomesRequestError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusConflict,
		`{"message":"duplicate key value violates unique constraint","code":"23505"}`)

	_, err := client.From("amenities").Insert(context.Background(), store.Record{"name": "Spa"}, true)

	require.Error(t, err)
	var reqErr *postgrest.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.Status)
	assert.Equal(t, "23505", reqErr.Code)
	assert.Contains(t, reqErr.Error(), "duplicate key")
}

func TestClient_NonJSONErrorBodyIsPreserved(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadGateway, "upstream unavailable")

	_, err := client.From("trips").Fetch(context.Background())

	var reqErr *postgrest.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "upstream unavailable", reqErr.Message)
}

func TestClient_Ping(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, "{}")

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "service-key", captured.Header.Get("apikey"))

	failing, _ := newTestClient(t, http.StatusServiceUnavailable, "")
	assert.Error(t, failing.Ping(context.Background()))
}
