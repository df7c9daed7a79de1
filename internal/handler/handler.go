// Package handler implements the admin API endpoints on top of the
// query builder.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store/postgrest"
)

// Handler serves the admin API.
type Handler struct {
	db       *query.DB
	cache    *cache.Manager
	validate *validator.Validate
	log      zerolog.Logger
}

// New creates a Handler.
func New(db *query.DB, cacheManager *cache.Manager, log zerolog.Logger) *Handler {
	if cacheManager == nil {
		cacheManager = cache.New(nil)
	}
	return &Handler{
		db:       db,
		cache:    cacheManager,
		validate: validator.New(),
		log:      log,
	}
}

// resource describes one entity family exposed over REST.
type resource struct {
	// name is the singular noun used in error messages.
	name string

	// handle is the table descriptor passed to the query builder.
	handle query.Handle

	// layer is the cache layer list responses live in.
	layer string

	// searchColumn is the column matched by the ?search= parameter.
	searchColumn string

	// defaultOrder sorts list responses when ?order= is absent.
	defaultOrder query.OrderRef

	// createRules are validator rules applied to create payloads,
	// keyed by snake_case column.
	createRules map[string]interface{}
}

// listParams are the query parameters accepted by list endpoints.
type listParams struct {
	search string
	order  string
	limit  int
}

func listParamsFrom(c echo.Context) (listParams, error) {
	params := listParams{
		search: strings.TrimSpace(c.QueryParam("search")),
		order:  strings.TrimSpace(c.QueryParam("order")),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return params, apierror.BadRequest("limit must be a positive integer", err)
		}
		params.limit = n
	}
	return params, nil
}

// orderRef parses an ?order= value of the form "column", "column.asc"
// or "column.desc". A bare column sorts descending, matching the
// builder's default direction.
func orderRef(raw string, fallback query.OrderRef) query.OrderRef {
	if raw == "" {
		return fallback
	}
	column, direction, _ := strings.Cut(raw, ".")
	if column == "" {
		return fallback
	}
	spec := query.OrderSpec{Column: query.ColumnRef{Name: column}}
	if strings.EqualFold(direction, "asc") {
		spec.Direction = query.Asc
	}
	return spec
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("id must be a positive integer", err)
	}
	return id, nil
}

// bindObject decodes the request body into a generic JSON object.
func bindObject(c echo.Context) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return nil, apierror.BadRequest("request body must be a JSON object", err)
	}
	if len(payload) == 0 {
		return nil, apierror.BadRequest("request body must not be empty", nil)
	}
	return payload, nil
}

// storeError maps a backend failure onto the API error taxonomy.
// Conflicts and availability problems keep their status, everything
// else is reported as an internal error.
func storeError(message string, err error) error {
	var reqErr *postgrest.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Status == http.StatusConflict:
			return apierror.Conflict(message, err)
		case reqErr.Status == http.StatusBadGateway || reqErr.Status == http.StatusServiceUnavailable:
			return apierror.Unavailable(message, err)
		}
	}
	return apierror.Internal(message, err)
}

// validationError flattens ValidateMap results into a 400 with the
// offending fields named.
func validationError(fieldErrs map[string]interface{}) error {
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return apierror.BadRequest("validation failed for: "+strings.Join(fields, ", "), nil)
}

// respondCached marshals payload, stores it under key and writes it out.
func (h *Handler) respondCached(c echo.Context, key string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apierror.Internal("failed to encode response", err)
	}
	h.cache.Set(c.Request().Context(), key, body)
	return c.JSONBlob(http.StatusOK, body)
}

// invalidate drops the cached lists and stats touched by a write.
func (h *Handler) invalidate(c echo.Context, layer string) {
	ctx := c.Request().Context()
	h.cache.InvalidateLayer(ctx, layer)
	h.cache.InvalidateLayer(ctx, cache.LayerStats)
}

// list serves a collection with optional search, order and limit.
func (h *Handler) list(c echo.Context, res resource) error {
	params, err := listParamsFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	key := h.cache.Key(res.layer, "list", c.QueryString())
	if cached, ok := h.cache.Get(ctx, key); ok {
		return c.JSONBlob(http.StatusOK, cached)
	}

	b := h.db.Select().From(res.handle)
	if params.search != "" && res.searchColumn != "" {
		b = b.Where(query.ILike(res.searchColumn, "%"+params.search+"%"))
	}
	b = b.OrderBy(orderRef(params.order, res.defaultOrder))
	if params.limit > 0 {
		b = b.Limit(params.limit)
	}

	rows, err := b.Fetch(ctx)
	if err != nil {
		return storeError("failed to fetch "+res.layer, err)
	}
	return h.respondCached(c, key, RecordsToAPI(rows))
}

// get serves a single record by id.
func (h *Handler) get(c echo.Context, res resource) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	row, err := h.db.Select().
		From(res.handle).
		Where(query.Eq("id", id)).
		Limit(1).
		FetchOne(c.Request().Context())
	if err != nil {
		return storeError("failed to fetch "+res.name, err)
	}
	if row == nil {
		return apierror.NotFound(res.name + " not found")
	}
	return c.JSON(http.StatusOK, RecordToAPI(row))
}

// create inserts a new record and returns it.
func (h *Handler) create(c echo.Context, res resource) error {
	payload, err := bindObject(c)
	if err != nil {
		return err
	}
	record := RecordFromAPI(payload)
	delete(record, "id")

	if len(res.createRules) > 0 {
		if fieldErrs := h.validate.ValidateMap(record, res.createRules); len(fieldErrs) > 0 {
			return validationError(fieldErrs)
		}
	}

	rows, err := h.db.Insert(res.handle).
		Values(record).
		Returning().
		Exec(c.Request().Context())
	if err != nil {
		return storeError("failed to create "+res.name, err)
	}
	if len(rows) == 0 {
		return apierror.Internal("failed to create "+res.name, nil)
	}

	h.invalidate(c, res.layer)
	return c.JSON(http.StatusCreated, RecordToAPI(rows[0]))
}

// update patches a record by id and returns the new row.
func (h *Handler) update(c echo.Context, res resource) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	payload, err := bindObject(c)
	if err != nil {
		return err
	}
	record := RecordFromAPI(payload)
	delete(record, "id")
	if len(record) == 0 {
		return apierror.BadRequest("no updatable fields in payload", nil)
	}

	rows, err := h.db.Update(res.handle).
		Set(record).
		Where(query.Eq("id", id)).
		Returning().
		Exec(c.Request().Context())
	if err != nil {
		return storeError("failed to update "+res.name, err)
	}
	if len(rows) == 0 {
		return apierror.NotFound(res.name + " not found")
	}

	h.invalidate(c, res.layer)
	return c.JSON(http.StatusOK, RecordToAPI(rows[0]))
}

// remove deletes a record by id. Deleting an absent id succeeds, the
// backend reports nothing about affected rows.
func (h *Handler) remove(c echo.Context, res resource) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	err = h.db.Delete(res.handle).
		Where(query.Eq("id", id)).
		Exec(c.Request().Context())
	if err != nil {
		return storeError("failed to delete "+res.name, err)
	}

	h.invalidate(c, res.layer)
	return c.NoContent(http.StatusNoContent)
}

// stats serves a total count for an entity family.
func (h *Handler) stats(c echo.Context, res resource) error {
	ctx := c.Request().Context()
	key := h.cache.Key(cache.LayerStats, res.layer)
	if cached, ok := h.cache.Get(ctx, key); ok {
		return c.JSONBlob(http.StatusOK, cached)
	}

	rows, err := h.db.Select("id").From(res.handle).Fetch(ctx)
	if err != nil {
		return storeError("failed to fetch "+res.layer+" stats", err)
	}
	return h.respondCached(c, key, map[string]int{"total": len(rows)})
}

// childList serves records owned by a parent, e.g. a trip's events.
func (h *Handler) childList(c echo.Context, owner resource, child query.Handle, fkColumn string, order query.OrderRef) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.ensureExists(ctx, owner, id); err != nil {
		return err
	}

	rows, err := h.db.Select().
		From(child).
		Where(query.Eq(fkColumn, id)).
		OrderBy(order).
		Fetch(ctx)
	if err != nil {
		return storeError("failed to fetch "+owner.name+" details", err)
	}
	return c.JSON(http.StatusOK, RecordsToAPI(rows))
}

// ensureExists returns a 404 unless the record is present.
func (h *Handler) ensureExists(ctx context.Context, res resource, id int) error {
	row, err := h.db.Select("id").
		From(res.handle).
		Where(query.Eq("id", id)).
		Limit(1).
		FetchOne(ctx)
	if err != nil {
		return storeError("failed to fetch "+res.name, err)
	}
	if row == nil {
		return apierror.NotFound(res.name + " not found")
	}
	return nil
}

// CacheStats reports cache statistics for the ops dashboard.
func (h *Handler) CacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cache.Stats(c.Request().Context()))
}
