package handler

import (
	"context"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/apierror"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/query"
	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// relation describes a many-to-many link between an owner entity and a
// related entity through a junction table.
type relation struct {
	// owner is the parent entity, e.g. ships.
	owner resource

	// related is the linked entity, e.g. amenities.
	related resource

	// junction is the link table descriptor.
	junction query.Handle

	// ownerColumn and relatedColumn are the junction's foreign keys.
	ownerColumn   string
	relatedColumn string

	// payloadKey is the camelCase array key accepted by replace
	// requests, e.g. "amenityIds".
	payloadKey string
}

// relatedList serves the related records linked to one owner. The
// backend applies no joins, so the junction and the related table are
// fetched separately and matched here.
func (h *Handler) relatedList(c echo.Context, rel relation) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.ensureExists(ctx, rel.owner, id); err != nil {
		return err
	}

	rows, err := h.fetchRelated(ctx, rel, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RecordsToAPI(rows))
}

// relatedReplace replaces the owner's links with the submitted id set.
// Existing links are deleted first, then each pair is inserted with
// duplicate conflicts ignored, so resubmitting the same set is safe.
func (h *Handler) relatedReplace(c echo.Context, rel relation) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	payload, err := bindObject(c)
	if err != nil {
		return err
	}
	ids, err := idList(payload, rel.payloadKey)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if err := h.ensureExists(ctx, rel.owner, id); err != nil {
		return err
	}

	err = h.db.Delete(rel.junction).
		Where(query.Eq(rel.ownerColumn, id)).
		Exec(ctx)
	if err != nil {
		return storeError("failed to update "+rel.owner.name+" "+rel.related.layer, err)
	}

	for _, relatedID := range ids {
		_, err := h.db.Insert(rel.junction).
			Values(store.Record{rel.ownerColumn: id, rel.relatedColumn: relatedID}).
			OnConflictDoNothing(ctx)
		if err != nil {
			return storeError("failed to update "+rel.owner.name+" "+rel.related.layer, err)
		}
	}

	h.invalidate(c, rel.owner.layer)
	h.invalidate(c, rel.related.layer)

	rows, err := h.fetchRelated(ctx, rel, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RecordsToAPI(rows))
}

// fetchRelated loads the junction rows for one owner and resolves them
// against the related table.
func (h *Handler) fetchRelated(ctx context.Context, rel relation, ownerID int) ([]store.Record, error) {
	links, err := h.db.Select(rel.relatedColumn).
		From(rel.junction).
		Where(query.Eq(rel.ownerColumn, ownerID)).
		Fetch(ctx)
	if err != nil {
		return nil, storeError("failed to fetch "+rel.owner.name+" "+rel.related.layer, err)
	}

	linked := make(map[int]bool, len(links))
	for _, link := range links {
		if id, ok := numericID(link[rel.relatedColumn]); ok {
			linked[id] = true
		}
	}
	if len(linked) == 0 {
		return []store.Record{}, nil
	}

	all, err := h.db.Select().
		From(rel.related.handle).
		OrderBy(query.OrderSpec{Column: query.ColumnRef{Name: "name"}, Direction: query.Asc}).
		Fetch(ctx)
	if err != nil {
		return nil, storeError("failed to fetch "+rel.related.layer, err)
	}

	out := make([]store.Record, 0, len(linked))
	for _, record := range all {
		if id, ok := numericID(record["id"]); ok && linked[id] {
			out = append(out, record)
		}
	}
	return out, nil
}

// idList extracts a positive integer array from a decoded JSON object.
func idList(payload map[string]interface{}, key string) ([]int, error) {
	raw, ok := payload[key]
	if !ok {
		return nil, apierror.BadRequest(key+" is required", nil)
	}
	values, ok := raw.([]interface{})
	if !ok {
		return nil, apierror.BadRequest(key+" must be an array of ids", nil)
	}

	seen := make(map[int]bool, len(values))
	ids := make([]int, 0, len(values))
	for _, value := range values {
		id, ok := numericID(value)
		if !ok || id <= 0 {
			return nil, apierror.BadRequest(key+" must contain positive integers", nil)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// numericID normalizes the numeric types JSON decoding and database
// drivers produce.
func numericID(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
