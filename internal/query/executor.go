package query

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// conflictKey is the fixed column upsert-ignore resolves conflicts on.
const conflictKey = "id"

// Executor translates immutable plans into backend calls, one call per
// plan execution. Store errors return verbatim: the executor neither
// retries nor wraps them, logging stays with the caller.
type Executor struct {
	store store.Store
	log   zerolog.Logger
}

// NewExecutor creates an executor over s.
func NewExecutor(s store.Store, log zerolog.Logger) *Executor {
	return &Executor{store: s, log: log}
}

// Select runs a select plan and returns its rows. The result is never
// nil; a read with no matches yields an empty slice.
func (e *Executor) Select(ctx context.Context, plan *Plan) ([]store.Record, error) {
	if plan.Table == "" {
		return nil, ErrNoTable
	}
	q := e.store.From(plan.Table).Select(columnList(plan.Columns))
	for _, c := range plan.Conditions {
		q = applyCondition(q, c, e.log)
	}
	e.noteJoins(plan)
	q = applyOrder(q, plan.OrderClause)
	if plan.Limit != nil {
		q = q.Limit(*plan.Limit)
	}
	rows, err := q.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

// Insert runs an insert plan and returns the inserted rows, never nil.
func (e *Executor) Insert(ctx context.Context, plan *Plan) ([]store.Record, error) {
	if plan.Table == "" {
		return nil, ErrNoTable
	}
	rows, err := e.store.From(plan.Table).Insert(ctx, plan.Payload, true)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

// UpsertIgnore runs an insert that leaves rows conflicting on the id
// column untouched, returning the resulting rows, never nil.
func (e *Executor) UpsertIgnore(ctx context.Context, plan *Plan) ([]store.Record, error) {
	if plan.Table == "" {
		return nil, ErrNoTable
	}
	rows, err := e.store.From(plan.Table).Upsert(ctx, plan.Payload, conflictKey, true)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

// Update runs an update plan against its accumulated conditions and
// returns the updated rows, never nil.
func (e *Executor) Update(ctx context.Context, plan *Plan) ([]store.Record, error) {
	if plan.Table == "" {
		return nil, ErrNoTable
	}
	q := e.store.From(plan.Table)
	for _, c := range plan.Conditions {
		q = applyCondition(q, c, e.log)
	}
	rows, err := q.Update(ctx, plan.Payload, true)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

// Delete runs a delete plan against its accumulated conditions. It
// resolves to no value on success.
func (e *Executor) Delete(ctx context.Context, plan *Plan) error {
	if plan.Table == "" {
		return ErrNoTable
	}
	q := e.store.From(plan.Table)
	for _, c := range plan.Conditions {
		q = applyCondition(q, c, e.log)
	}
	return q.Delete(ctx)
}

// noteJoins resolves tracked join table names for the log. The backend
// call is not widened by joins.
func (e *Executor) noteJoins(plan *Plan) {
	for _, j := range plan.Joins {
		e.log.Debug().
			Str("kind", string(j.Kind)).
			Str("table", resolveTable(j.Table, e.log)).
			Str("on", j.On.Column).
			Msg("join tracked but not applied to backend call")
	}
}

// columnList renders a plan's column selection for the backend; an
// empty selection requests every column.
func columnList(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	return strings.Join(columns, ",")
}

// normalizeRows guarantees a non-nil row slice.
func normalizeRows(rows []store.Record) []store.Record {
	if rows == nil {
		return []store.Record{}
	}
	return rows
}
