package query

import (
	"context"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// UpdateBuilder accumulates an update. Chain calls mutate and return
// the same builder; nothing touches the backend until Exec.
type UpdateBuilder struct {
	db         *DB
	table      string
	payload    store.Record
	conditions []Condition
	consumed   bool
}

// Set stores the payload to write.
func (b *UpdateBuilder) Set(payload Record) *UpdateBuilder {
	b.payload = store.Record(payload)
	return b
}

// Where appends filter conditions. Conditions apply in accumulation
// order as an implicit conjunction.
func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

// Returning returns the builder. Exec always requests the updated rows
// back, so the call exists for API-shape symmetry only.
func (b *UpdateBuilder) Returning() *UpdateBuilder {
	return b
}

// Plan snapshots the accumulated state without consuming the builder.
func (b *UpdateBuilder) Plan() *Plan {
	return &Plan{
		Operation:  OpUpdate,
		Table:      b.table,
		Conditions: snapshotConditions(b.conditions),
		Payload:    snapshotPayload(b.payload),
	}
}

// Exec executes the update and returns the updated rows, never nil. A
// builder executes at most once.
func (b *UpdateBuilder) Exec(ctx context.Context) ([]Record, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if b.table == "" {
		return nil, ErrNoTable
	}
	b.consumed = true
	return b.db.exec.Update(ctx, b.Plan())
}
