package query

import (
	"context"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// InsertBuilder accumulates an insert. Chain calls mutate and return
// the same builder; nothing touches the backend until Exec or the eager
// OnConflictDoNothing path.
type InsertBuilder struct {
	db       *DB
	table    string
	payload  store.Record
	consumed bool
}

// Values stores the payload to insert.
func (b *InsertBuilder) Values(payload Record) *InsertBuilder {
	b.payload = store.Record(payload)
	return b
}

// Returning returns the builder. Exec always requests the inserted rows
// back, so the call exists for API-shape symmetry only.
func (b *InsertBuilder) Returning() *InsertBuilder {
	return b
}

// Plan snapshots the accumulated state without consuming the builder.
func (b *InsertBuilder) Plan() *Plan {
	return &Plan{
		Operation: OpInsert,
		Table:     b.table,
		Payload:   snapshotPayload(b.payload),
	}
}

// Exec executes the insert and returns the inserted rows, never nil. A
// builder executes at most once.
func (b *InsertBuilder) Exec(ctx context.Context) ([]Record, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if b.table == "" {
		return nil, ErrNoTable
	}
	b.consumed = true
	return b.db.exec.Insert(ctx, b.Plan())
}

// OnConflictDoNothing executes immediately as an upsert that leaves
// rows conflicting on the id column untouched, and returns the
// resulting rows directly. It is not a chainable call: this path is
// eager where Exec is deferred, and it consumes the builder the same
// way.
func (b *InsertBuilder) OnConflictDoNothing(ctx context.Context) ([]Record, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if b.table == "" {
		return nil, ErrNoTable
	}
	b.consumed = true
	plan := b.Plan()
	plan.Operation = OpUpsertIgnore
	return b.db.exec.UpsertIgnore(ctx, plan)
}
