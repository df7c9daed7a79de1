package query

import "context"

// DeleteBuilder accumulates a delete. Chain calls mutate and return the
// same builder; nothing touches the backend until Exec.
type DeleteBuilder struct {
	db         *DB
	table      string
	conditions []Condition
	consumed   bool
}

// Where appends filter conditions. Conditions apply in accumulation
// order as an implicit conjunction.
func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

// Plan snapshots the accumulated state without consuming the builder.
func (b *DeleteBuilder) Plan() *Plan {
	return &Plan{
		Operation:  OpDelete,
		Table:      b.table,
		Conditions: snapshotConditions(b.conditions),
	}
}

// Exec executes the delete. It resolves to no value on success, unlike
// the row-returning builders. A builder executes at most once.
func (b *DeleteBuilder) Exec(ctx context.Context) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.table == "" {
		return ErrNoTable
	}
	b.consumed = true
	return b.db.exec.Delete(ctx, b.Plan())
}
