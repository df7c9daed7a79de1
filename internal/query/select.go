package query

import "context"

// SelectBuilder accumulates a read query. Chain calls mutate and return
// the same builder; nothing touches the backend until Fetch.
type SelectBuilder struct {
	db          *DB
	table       string
	columns     []string
	conditions  []Condition
	joins       []Join
	orderClause string
	limit       *int
	consumed    bool
}

// From resolves the table reference immediately and stores its name.
func (b *SelectBuilder) From(table TableRef) *SelectBuilder {
	b.table = resolveTable(table, b.db.log)
	return b
}

// Where appends filter conditions. Conditions apply in accumulation
// order as an implicit conjunction.
func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

// InnerJoin tracks an inner join. The joined table does not widen the
// backend call.
func (b *SelectBuilder) InnerJoin(table TableRef, on Condition) *SelectBuilder {
	b.joins = append(b.joins, Join{Kind: JoinInner, Table: table, On: on})
	return b
}

// LeftJoin tracks a left join. The joined table does not widen the
// backend call.
func (b *SelectBuilder) LeftJoin(table TableRef, on Condition) *SelectBuilder {
	b.joins = append(b.joins, Join{Kind: JoinLeft, Table: table, On: on})
	return b
}

// OrderBy normalizes each argument into a fragment and appends it to
// the composed order clause.
func (b *SelectBuilder) OrderBy(refs ...OrderRef) *SelectBuilder {
	for _, ref := range refs {
		fragment := normalizeOrder(ref)
		if b.orderClause == "" {
			b.orderClause = fragment
		} else {
			b.orderClause += ", " + fragment
		}
	}
	return b
}

// Limit bounds the number of rows requested. The bound is requested
// from the backend, not enforced client-side.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Returning is a no-op kept for API-shape symmetry with the write
// builders. Reads always return rows.
func (b *SelectBuilder) Returning() *SelectBuilder {
	return b
}

// Plan snapshots the accumulated state. The snapshot is independent of
// later chain calls and does not consume the builder.
func (b *SelectBuilder) Plan() *Plan {
	return &Plan{
		Operation:   OpSelect,
		Table:       b.table,
		Columns:     snapshotColumns(b.columns),
		Conditions:  snapshotConditions(b.conditions),
		Joins:       snapshotJoins(b.joins),
		OrderClause: b.orderClause,
		Limit:       snapshotLimit(b.limit),
	}
}

// Fetch executes the accumulated query and returns its rows, never nil.
// A builder executes at most once; later terminal calls return
// ErrBuilderConsumed.
func (b *SelectBuilder) Fetch(ctx context.Context) ([]Record, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if b.table == "" {
		return nil, ErrNoTable
	}
	b.consumed = true
	return b.db.exec.Select(ctx, b.Plan())
}

// FetchOne executes the accumulated query and returns its first row, or
// nil when no row matched. The builder is consumed either way.
func (b *SelectBuilder) FetchOne(ctx context.Context) (Record, error) {
	rows, err := b.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
