package query

import "github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"

// OpKind identifies the operation a plan executes.
type OpKind string

const (
	// OpSelect reads rows.
	OpSelect OpKind = "select"
	// OpInsert inserts a payload and returns the inserted rows.
	OpInsert OpKind = "insert"
	// OpUpsertIgnore inserts a payload, leaving conflicting rows
	// untouched.
	OpUpsertIgnore OpKind = "upsert_ignore"
	// OpUpdate updates rows matching the plan's conditions.
	OpUpdate OpKind = "update"
	// OpDelete deletes rows matching the plan's conditions.
	OpDelete OpKind = "delete"
)

// JoinKind distinguishes join flavors.
type JoinKind string

const (
	// JoinInner marks an inner join.
	JoinInner JoinKind = "inner"
	// JoinLeft marks a left join.
	JoinLeft JoinKind = "left"
)

// Join records one join requested on a select chain. Joins are tracked
// on the plan, but execution only resolves and logs the joined table
// name; the backend call is not widened by them.
type Join struct {
	Kind  JoinKind
	Table TableRef
	On    Condition
}

// Plan is an immutable snapshot of a builder's accumulated state. The
// executor reads one plan into exactly one backend call. Executing the
// same plan twice issues two independent calls.
type Plan struct {
	Operation   OpKind
	Table       string
	Columns     []string
	Conditions  []Condition
	Joins       []Join
	OrderClause string
	Limit       *int
	Payload     store.Record
}

// snapshotConditions copies a condition list for a plan.
func snapshotConditions(conditions []Condition) []Condition {
	if len(conditions) == 0 {
		return nil
	}
	out := make([]Condition, len(conditions))
	copy(out, conditions)
	return out
}

// snapshotJoins copies a join list for a plan.
func snapshotJoins(joins []Join) []Join {
	if len(joins) == 0 {
		return nil
	}
	out := make([]Join, len(joins))
	copy(out, joins)
	return out
}

// snapshotColumns copies a column list for a plan.
func snapshotColumns(columns []string) []string {
	if len(columns) == 0 {
		return nil
	}
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// snapshotLimit copies an optional limit for a plan.
func snapshotLimit(limit *int) *int {
	if limit == nil {
		return nil
	}
	n := *limit
	return &n
}

// snapshotPayload copies a write payload for a plan.
func snapshotPayload(payload store.Record) store.Record {
	if payload == nil {
		return nil
	}
	out := make(store.Record, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
