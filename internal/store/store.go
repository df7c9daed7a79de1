// Package store defines the narrow backend-client contract the query
// layer executes against.
package store

import "context"

// Record is a single row returned by the backend, keyed by column name.
type Record map[string]interface{}

// Store is the entry point into a backend. Implementations are scoped to
// one data store (PostgREST endpoint, Postgres pool, test fake).
type Store interface {
	// From begins a table-scoped request.
	From(table string) Query

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// Query is one table-scoped backend request being assembled. Filter and
// shaping calls return the receiver for chaining; the request runs when
// one of the executing methods is called. Implementations apply filters
// to reads, updates, and deletes alike.
type Query interface {
	// Select restricts the columns returned by Fetch. The argument uses
	// the backend's comma-separated form; "*" selects everything.
	Select(columns string) Query

	// Eq adds an equality filter on a column.
	Eq(column string, value interface{}) Query

	// Ilike adds a case-insensitive pattern filter on a column. The
	// pattern uses the backend's native wildcard token "*".
	Ilike(column, pattern string) Query

	// Order adds a per-column sort instruction. Instructions accumulate
	// in call order; the first is the primary sort key.
	Order(column string, ascending bool) Query

	// Limit bounds the number of rows requested.
	Limit(n int) Query

	// Fetch executes a read and returns the matching rows.
	Fetch(ctx context.Context) ([]Record, error)

	// Insert executes an insert of payload. When returning is true the
	// inserted rows come back, otherwise the result is empty.
	Insert(ctx context.Context, payload Record, returning bool) ([]Record, error)

	// Upsert executes an insert that resolves conflicts on conflictKey.
	// With ignoreDuplicates set, conflicting rows are left untouched.
	Upsert(ctx context.Context, payload Record, conflictKey string, ignoreDuplicates bool) ([]Record, error)

	// Update executes an update of payload against the accumulated
	// filters. When returning is true the updated rows come back.
	Update(ctx context.Context, payload Record, returning bool) ([]Record, error)

	// Delete executes a delete against the accumulated filters.
	Delete(ctx context.Context) error
}
