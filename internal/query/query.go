// Package query implements the fluent query layer the route handlers
// compose against. A builder accumulates one logical query's intent,
// snapshots it into an immutable Plan, and the executor translates that
// plan into exactly one call against the narrow store contract.
package query

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// Record is one backend row, keyed by column name.
type Record = store.Record

var (
	// ErrBuilderConsumed is returned by a terminal method when the
	// builder already executed. Builders are single-use.
	ErrBuilderConsumed = errors.New("builder already executed")

	// ErrNoTable is returned by a terminal method when no table was set.
	// The builder stays unconsumed.
	ErrNoTable = errors.New("no table set for query")
)

// DB hands out builders bound to one backend store.
type DB struct {
	exec *Executor
	log  zerolog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for translation diagnostics. Without
// it the DB stays silent.
func WithLogger(log zerolog.Logger) Option {
	return func(db *DB) {
		db.log = log
	}
}

// NewDB creates a DB backed by s.
func NewDB(s store.Store, opts ...Option) *DB {
	db := &DB{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(db)
	}
	db.exec = NewExecutor(s, db.log)
	return db
}

// Executor returns the executor builders hand their plans to. Callers
// holding plans directly can execute them through it.
func (db *DB) Executor() *Executor {
	return db.exec
}

// Select starts a select builder. With no arguments every column is
// requested. A builder must not be shared across goroutines.
func (db *DB) Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{db: db, columns: append([]string(nil), columns...)}
}

// Insert starts an insert builder against table.
func (db *DB) Insert(table TableRef) *InsertBuilder {
	return &InsertBuilder{db: db, table: resolveTable(table, db.log)}
}

// Update starts an update builder against table.
func (db *DB) Update(table TableRef) *UpdateBuilder {
	return &UpdateBuilder{db: db, table: resolveTable(table, db.log)}
}

// Delete starts a delete builder against table.
func (db *DB) Delete(table TableRef) *DeleteBuilder {
	return &DeleteBuilder{db: db, table: resolveTable(table, db.log)}
}
