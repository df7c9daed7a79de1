// Package postgres implements the store contract directly over a
// Postgres pool. Deployments without a PostgREST endpoint run on it.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// connectTimeout bounds the initial connection check.
const connectTimeout = 10 * time.Second

// Store implements store.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// New connects a pool for databaseURL and verifies it.
func New(ctx context.Context, databaseURL string, log zerolog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("database", cfg.ConnConfig.Database).Msg("connected to postgres")
	return &Store{pool: pool, log: log}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// From implements store.Store.
func (s *Store) From(table string) store.Query {
	return &sqlQuery{store: s, table: table, columns: "*"}
}

// sqlQuery accumulates one table-scoped request.
type sqlQuery struct {
	store   *Store
	table   string
	columns string
	filters []sqlFilter
	orders  []sqlOrder
	limit   *int
}

// Select implements store.Query.
func (q *sqlQuery) Select(columns string) store.Query {
	q.columns = columns
	return q
}

// Eq implements store.Query.
func (q *sqlQuery) Eq(column string, value interface{}) store.Query {
	q.filters = append(q.filters, sqlFilter{column: column, op: opEq, value: value})
	return q
}

// Ilike implements store.Query. The pattern arrives with the contract's
// "*" wildcards and is translated to SQL "%" here.
func (q *sqlQuery) Ilike(column, pattern string) store.Query {
	q.filters = append(q.filters, sqlFilter{column: column, op: opIlike, value: pattern})
	return q
}

// Order implements store.Query.
func (q *sqlQuery) Order(column string, ascending bool) store.Query {
	q.orders = append(q.orders, sqlOrder{column: column, ascending: ascending})
	return q
}

// Limit implements store.Query.
func (q *sqlQuery) Limit(n int) store.Query {
	q.limit = &n
	return q
}

// Fetch implements store.Query.
func (q *sqlQuery) Fetch(ctx context.Context) ([]store.Record, error) {
	sql, args := buildSelect(q.table, q.columns, q.filters, q.orders, q.limit)
	return q.queryRows(ctx, sql, args)
}

// Insert implements store.Query.
func (q *sqlQuery) Insert(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	sql, args, err := buildInsert(q.table, payload, "", false, returning)
	if err != nil {
		return nil, err
	}
	return q.execWrite(ctx, sql, args, returning)
}

// Upsert implements store.Query.
func (q *sqlQuery) Upsert(ctx context.Context, payload store.Record, conflictKey string, ignoreDuplicates bool) ([]store.Record, error) {
	sql, args, err := buildInsert(q.table, payload, conflictKey, ignoreDuplicates, true)
	if err != nil {
		return nil, err
	}
	return q.execWrite(ctx, sql, args, true)
}

// Update implements store.Query. Accumulated filters scope the update.
func (q *sqlQuery) Update(ctx context.Context, payload store.Record, returning bool) ([]store.Record, error) {
	sql, args, err := buildUpdate(q.table, payload, q.filters, returning)
	if err != nil {
		return nil, err
	}
	return q.execWrite(ctx, sql, args, returning)
}

// Delete implements store.Query. Accumulated filters scope the delete.
func (q *sqlQuery) Delete(ctx context.Context) error {
	sql, args := buildDelete(q.table, q.filters)
	_, err := q.store.pool.Exec(ctx, sql, args...)
	return err
}

func (q *sqlQuery) execWrite(ctx context.Context, sql string, args []interface{}, returning bool) ([]store.Record, error) {
	if !returning {
		_, err := q.store.pool.Exec(ctx, sql, args...)
		return nil, err
	}
	return q.queryRows(ctx, sql, args)
}

func (q *sqlQuery) queryRows(ctx context.Context, sql string, args []interface{}) ([]store.Record, error) {
	start := time.Now()
	rows, err := q.store.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		fields := rows.FieldDescriptions()
		record := make(store.Record, len(fields))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	q.store.log.Debug().
		Str("table", q.table).
		Int("rows", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("postgres query")
	return out, nil
}

// Ensure Store implements the store contract.
var _ store.Store = (*Store)(nil)

// Ensure sqlQuery implements the query contract.
var _ store.Query = (*sqlQuery)(nil)
