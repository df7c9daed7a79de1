package postgres

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

type filterOp string

const (
	opEq    filterOp = "eq"
	opIlike filterOp = "ilike"
)

type sqlFilter struct {
	column string
	op     filterOp
	value  interface{}
}

type sqlOrder struct {
	column    string
	ascending bool
}

// ident quotes a single identifier.
func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// columnList quotes a comma-separated projection. "*" passes through.
func columnList(columns string) string {
	if columns == "" || columns == "*" {
		return "*"
	}
	parts := strings.Split(columns, ",")
	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "*" {
			quoted = append(quoted, "*")
			continue
		}
		quoted = append(quoted, ident(part))
	}
	if len(quoted) == 0 {
		return "*"
	}
	return strings.Join(quoted, ", ")
}

// whereClause renders filters as a WHERE fragment with positional args.
// Pattern values use the contract's "*" wildcard and are translated to
// SQL "%" for ILIKE.
func whereClause(filters []sqlFilter, args []interface{}) (string, []interface{}) {
	if len(filters) == 0 {
		return "", args
	}
	terms := make([]string, 0, len(filters))
	for _, f := range filters {
		switch f.op {
		case opIlike:
			pattern := strings.ReplaceAll(fmt.Sprint(f.value), "*", "%")
			args = append(args, pattern)
			terms = append(terms, fmt.Sprintf("%s ILIKE $%d", ident(f.column), len(args)))
		default:
			args = append(args, f.value)
			terms = append(terms, fmt.Sprintf("%s = $%d", ident(f.column), len(args)))
		}
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}

// sortedKeys returns payload keys in a stable order so generated SQL is
// deterministic.
func sortedKeys(payload store.Record) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func buildSelect(table, columns string, filters []sqlFilter, orders []sqlOrder, limit *int) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columnList(columns))
	sb.WriteString(" FROM ")
	sb.WriteString(ident(table))

	var args []interface{}
	where, args := whereClause(filters, args)
	sb.WriteString(where)

	if len(orders) > 0 {
		terms := make([]string, 0, len(orders))
		for _, o := range orders {
			direction := "DESC"
			if o.ascending {
				direction = "ASC"
			}
			terms = append(terms, ident(o.column)+" "+direction)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	if limit != nil {
		args = append(args, *limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return sb.String(), args
}

func buildInsert(table string, payload store.Record, conflictKey string, ignoreDuplicates, returning bool) (string, []interface{}, error) {
	if len(payload) == 0 {
		return "", nil, errors.New("empty insert payload")
	}

	keys := sortedKeys(payload)
	columns := make([]string, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		args = append(args, payload[key])
		columns = append(columns, ident(key))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(ident(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(placeholders, ", "))
	sb.WriteString(")")

	if conflictKey != "" && ignoreDuplicates {
		sb.WriteString(" ON CONFLICT (")
		sb.WriteString(ident(conflictKey))
		sb.WriteString(") DO NOTHING")
	}
	if returning {
		sb.WriteString(" RETURNING *")
	}

	return sb.String(), args, nil
}

func buildUpdate(table string, payload store.Record, filters []sqlFilter, returning bool) (string, []interface{}, error) {
	if len(payload) == 0 {
		return "", nil, errors.New("empty update payload")
	}

	keys := sortedKeys(payload)
	assignments := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)+len(filters))
	for _, key := range keys {
		args = append(args, payload[key])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", ident(key), len(args)))
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(ident(table))
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(assignments, ", "))

	where, args := whereClause(filters, args)
	sb.WriteString(where)

	if returning {
		sb.WriteString(" RETURNING *")
	}

	return sb.String(), args, nil
}

func buildDelete(table string, filters []sqlFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(ident(table))

	var args []interface{}
	where, args := whereClause(filters, args)
	sb.WriteString(where)

	return sb.String(), args
}
