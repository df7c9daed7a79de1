package query

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// Operator identifies the comparison a condition applies.
type Operator string

const (
	// OpEq matches rows where the column equals the bound value.
	OpEq Operator = "eq"
	// OpILike matches rows where the column matches a case-insensitive
	// pattern.
	OpILike Operator = "ilike"
)

// Condition is one filter predicate: a column, an operator, and the
// ordered bound values. Conditions accumulate on a builder and apply in
// order as an implicit conjunction.
type Condition struct {
	Column string
	Op     Operator
	Values []interface{}
}

// Eq builds an equality condition on column.
func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpEq, Values: []interface{}{value}}
}

// ILike builds a case-insensitive pattern condition on column. The
// pattern uses SQL "%" wildcards; they translate to the backend's "*"
// when the condition is applied.
func ILike(column, pattern string) Condition {
	return Condition{Column: column, Op: OpILike, Values: []interface{}{pattern}}
}

// applyCondition applies one condition to a backend query. A condition
// with no bound values, no column, or an unrecognized operator leaves
// the query untouched. Only the first bound value is consumed even when
// more are present.
func applyCondition(q store.Query, c Condition, log zerolog.Logger) store.Query {
	if len(c.Values) == 0 || c.Column == "" {
		log.Debug().Str("column", c.Column).Msg("skipping inert condition")
		return q
	}
	switch c.Op {
	case OpEq:
		return q.Eq(c.Column, c.Values[0])
	case OpILike:
		return q.Ilike(c.Column, toBackendPattern(c.Values[0]))
	default:
		log.Debug().Str("column", c.Column).Str("op", string(c.Op)).Msg("skipping condition with unrecognized operator")
		return q
	}
}

// toBackendPattern converts SQL "%" wildcards to the backend's "*".
func toBackendPattern(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.ReplaceAll(s, "%", "*")
}
