package query

import (
	"regexp"
	"strings"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// Direction is a sort direction.
type Direction string

const (
	// Asc sorts ascending.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// OrderRef describes one ordering argument. Exactly three shapes exist:
// OrderColumn, OrderSpec, and OrderExpr.
type OrderRef interface {
	orderRef()
}

// OrderColumn is a plain fragment used as-is. It may carry its own
// direction marker ("start_date.desc()") or none, in which case it
// sorts ascending.
type OrderColumn string

func (OrderColumn) orderRef() {}

// ColumnRef names the column inside an OrderSpec.
type ColumnRef struct {
	Name string
}

// OrderSpec is a structured ordering descriptor. A spec whose Direction
// is anything other than Asc sorts descending; in particular a spec
// with no direction at all defaults to descending.
type OrderSpec struct {
	Column    ColumnRef
	Direction Direction
}

func (OrderSpec) orderRef() {}

// OrderExpr is a raw ordering expression carrying one or two quoted
// identifiers and an optional direction keyword, e.g.
// `"trips"."start_date" DESC`. With two identifiers the second is the
// column.
type OrderExpr string

func (OrderExpr) orderRef() {}

// fallbackFragment is emitted for ordering arguments that cannot be
// understood.
const fallbackFragment = "id.asc()"

// quotedIdent matches one double-quoted identifier.
var quotedIdent = regexp.MustCompile(`"([^"]+)"`)

// normalizeOrder converts one ordering argument into a fragment of the
// composed order clause. Fragments encode direction with a trailing
// ".asc()" or ".desc()" marker.
func normalizeOrder(ref OrderRef) string {
	switch r := ref.(type) {
	case OrderColumn:
		if r != "" {
			return string(r)
		}
	case OrderSpec:
		if r.Column.Name == "" {
			break
		}
		if r.Direction == Asc {
			return r.Column.Name + ".asc()"
		}
		return r.Column.Name + ".desc()"
	case OrderExpr:
		column, ok := quotedColumn(string(r))
		if !ok {
			break
		}
		if strings.Contains(strings.ToLower(string(r)), "desc") {
			return column + ".desc()"
		}
		return column + ".asc()"
	}
	return fallbackFragment
}

// quotedColumn extracts the column name from a raw ordering expression.
func quotedColumn(expr string) (string, bool) {
	matches := quotedIdent.FindAllStringSubmatch(expr, -1)
	switch {
	case len(matches) >= 2:
		return matches[1][1], true
	case len(matches) == 1:
		return matches[0][1], true
	}
	return "", false
}

// applyOrder applies a composed order clause to a backend query.
// Fragments apply left to right; the first is the primary sort key. A
// fragment without a recognized marker sorts ascending on its raw text.
func applyOrder(q store.Query, clause string) store.Query {
	if clause == "" {
		return q
	}
	for _, fragment := range strings.Split(clause, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		switch {
		case strings.HasSuffix(fragment, ".desc()"):
			q = q.Order(strings.TrimSuffix(fragment, ".desc()"), false)
		case strings.HasSuffix(fragment, ".asc()"):
			q = q.Order(strings.TrimSuffix(fragment, ".asc()"), true)
		default:
			q = q.Order(fragment, true)
		}
	}
	return q
}
