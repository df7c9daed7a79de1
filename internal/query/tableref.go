package query

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// TableUnknown is the sentinel name returned when a table reference
// cannot be resolved. Resolution never panics and never errors.
const TableUnknown = "unknown"

// TableRef identifies a backend table. Exactly three shapes exist:
// Name, Handle, and Printable.
type TableRef interface {
	tableRef()
}

// Name is a canonical table name used verbatim.
type Name string

func (Name) tableRef() {}

// TableMeta is the metadata block carried by older schema handles.
type TableMeta struct {
	Name   string
	Schema string
}

// Handle is a structured schema handle. Resolution reads the explicit
// SQLName first and the nested metadata name second.
type Handle struct {
	SQLName string
	Meta    *TableMeta
}

func (Handle) tableRef() {}

// Printable wraps an opaque value whose printed form contains a known
// table name. Legacy call sites pass these.
type Printable struct {
	Value interface{}
}

func (Printable) tableRef() {}

// knownTables is the fixed registry used to recover a table name from a
// printed reference. Junction names precede the names they contain so
// the first containment hit is the most specific one.
var knownTables = []string{
	"trip_info_sections",
	"resort_amenities",
	"resort_venues",
	"ship_amenities",
	"ship_venues",
	"trip_status",
	"trip_talent",
	"venue_types",
	"itineraries",
	"amenities",
	"locations",
	"profiles",
	"settings",
	"resorts",
	"events",
	"talent",
	"venues",
	"ships",
	"trips",
}

// KnownTables returns the registry of table names in match order.
func KnownTables() []string {
	return append([]string(nil), knownTables...)
}

// Resolve maps a table reference to its canonical name, falling back to
// TableUnknown when nothing matches.
func Resolve(ref TableRef) string {
	return resolveTable(ref, zerolog.Nop())
}

func resolveTable(ref TableRef, log zerolog.Logger) string {
	switch r := ref.(type) {
	case Name:
		if r != "" {
			return string(r)
		}
	case Handle:
		if r.SQLName != "" {
			return r.SQLName
		}
		if r.Meta != nil && r.Meta.Name != "" {
			return r.Meta.Name
		}
		if name, ok := scanKnownTables(fmt.Sprint(r)); ok {
			return name
		}
	case Printable:
		if name, ok := scanKnownTables(fmt.Sprint(r.Value)); ok {
			return name
		}
	}
	log.Debug().Str("ref", fmt.Sprintf("%#v", ref)).Msg("unresolved table reference")
	return TableUnknown
}

// scanKnownTables returns the first registry entry contained in the
// printed form of a reference.
func scanKnownTables(printed string) (string, bool) {
	for _, name := range knownTables {
		if strings.Contains(printed, name) {
			return name, true
		}
	}
	return "", false
}
