package handler

import (
	"strings"
	"unicode"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/store"
)

// The backend speaks snake_case, the admin UI speaks camelCase. These
// helpers convert record keys at the API boundary, recursing into
// nested objects and arrays.

// RecordToAPI returns a copy of record with camelCase keys.
func RecordToAPI(record store.Record) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for key, value := range record {
		out[toCamel(key)] = valueToAPI(value)
	}
	return out
}

// RecordsToAPI converts a result set. The result is never nil.
func RecordsToAPI(records []store.Record) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		out = append(out, RecordToAPI(record))
	}
	return out
}

// RecordFromAPI converts a decoded JSON object with camelCase keys into
// a snake_case record.
func RecordFromAPI(payload map[string]interface{}) store.Record {
	out := make(store.Record, len(payload))
	for key, value := range payload {
		out[toSnake(key)] = valueFromAPI(value)
	}
	return out
}

func valueToAPI(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[toCamel(key)] = valueToAPI(inner)
		}
		return out
	case store.Record:
		return RecordToAPI(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = valueToAPI(inner)
		}
		return out
	case []store.Record:
		return RecordsToAPI(v)
	default:
		return value
	}
}

func valueFromAPI(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[toSnake(key)] = valueFromAPI(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = valueFromAPI(inner)
		}
		return out
	default:
		return value
	}
}

// toCamel converts snake_case to camelCase. Keys without underscores
// pass through unchanged.
func toCamel(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// toSnake converts camelCase to snake_case. Runs of capitals stay
// together, so shipID becomes ship_id.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if i > 0 && (prevLower || nextLower) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
