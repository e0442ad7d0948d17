package catalog

import (
	"encoding/json"
	"strconv"
	"time"
)

// Helpers for flattening loosely-typed CMS values. Absent or malformed
// values become zero values so the engine never sees a missing field.

func stringOr(r Record, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func boolOr(r Record, key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

func intOr(r Record, key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return 0
}

// idString renders the record id, which Directus serves as either a UUID
// string or an integer, as the string the engine requires.
func idString(r Record) string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// relationName extracts the named attribute of a one-hop relation object,
// e.g. category.title or author.name.
func relationName(r Record, key, attr string) string {
	rel, ok := r[key].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := rel[attr].(string)
	return name
}

// junctionNames flattens a many-to-many junction list down to the display
// names of the far side, dropping nil and empty entries:
// [{<junctionKey>: {<attr>: "X"}}, ...] -> ["X", ...].
func junctionNames(r Record, key, junctionKey, attr string) []string {
	items, ok := r[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		junction, okJunction := item.(map[string]any)
		if !okJunction {
			continue
		}
		far, okFar := junction[junctionKey].(map[string]any)
		if !okFar {
			continue
		}
		if name, okName := far[attr].(string); okName && name != "" {
			out = append(out, name)
		}
	}
	return out
}

// stringList coerces a plain array field to []string, dropping non-string
// and empty entries.
func stringList(r Record, key string) []string {
	items, ok := r[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, okStr := item.(string); okStr && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// overallScore projects the "overall" subfield out of a scores structure
// that arrives either as a JSON object or as that object serialized to
// text. Malformed input scores 0; a single bad record never aborts a run.
func overallScore(r Record, key string) int {
	var scores map[string]any
	switch v := r[key].(type) {
	case map[string]any:
		scores = v
	case string:
		if err := json.Unmarshal([]byte(v), &scores); err != nil {
			return 0
		}
	default:
		return 0
	}
	switch overall := scores["overall"].(type) {
	case float64:
		return int(overall)
	case json.Number:
		if i, err := overall.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// epochMillis converts a CMS timestamp to milliseconds since epoch.
// Absent or unparseable timestamps become 0.
func epochMillis(r Record, key string) int64 {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return 0
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
