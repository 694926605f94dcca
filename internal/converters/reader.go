package converters

import (
	"encoding/json"
	"leaguerats/pkg/models/timestamp"
	"math"
	"strconv"
	"strings"
	"time"
)

// Defaults lists the dotted paths of fields that were absent or mistyped and got a zero value.
type Defaults []string

// Empty reports whether the payload was complete.
func (d Defaults) Empty() bool {
	return len(d) == 0
}

// Recorded when the whole payload isn't an object.
const rootPath = "$"

// Layouts accepted for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// reader walks an untyped JSON value and records every defaulted field.
type reader struct {
	data     map[string]any
	path     string
	defaults *Defaults
}

// Create a reader for an object, recording the object itself when it isn't one.
func newReader(raw any, path string, defaults *Defaults) reader {
	data, ok := raw.(map[string]any)
	if !ok {
		data = map[string]any{}
		if path == "" {
			*defaults = append(*defaults, rootPath)
		} else {
			*defaults = append(*defaults, path)
		}
	}
	return reader{data: data, path: path, defaults: defaults}
}

func (r reader) field(key string) string {
	if r.path == "" {
		return key
	}
	return r.path + "." + key
}

func (r reader) markDefault(key string) {
	*r.defaults = append(*r.defaults, r.field(key))
}

// Check if a key holds a non null value.
func (r reader) has(key string) bool {
	v, ok := r.data[key]
	return ok && v != nil
}

// Return the string if it's available, else returns a empty string.
func (r reader) str(key string) string {
	if val, ok := r.data[key].(string); ok {
		return val
	}
	r.markDefault(key)
	return ""
}

// First available string among alternative spellings of a key.
func (r reader) strOf(keys ...string) string {
	for _, key := range keys {
		if val, ok := r.data[key].(string); ok {
			return val
		}
	}
	r.markDefault(keys[0])
	return ""
}

func (r reader) int(key string) int {
	return int(r.int64(key))
}

func (r reader) int64(key string) int64 {
	if n, ok := toInt64(r.data[key]); ok {
		return n
	}
	r.markDefault(key)
	return 0
}

func (r reader) bool(key string) bool {
	if val, ok := r.data[key].(bool); ok {
		return val
	}
	r.markDefault(key)
	return false
}

// Nested object reader, an empty one when absent.
func (r reader) obj(key string) reader {
	return newReader(r.data[key], r.field(key), r.defaults)
}

// Raw list value, never nil.
func (r reader) list(key string) []any {
	if val, ok := r.data[key].([]any); ok {
		return val
	}
	r.markDefault(key)
	return []any{}
}

func (r reader) strList(key string) []string {
	items := r.list(key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r reader) intList(key string) []int {
	items := r.list(key)
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := toInt64(item); ok {
			out = append(out, int(n))
		}
	}
	return out
}

func (r reader) strMap(key string) map[string]string {
	out := map[string]string{}
	m, ok := r.data[key].(map[string]any)
	if !ok {
		r.markDefault(key)
		return out
	}
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Each element of a list as a reader with an indexed path.
func (r reader) objects(key string) []reader {
	items := r.list(key)
	out := make([]reader, 0, len(items))
	for i, item := range items {
		out = append(out, newReader(item, r.field(key)+"["+strconv.Itoa(i)+"]", r.defaults))
	}
	return out
}

func (r reader) timestamp(key string) timestamp.Timestamp {
	if ts, ok := parseTimestamp(r.data[key]); ok {
		return ts
	}
	r.markDefault(key)
	return timestamp.Timestamp{}
}

// Accepts epoch milliseconds, an already structured value or an ISO date string.
func parseTimestamp(raw any) (timestamp.Timestamp, bool) {
	switch v := raw.(type) {
	case timestamp.Timestamp:
		return v, true
	case time.Time:
		return timestamp.FromTime(v), true
	case map[string]any:
		seconds, ok := toInt64(firstOf(v, "seconds", "_seconds"))
		if !ok {
			return timestamp.Timestamp{}, false
		}
		nanos, _ := toInt64(firstOf(v, "nanoseconds", "_nanoseconds"))
		return timestamp.Timestamp{Seconds: seconds, Nanoseconds: int32(nanos)}, true
	case string:
		s := strings.TrimSpace(v)
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return timestamp.FromMillis(ms), true
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return timestamp.FromTime(t), true
			}
		}
		return timestamp.Timestamp{}, false
	default:
		if ms, ok := toInt64(v); ok {
			return timestamp.FromMillis(ms), true
		}
		return timestamp.Timestamp{}, false
	}
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Numbers decoded from JSON arrive as float64, documents may carry other types.
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case float32:
		return toInt64(float64(v))
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return toInt64(f)
		}
	}
	return 0, false
}

// MapList applies a mapper to every element of a list payload.
func MapList[T any](raw any, mapper func(any) (T, Defaults)) ([]T, Defaults) {
	var defaults Defaults
	items, ok := raw.([]any)
	if !ok {
		return []T{}, Defaults{"[]"}
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		mapped, d := mapper(item)
		for _, field := range d {
			defaults = append(defaults, "["+strconv.Itoa(i)+"]."+field)
		}
		out = append(out, mapped)
	}
	return out, defaults
}

// splitRiotID splits "name#tag" on the first '#'.
func splitRiotID(riotID string) (string, string) {
	gameName, tagLine, _ := strings.Cut(riotID, "#")
	return gameName, tagLine
}

// MapStringList converts a list of identifiers, skipping non string entries.
func MapStringList(raw any) ([]string, Defaults) {
	items, ok := raw.([]any)
	if !ok {
		return []string{}, Defaults{"[]"}
	}

	var defaults Defaults
	out := make([]string, 0, len(items))
	for i, item := range items {
		value, ok := item.(string)
		if !ok {
			defaults = append(defaults, "["+strconv.Itoa(i)+"]")
			continue
		}
		out = append(out, value)
	}
	return out, defaults
}
