package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"leaguerats/pkg/errs"
)

// Document is a JSON object stored under a slash separated path.
type Document struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	Data      map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Field reads a dotted field path of the document data.
func (d Document) Field(path string) (any, bool) {
	return lookup(d.Data, path)
}

// Filter is an equality condition on a dotted field path.
type Filter struct {
	Field string
	Value any
}

// Query selects documents of one collection.
type Query struct {
	Collection string
	Where      []Filter
	OrderBy    string
	Desc       bool
	Limit      int
	StartAfter *Document
}

// Snapshot is the full state of a listened path.
// For a document path it holds zero or one document.
type Snapshot struct {
	Path      string
	Documents []Document
}

// Exists reports whether the snapshot holds anything.
func (s Snapshot) Exists() bool {
	return len(s.Documents) > 0
}

// Unsubscribe stops a listener. Safe to call more than once.
type Unsubscribe func()

// Store is the document database used by the state containers.
type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	Query(ctx context.Context, query Query) ([]Document, error)
	Add(ctx context.Context, collection string, data any) (Document, error)
	Set(ctx context.Context, path string, data any) error
	Listen(ctx context.Context, path string, onSnapshot func(Snapshot), onError func(error)) (Unsubscribe, error)
}

// Split a path into its non empty segments.
func segments(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CleanPath normalizes slashes.
func CleanPath(path string) string {
	return strings.Join(segments(path), "/")
}

// IsDocumentPath reports whether the path names a document (even segment count).
func IsDocumentPath(path string) bool {
	n := len(segments(path))
	return n > 0 && n%2 == 0
}

// IsCollectionPath reports whether the path names a collection (odd segment count).
func IsCollectionPath(path string) bool {
	return len(segments(path))%2 == 1
}

// SplitDocumentPath returns the collection and id of a document path.
func SplitDocumentPath(path string) (string, string, error) {
	parts := segments(path)
	if len(parts) == 0 || len(parts)%2 != 0 {
		return "", "", fmt.Errorf("%w: %q is not a document path", errs.ErrInvalidInput, path)
	}
	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1], nil
}

// Join builds a path from segments.
func Join(parts ...string) string {
	return CleanPath(strings.Join(parts, "/"))
}

func validateCollection(collection string) (string, error) {
	if !IsCollectionPath(collection) {
		return "", fmt.Errorf("%w: %q is not a collection path", errs.ErrInvalidInput, collection)
	}
	return CleanPath(collection), nil
}

// Normalize converts data to the JSON object form the stores keep.
func Normalize(data any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}

	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("%w: document data must be an object", errs.ErrInvalidInput)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func normalizeValue(value any) any {
	encoded, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return value
	}
	return out
}

func lookup(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Rank of JSON types in the jsonb ordering. Missing fields sort after everything.
func typeRank(value any, present bool) int {
	if !present {
		return 6
	}
	switch value.(type) {
	case nil:
		return 0
	case string:
		return 1
	case float64:
		return 2
	case bool:
		return 3
	case []any:
		return 4
	default:
		return 5
	}
}

// Compare two field values with the jsonb ordering.
func compareValues(a any, aOk bool, b any, bOk bool) int {
	ra, rb := typeRank(a, aOk), typeRank(b, bOk)
	if ra != rb {
		return ra - rb
	}

	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case nil:
		return 0
	default:
		ea, _ := json.Marshal(a)
		eb, _ := json.Marshal(b)
		return strings.Compare(string(ea), string(eb))
	}
}

// Compare two documents on a field, ties broken by id.
func compareDocuments(a, b Document, field string) int {
	if field != "" {
		av, aOk := a.Field(field)
		bv, bOk := b.Field(field)
		if c := compareValues(av, aOk, bv, bOk); c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID, b.ID)
}
