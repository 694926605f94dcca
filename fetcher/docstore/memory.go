package docstore

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"leaguerats/pkg/errs"

	"github.com/google/uuid"
)

type memoryListener struct {
	path       string
	onSnapshot func(Snapshot)
}

// MemoryStore keeps documents in process. Listeners run synchronously on every write.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]Document
	listeners map[uuid.UUID]memoryListener
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]Document),
		listeners: make(map[uuid.UUID]memoryListener),
		now:       time.Now,
	}
}

// Get returns the document at path.
func (s *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	if _, _, err := SplitDocumentPath(path); err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[CleanPath(path)]
	if !ok {
		return Document{}, fmt.Errorf("document %s: %w", path, errs.ErrNotFound)
	}
	return copyDocument(doc), nil
}

// Query returns the matching documents of a collection.
func (s *MemoryStore) Query(ctx context.Context, query Query) ([]Document, error) {
	collection, err := validateCollection(query.Collection)
	if err != nil {
		return nil, err
	}

	filters := make([]Filter, len(query.Where))
	for i, filter := range query.Where {
		filters[i] = Filter{Field: filter.Field, Value: normalizeValue(filter.Value)}
	}

	s.mu.RLock()
	var docs []Document
	for _, doc := range s.documents {
		if parent, _, _ := SplitDocumentPath(doc.Path); parent != collection {
			continue
		}
		if !matches(doc, filters) {
			continue
		}
		docs = append(docs, copyDocument(doc))
	}
	s.mu.RUnlock()

	return applyQuery(docs, query), nil
}

// Add stores data under a generated id.
func (s *MemoryStore) Add(ctx context.Context, collection string, data any) (Document, error) {
	collection, err := validateCollection(collection)
	if err != nil {
		return Document{}, err
	}

	path := Join(collection, uuid.NewString())
	if err := s.Set(ctx, path, data); err != nil {
		return Document{}, err
	}
	return s.Get(ctx, path)
}

// Set creates or fully replaces the document at path.
func (s *MemoryStore) Set(ctx context.Context, path string, data any) error {
	_, id, err := SplitDocumentPath(path)
	if err != nil {
		return err
	}

	normalized, err := Normalize(data)
	if err != nil {
		return err
	}

	path = CleanPath(path)

	s.mu.Lock()
	s.documents[path] = Document{ID: id, Path: path, Data: normalized, UpdatedAt: s.now()}
	s.mu.Unlock()

	s.notify(path)
	return nil
}

// Delete removes the document at path.
func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	if _, _, err := SplitDocumentPath(path); err != nil {
		return err
	}

	path = CleanPath(path)

	s.mu.Lock()
	delete(s.documents, path)
	s.mu.Unlock()

	s.notify(path)
	return nil
}

// Listen delivers the current snapshot, then a new one after every change under path.
func (s *MemoryStore) Listen(ctx context.Context, path string, onSnapshot func(Snapshot), onError func(error)) (Unsubscribe, error) {
	if len(segments(path)) == 0 {
		return nil, fmt.Errorf("%w: empty listen path", errs.ErrInvalidInput)
	}

	path = CleanPath(path)
	id := uuid.New()

	s.mu.Lock()
	s.listeners[id] = memoryListener{path: path, onSnapshot: onSnapshot}
	s.mu.Unlock()

	onSnapshot(s.snapshot(path))

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, unsubscribe)

	return func() {
		stop()
		unsubscribe()
	}, nil
}

// Listeners returns the number of active listeners.
func (s *MemoryStore) Listeners() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.listeners)
}

func (s *MemoryStore) snapshot(path string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{Path: path, Documents: []Document{}}
	if IsDocumentPath(path) {
		if doc, ok := s.documents[path]; ok {
			snapshot.Documents = append(snapshot.Documents, copyDocument(doc))
		}
		return snapshot
	}

	for _, doc := range s.documents {
		if parent, _, _ := SplitDocumentPath(doc.Path); parent == path {
			snapshot.Documents = append(snapshot.Documents, copyDocument(doc))
		}
	}
	slices.SortFunc(snapshot.Documents, func(a, b Document) int {
		return compareDocuments(a, b, "")
	})
	return snapshot
}

func (s *MemoryStore) notify(changed string) {
	s.mu.RLock()
	var targets []memoryListener
	for _, listener := range s.listeners {
		if affects(listener.path, changed) {
			targets = append(targets, listener)
		}
	}
	s.mu.RUnlock()

	for _, listener := range targets {
		listener.onSnapshot(s.snapshot(listener.path))
	}
}

// Whether a change of a document path is visible to a listened path.
func affects(listened, changed string) bool {
	if listened == changed {
		return true
	}
	parent, _, err := SplitDocumentPath(changed)
	return err == nil && parent == listened
}

func matches(doc Document, filters []Filter) bool {
	for _, filter := range filters {
		value, ok := doc.Field(filter.Field)
		if !ok || !reflect.DeepEqual(value, filter.Value) {
			return false
		}
	}
	return true
}

// Sort, apply the cursor and the limit.
func applyQuery(docs []Document, query Query) []Document {
	direction := 1
	if query.Desc {
		direction = -1
	}

	slices.SortFunc(docs, func(a, b Document) int {
		return direction * compareDocuments(a, b, query.OrderBy)
	})

	if query.StartAfter != nil {
		cursor := *query.StartAfter
		start := len(docs)
		for i, doc := range docs {
			if direction*compareDocuments(doc, cursor, query.OrderBy) > 0 {
				start = i
				break
			}
		}
		docs = docs[start:]
	}

	if query.Limit > 0 && len(docs) > query.Limit {
		docs = docs[:query.Limit]
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs
}

func copyDocument(doc Document) Document {
	doc.Data = copyMap(doc.Data)
	return doc
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return copyMap(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = copyValue(item)
		}
		return out
	default:
		return value
	}
}
