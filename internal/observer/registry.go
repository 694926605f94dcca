package observer

import (
	"slices"
	"sync"
)

// Registry indexes topics by name for transports such as server sent events.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]Topic
}

func NewRegistry() *Registry {
	return &Registry{topics: make(map[string]Topic)}
}

// Register adds topics, replacing any with the same name.
func (r *Registry) Register(topics ...Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, topic := range topics {
		r.topics[topic.Name()] = topic
	}
}

// Lookup returns the topic with the given name.
func (r *Registry) Lookup(name string) (Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topic, ok := r.topics[name]
	return topic, ok
}

// Names lists registered topics, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.topics))
	for name := range r.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
