package live

import (
	"slices"
	"sync"
)

// Stream names used by the stores.
const (
	ActiveProGames = "active_pro_games"
	LiveStreams    = "live_streams/live"
	NotLiveStreams = "live_streams/not_live"
)

// Registry keeps at most one subscription per stream.
type Registry struct {
	mu      sync.Mutex
	handles map[string]func()
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]func())}
}

// Replace tears down the current handle of the stream and stores the new one.
func (r *Registry) Replace(stream string, unsubscribe func()) {
	r.mu.Lock()
	previous := r.handles[stream]
	if unsubscribe == nil {
		delete(r.handles, stream)
	} else {
		r.handles[stream] = unsubscribe
	}
	r.mu.Unlock()

	if previous != nil {
		previous()
	}
}

// Cancel stops the stream if it is active.
func (r *Registry) Cancel(stream string) bool {
	r.mu.Lock()
	handle, ok := r.handles[stream]
	delete(r.handles, stream)
	r.mu.Unlock()

	if ok {
		handle()
	}
	return ok
}

// CloseAll stops every stream.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]func())
	r.mu.Unlock()

	for _, handle := range handles {
		handle()
	}
}

// Active lists the running streams, sorted.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	streams := make([]string, 0, len(r.handles))
	for stream := range r.handles {
		streams = append(streams, stream)
	}
	slices.Sort(streams)
	return streams
}
