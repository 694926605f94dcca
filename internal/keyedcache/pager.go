package keyedcache

import (
	"context"
	"fmt"
	"leaguerats/pkg/errs"
	"sync"

	"golang.org/x/sync/singleflight"
)

// PageFunc loads the page after the cursor, or the first page when after is nil.
// It returns the items and the cursor of the last one.
type PageFunc[V any, C any] func(ctx context.Context, after *C) ([]V, C, error)

type pageState[V any, C any] struct {
	items     []V
	cursor    C
	exhausted bool
}

// Pager caches paginated collections per key along with the last loaded cursor.
type Pager[K comparable, V any, C any] struct {
	mu         sync.RWMutex
	pages      map[K]*pageState[V, C]
	generation uint64
	group      singleflight.Group
}

// NewPager creates an empty pager.
func NewPager[K comparable, V any, C any]() *Pager[K, V, C] {
	return &Pager[K, V, C]{pages: make(map[K]*pageState[V, C])}
}

// First loads the first page of a key at most once and returns every loaded item.
func (p *Pager[K, V, C]) First(ctx context.Context, key K, fetch PageFunc[V, C]) ([]V, error) {
	if items, ok := p.Items(key); ok {
		return items, nil
	}

	generation := p.currentGeneration()

	res, err := p.do(ctx, "first:"+flightKey(key), func() (any, error) {
		if items, ok := p.Items(key); ok {
			return items, nil
		}

		items, cursor, err := fetch(context.WithoutCancel(ctx), nil)
		if err != nil {
			return nil, err
		}

		state := &pageState[V, C]{
			items:     append([]V{}, items...),
			cursor:    cursor,
			exhausted: len(items) == 0,
		}

		p.mu.Lock()
		if p.generation == generation {
			p.pages[key] = state
		}
		p.mu.Unlock()

		return append([]V{}, items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := res.([]V)
	return items, nil
}

// Next loads the page after the stored cursor, appends it and returns only the new items.
// An empty page marks the key exhausted and leaves the cursor where it was.
func (p *Pager[K, V, C]) Next(ctx context.Context, key K, fetch PageFunc[V, C]) ([]V, error) {
	p.mu.RLock()
	state, ok := p.pages[key]
	generation := p.generation
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %v", errs.ErrFirstPageNotLoaded, key)
	}

	res, err := p.do(ctx, "next:"+flightKey(key), func() (any, error) {
		p.mu.RLock()
		exhausted := state.exhausted
		cursor := state.cursor
		p.mu.RUnlock()

		if exhausted {
			return []V{}, nil
		}

		items, next, err := fetch(context.WithoutCancel(ctx), &cursor)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.generation != generation {
			return append([]V{}, items...), nil
		}

		if len(items) == 0 {
			state.exhausted = true
			return []V{}, nil
		}

		state.items = append(state.items, items...)
		state.cursor = next

		return append([]V{}, items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := res.([]V)
	return items, nil
}

// Items returns every loaded item of a key.
func (p *Pager[K, V, C]) Items(key K) ([]V, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state, ok := p.pages[key]
	if !ok {
		return nil, false
	}
	return append([]V{}, state.items...), true
}

// Cursor returns the last loaded cursor of a key.
func (p *Pager[K, V, C]) Cursor(key K) (C, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state, ok := p.pages[key]
	if !ok {
		var zero C
		return zero, false
	}
	return state.cursor, true
}

// Exhausted reports whether the last page of a key came back empty.
func (p *Pager[K, V, C]) Exhausted(key K) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state, ok := p.pages[key]
	return ok && state.exhausted
}

// Reset drops every key.
func (p *Pager[K, V, C]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pages = make(map[K]*pageState[V, C])
	p.generation++
}

func (p *Pager[K, V, C]) currentGeneration() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.generation
}

// Run a flight while still honoring the caller context.
func (p *Pager[K, V, C]) do(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	select {
	case res := <-p.group.DoChan(key, fn):
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
