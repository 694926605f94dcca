package observer

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Publisher forwards state changes to remote observers.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Topic is the type erased view of a Value used by transports.
type Topic interface {
	Name() string
	JSON() ([]byte, error)
	SubscribeJSON(fn func(data []byte)) *Subscription
}

type options struct {
	publisher Publisher
	onError   func(topic string, err error)
}

// Option customizes a Value.
type Option func(*options)

// WithPublisher mirrors every change to the publisher under the value name.
func WithPublisher(publisher Publisher) Option {
	return func(o *options) {
		o.publisher = publisher
	}
}

// WithErrorHandler receives publish and encoding failures.
func WithErrorHandler(fn func(topic string, err error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

type subscriber[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Value is an observable piece of state. Every change fully replaces the previous value
// and subscribers are notified in subscription order.
type Value[T any] struct {
	name string
	opts options

	mu       sync.RWMutex
	value    T
	subs     []subscriber[T]
	notifyMu sync.Mutex
}

// NewValue creates an observable value.
func NewValue[T any](name string, initial T, opts ...Option) *Value[T] {
	v := &Value[T]{name: name, value: initial}
	for _, opt := range opts {
		opt(&v.opts)
	}
	return v
}

// Name returns the topic name of the value.
func (v *Value[T]) Name() string {
	return v.name
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.value
}

// Set replaces the value and notifies subscribers.
// Subscribers must not call Set on the value that notified them.
func (v *Value[T]) Set(value T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.value = value
	subs := append([]subscriber[T](nil), v.subs...)
	v.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}

	v.publish(value)
}

// Update computes the next value from the current one.
func (v *Value[T]) Update(fn func(current T) T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	next := fn(v.value)
	v.value = next
	subs := append([]subscriber[T](nil), v.subs...)
	v.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}

	v.publish(next)
}

// Subscribe registers fn for every future change.
func (v *Value[T]) Subscribe(fn func(T)) *Subscription {
	id := uuid.New()

	v.mu.Lock()
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	v.mu.Unlock()

	return &Subscription{
		ID: id,
		cancel: func() {
			v.mu.Lock()
			defer v.mu.Unlock()

			for i, sub := range v.subs {
				if sub.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		},
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.subs)
}

// JSON encodes the current value.
func (v *Value[T]) JSON() ([]byte, error) {
	return json.Marshal(v.Get())
}

// SubscribeJSON registers fn with the encoded value of every change.
func (v *Value[T]) SubscribeJSON(fn func(data []byte)) *Subscription {
	return v.Subscribe(func(value T) {
		data, err := json.Marshal(value)
		if err != nil {
			v.fail(err)
			return
		}
		fn(data)
	})
}

func (v *Value[T]) publish(value T) {
	if v.opts.publisher == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		v.fail(err)
		return
	}

	if err := v.opts.publisher.Publish(v.name, data); err != nil {
		v.fail(err)
	}
}

func (v *Value[T]) fail(err error) {
	if v.opts.onError != nil {
		v.opts.onError(v.name, err)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	ID     uuid.UUID
	once   sync.Once
	cancel func()
}

// Unsubscribe stops future notifications. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}
