// Package eventbus is an in-process topic based publish/subscribe hub.
//
// A Bus fans each published Event out to every listener subscribed to the
// event's topic at the moment of publication. Delivery is asynchronous: every
// subscription owns a bounded queue drained by its own goroutine, so a slow or
// failing listener never delays the publisher or its sibling listeners.
//
// Guarantees:
//   - Events published to a topic reach a given listener in publication order.
//   - A full queue drops the event for that listener only; drops are counted.
//   - A panicking listener is recovered and logged; it stays subscribed.
//   - Once Unsubscribe returns, the listener is never invoked again. An
//     invocation already running when Unsubscribe is called is waited for.
//
// Nothing is persisted and nothing is replayed: a subscriber only sees events
// published after Subscribe returned.
//
// Listeners must not call Unsubscribe (or Subscription.Close) on their own
// subscription; doing so from inside the callback deadlocks.
//
// Example:
//
//	bus := eventbus.New(eventbus.WithLogger(logger))
//	defer bus.Close()
//
//	sub := bus.Subscribe("order:42", func(ev eventbus.Event) {
//	    fmt.Println(ev.Topic, ev.Data)
//	})
//	defer sub.Close()
//
//	bus.Publish("order:42", map[string]string{"status": "picked"})
package eventbus

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultQueueSize = 64

// Event is a single immutable notification. Data is delivered to every
// listener by value of the interface; publishers must not mutate it afterwards.
type Event struct {
	Topic       string
	Data        any
	PublishedAt time.Time
}

// Listener receives events for one subscription, always from the same goroutine.
type Listener func(Event)

// Stats is a point-in-time snapshot of bus counters.
type Stats struct {
	Topics      int
	Subscribers int
	Published   uint64
	Dropped     uint64
}

type Option func(*Bus)

// WithLogger sets the logger used for dropped events and recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithQueueSize sets the per-subscription queue capacity. Values below 1 are ignored.
func WithQueueSize(size int) Option {
	return func(b *Bus) {
		if size > 0 {
			b.queueSize = size
		}
	}
}

// Bus is safe for concurrent use. The zero value is not usable; call New.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]*Subscription
	closed bool

	nextID    atomic.Uint64
	published atomic.Uint64
	dropped   atomic.Uint64

	queueSize int
	logger    *slog.Logger
}

func New(opts ...Option) *Bus {
	b := &Bus{
		topics:    make(map[string][]*Subscription),
		queueSize: DefaultQueueSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "event_bus")
	return b
}

// Subscribe registers listener on topic. Unknown topics are created on demand.
// Subscribing on a closed bus returns an already closed subscription.
func (b *Bus) Subscribe(topic string, listener Listener) *Subscription {
	sub := newSubscription(b, b.nextID.Add(1), topic, listener, b.queueSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.once.Do(sub.shutdown)
		return sub
	}
	current := b.topics[topic]
	next := make([]*Subscription, len(current), len(current)+1)
	copy(next, current)
	b.topics[topic] = append(next, sub)
	b.mu.Unlock()

	go sub.run()
	return sub
}

// Unsubscribe detaches sub from its topic. It is idempotent and safe to call
// concurrently with Publish. Removing the last listener removes the topic.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.bus != b {
		return
	}
	sub.once.Do(func() {
		b.detach(sub)
		sub.shutdown()
	})
}

// Publish delivers data to the listeners currently subscribed to topic and
// returns without waiting for them. Publishing to a topic without listeners
// is a no-op.
func (b *Bus) Publish(topic string, data any) {
	ev := Event{Topic: topic, Data: data, PublishedAt: time.Now().UTC()}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	// slices are replaced, never mutated, so the snapshot stays valid after unlock
	snapshot := b.topics[topic]
	b.mu.RUnlock()

	b.published.Add(1)
	for _, sub := range snapshot {
		if !sub.enqueue(ev) {
			b.dropped.Add(1)
			b.logger.Warn("event dropped, listener queue is full",
				"topic", topic,
				"subscription", sub.id,
				"dropped_total", sub.Dropped(),
			)
		}
	}
}

// Stats reports topic and subscriber counts together with lifetime counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subscribers := 0
	for _, subs := range b.topics {
		subscribers += len(subs)
	}
	return Stats{
		Topics:      len(b.topics),
		Subscribers: subscribers,
		Published:   b.published.Load(),
		Dropped:     b.dropped.Load(),
	}
}

// Close unsubscribes every listener. Later Publish calls are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var all []*Subscription
	for _, subs := range b.topics {
		all = append(all, subs...)
	}
	b.topics = make(map[string][]*Subscription)
	b.mu.Unlock()

	for _, sub := range all {
		sub.once.Do(sub.shutdown)
	}
}

func (b *Bus) detach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.topics[sub.topic]
	next := make([]*Subscription, 0, len(current))
	for _, s := range current {
		if s != sub {
			next = append(next, s)
		}
	}
	if len(next) == 0 {
		delete(b.topics, sub.topic)
		return
	}
	b.topics[sub.topic] = next
}
