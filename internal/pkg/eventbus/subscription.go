package eventbus

import (
	"sync"
	"sync/atomic"
)

// Subscription binds one listener to one topic. It is returned by Bus.Subscribe
// and stays active until Close or Bus.Unsubscribe.
type Subscription struct {
	bus      *Bus
	id       uint64
	topic    string
	listener Listener

	queue chan Event
	stop  chan struct{}

	// mu is held for the duration of each listener call; shutdown takes it to
	// wait out an in-flight call before marking the subscription closed.
	mu     sync.Mutex
	closed bool

	once    sync.Once
	dropped atomic.Uint64
}

func newSubscription(b *Bus, id uint64, topic string, listener Listener, queueSize int) *Subscription {
	return &Subscription{
		bus:      b,
		id:       id,
		topic:    topic,
		listener: listener,
		queue:    make(chan Event, queueSize),
		stop:     make(chan struct{}),
	}
}

func (s *Subscription) Topic() string {
	return s.topic
}

// Dropped is the number of events this listener lost to a full queue.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close is shorthand for Bus.Unsubscribe(s).
func (s *Subscription) Close() {
	s.bus.Unsubscribe(s)
}

func (s *Subscription) enqueue(ev Event) bool {
	select {
	case <-s.stop:
		return true
	default:
	}

	select {
	case s.queue <- ev:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

func (s *Subscription) run() {
	for {
		select {
		case <-s.stop:
			return
		case ev := <-s.queue:
			s.deliver(ev)
		}
	}
}

func (s *Subscription) deliver(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.bus.logger.Error("listener panicked",
				"topic", s.topic,
				"subscription", s.id,
				"panic", r,
			)
		}
	}()

	s.listener(ev)
}

func (s *Subscription) shutdown() {
	close(s.stop)

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
