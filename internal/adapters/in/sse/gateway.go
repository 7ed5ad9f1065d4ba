// Package sse bridges event bus topics to server-sent-events connections.
package sse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/pkg/eventbus"
)

// Subscriber is the part of eventbus.Bus the gateway needs.
type Subscriber interface {
	Subscribe(topic string, listener eventbus.Listener) *eventbus.Subscription
	Unsubscribe(sub *eventbus.Subscription)
}

type Option func(*Gateway)

// WithHeartbeat makes Serve write a keep-alive comment every d. Zero disables it.
func WithHeartbeat(d time.Duration) Option {
	return func(g *Gateway) {
		if d >= 0 {
			g.heartbeat = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gateway attaches streams to bus topics.
type Gateway struct {
	bus       Subscriber
	heartbeat time.Duration
	logger    *slog.Logger
}

func NewGateway(bus Subscriber, opts ...Option) *Gateway {
	g := &Gateway{
		bus:    bus,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "sse_gateway")
	return g
}

// Serve forwards every event published on topics to stream until ctx is done
// or a write fails. All subscriptions are released before Serve returns, on
// every path. A cancelled context is a normal close and yields nil.
func (g *Gateway) Serve(ctx context.Context, stream Stream, topics ...string) error {
	conn := &connection{stream: stream, failed: make(chan error, 1)}

	subs := make([]*eventbus.Subscription, 0, len(topics))
	defer func() {
		for _, sub := range subs {
			g.bus.Unsubscribe(sub)
		}
		g.logger.DebugContext(ctx, "Stream detached", "topics", topics)
	}()

	for _, topic := range topics {
		subs = append(subs, g.bus.Subscribe(topic, func(ev eventbus.Event) {
			frame, err := EncodeFrame(ev.Data)
			if err != nil {
				g.logger.ErrorContext(ctx, "Dropping unencodable event", "topic", ev.Topic, "error", err)
				return
			}
			conn.send(frame)
		}))
	}
	g.logger.DebugContext(ctx, "Stream attached", "topics", topics)

	var tick <-chan time.Time
	if g.heartbeat > 0 {
		ticker := time.NewTicker(g.heartbeat)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-conn.failed:
			return fmt.Errorf("write event stream: %w", err)
		case <-tick:
			conn.send(keepAliveFrame)
		}
	}
}

// connection serializes writes from the topic listeners and the heartbeat.
// After the first failed write it stops writing and reports the error once.
type connection struct {
	mu     sync.Mutex
	stream Stream
	broken bool
	failed chan error
}

func (c *connection) send(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken {
		return
	}
	if err := c.stream.Send(frame); err != nil {
		c.broken = true
		c.failed <- err
	}
}
