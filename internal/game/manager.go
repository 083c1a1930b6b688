// Package game implements the round-resolution core: the connection registry,
// the shared round state, the answer resolver and the broadcast dispatcher.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/victornm/thinkfast/internal/domain"
	"github.com/victornm/thinkfast/internal/event"
	"github.com/victornm/thinkfast/internal/telemetry"
)

type Config struct {
	Catalog  []domain.Question
	Claims   Claimer
	EventBus *event.Bus
	Metrics  *telemetry.Metrics

	// Zero values fall back to defaults.
	SendQueueSize  int
	MaxMessageSize int64
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
}

// Manager owns the round state and the connection registry, and exposes the
// connection lifecycle and message handling entry points to the transport.
type Manager struct {
	c Config

	registry *Registry
	round    *Round
	dispatch *Dispatcher
	resolver *Resolver
	metrics  *telemetry.Metrics

	upgrader websocket.Upgrader
}

func NewManager(c Config) (*Manager, error) {
	if len(c.Catalog) == 0 {
		return nil, fmt.Errorf("game: empty catalog")
	}
	if c.Claims == nil {
		return nil, fmt.Errorf("game: missing claim store")
	}
	if c.EventBus == nil {
		c.EventBus = event.NewBus()
	}
	if c.Metrics == nil {
		c.Metrics = telemetry.NewMetrics(prometheus.NewRegistry())
	}

	if c.SendQueueSize == 0 {
		c.SendQueueSize = 256
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 1 << 10
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.PingInterval == 0 {
		c.PingInterval = 30 * time.Second
	}

	m := &Manager{
		c:        c,
		registry: NewRegistry(),
		round:    NewRound(c.Catalog),
		metrics:  c.Metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	m.dispatch = NewDispatcher(m.registry)
	m.resolver = NewResolver(ResolverConfig{
		Round:      m.round,
		Claims:     c.Claims,
		Dispatcher: m.dispatch,
		EventBus:   c.EventBus,
	})

	return m, nil
}

// ServeWS upgrades the request and registers the connection under clientID.
// The identity has already been authenticated by the caller.
func (m *Manager) ServeWS(w http.ResponseWriter, r *http.Request, clientID string) error {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("game: upgrade: %w", err)
	}

	c := newWSConn(clientID, conn, m.c.SendQueueSize)
	m.registry.Register(clientID, c)
	m.metrics.OnlinePlayers.Inc()

	go c.writePump(m)
	go c.readPump(m)

	slog.InfoContext(r.Context(), "game: player joined", "client_id", clientID)
	return nil
}

// HandleMessage runs the resolver for one inbound frame. A malformed frame is
// answered with invalid_message and the connection stays open.
func (m *Manager) HandleMessage(ctx context.Context, clientID string, payload []byte) Outcome {
	sub, err := ParseSubmission(payload)
	if err != nil {
		slog.WarnContext(ctx, "game: bad frame", "client_id", clientID, "error", err)
		m.dispatch.Unicast(ctx, Message{MessageType: MessageTypeInvalidMessage}, clientID)
		m.metrics.Answers.WithLabelValues(string(OutcomeInvalidMessage)).Inc()
		return OutcomeInvalidMessage
	}

	outcome := m.resolver.Resolve(ctx, clientID, sub)
	m.metrics.Answers.WithLabelValues(string(outcome)).Inc()
	return outcome
}

// CurrentQuestion returns the active question and round id.
func (m *Manager) CurrentQuestion() Snapshot {
	return m.round.Current()
}

// OnlinePlayers lists the identities of all registered connections.
func (m *Manager) OnlinePlayers() []string {
	return m.registry.IDs()
}

// Online reports whether clientID has a registered connection.
func (m *Manager) Online(clientID string) bool {
	return m.registry.Online(clientID)
}
