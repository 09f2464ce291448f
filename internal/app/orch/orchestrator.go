// Package orch routes signaling events between the members of a room.
package orch

import (
	"errors"
	"sync"
	"time"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/metrics"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// DefaultRoom is used for joins without a room name.
	DefaultRoom domain.RoomName
	// Policy handles failed sends. Defaults to app.DropPolicy.
	Policy app.Policy
	// JoinLimiter throttles joins per connection. Nil disables throttling.
	JoinLimiter *app.RoomRateLimiter
	Metrics     *metrics.Metrics
}

// Orchestrator owns all room state. Every mutation of the registry and the
// room map happens under mu, so each event is applied atomically.
type Orchestrator struct {
	mu       sync.Mutex
	registry *app.Registry
	rooms    *app.RoomManager

	policy      app.Policy
	limiter     *app.RoomRateLimiter
	metrics     *metrics.Metrics
	defaultRoom domain.RoomName
}

func New(opts Options) *Orchestrator {
	if opts.DefaultRoom == "" {
		opts.DefaultRoom = domain.DefaultRoom
	}
	if opts.Policy == nil {
		opts.Policy = app.DropPolicy{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	return &Orchestrator{
		registry:    app.NewRegistry(),
		rooms:       app.NewRoomManager(),
		policy:      opts.Policy,
		limiter:     opts.JoinLimiter,
		metrics:     opts.Metrics,
		defaultRoom: opts.DefaultRoom,
	}
}

// OnOpen registers an accepted connection and greets it.
func (o *Orchestrator) OnOpen(id domain.ConnID, conn core.SignalConnection) {
	var out outbox
	o.mu.Lock()
	o.registry.Bind(id, conn)
	if frame, err := core.Encode(core.NewHello()); err == nil {
		o.sendLocked(id, conn, frame, &out)
	}
	o.mu.Unlock()
	o.flush(&out)

	o.metrics.Inc(metrics.ConnectionsOpened)
	log.Info().Str("module", "orch").Str("conn", id.String()).Msg("connection opened")
}

// OnMessage handles one inbound payload. Malformed, unknown and unroutable
// messages are dropped without a reply.
func (o *Orchestrator) OnMessage(id domain.ConnID, data []byte) {
	msg, err := core.Parse(data)
	if err != nil {
		o.metrics.Inc(metrics.MessagesMalformed)
		log.Debug().Err(err).Str("module", "orch").Str("conn", id.String()).Msg("dropping message")
		return
	}

	switch m := msg.(type) {
	case core.Join:
		o.Join(id, m.Room)
	case core.Negotiation:
		o.Relay(id, m)
	case core.Ignored:
		o.metrics.Inc(metrics.MessagesIgnored)
		log.Debug().Str("module", "orch").Str("conn", id.String()).Str("type", m.Kind).Msg("ignoring message")
	}
}

// OnClose releases the connection's membership. Unknown ids and repeated
// calls are no-ops.
func (o *Orchestrator) OnClose(id domain.ConnID) {
	if o.limiter != nil {
		o.limiter.Forget(id)
	}

	var out outbox
	o.mu.Lock()
	openedAt, _ := o.registry.OpenedAt(id)
	room, ok := o.registry.Unbind(id)
	if ok && room != "" {
		o.leaveLocked(id, room, &out)
	}
	o.mu.Unlock()
	o.flush(&out)

	if ok {
		o.metrics.Inc(metrics.ConnectionsClosed)
		log.Info().Str("module", "orch").Str("conn", id.String()).Str("room", string(room)).Dur("connected_for", time.Since(openedAt)).Msg("connection closed")
	}
}

// OnError closes the connection. Room cleanup is left to the OnClose the
// transport delivers afterwards.
func (o *Orchestrator) OnError(id domain.ConnID, err error) {
	o.metrics.Inc(metrics.TransportErrors)
	log.Warn().Err(err).Str("module", "orch").Str("conn", id.String()).Msg("transport error")

	o.mu.Lock()
	conn, ok := o.registry.Conn(id)
	o.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// Rooms lists live rooms ordered by name.
func (o *Orchestrator) Rooms() []domain.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rooms.List()
}

func (o *Orchestrator) Room(name domain.RoomName) (domain.RoomInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.rooms.Get(name)
	if !ok {
		return domain.RoomInfo{}, false
	}
	return r.Info(), true
}

// RoomOf reports the room a connection is currently in.
func (o *Orchestrator) RoomOf(id domain.ConnID) (domain.RoomName, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.registry.RoomOf(id)
}

// Stats is a point-in-time view of the router. OldestConnection is the age
// of the longest-lived open connection.
type Stats struct {
	Connections      int               `json:"connections"`
	OldestConnection time.Duration     `json:"oldest_connection_ns"`
	Rooms            int               `json:"rooms"`
	Counters         map[string]uint64 `json:"counters"`
}

func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	s := Stats{
		Connections:      o.registry.Len(),
		Rooms:            o.rooms.Len(),
		OldestConnection: o.registry.OldestAge(time.Now()),
	}
	o.mu.Unlock()
	s.Counters = o.metrics.Snapshot()
	return s
}

// outbox collects connections to close once mu is released, so a Close
// that synchronously re-enters the orchestrator cannot deadlock.
type outbox struct {
	kick []core.SignalConnection
}

func (o *Orchestrator) sendLocked(id domain.ConnID, conn core.SignalConnection, frame core.Frame, out *outbox) {
	err := conn.TrySend(frame)
	if err == nil {
		o.metrics.Inc(metrics.FramesSent)
		return
	}
	o.metrics.Inc(metrics.FramesDropped)
	if errors.Is(err, core.ErrConnClosed) {
		return
	}
	switch o.policy.OnBackPressure(id, err) {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "orch").Str("conn", id.String()).Msg("kicking slow member")
		out.kick = append(out.kick, conn)
	case app.DropFrame, app.NoAction:
		log.Debug().Err(err).Str("module", "orch").Str("conn", id.String()).Msg("frame dropped")
	}
}

func (o *Orchestrator) flush(out *outbox) {
	for _, conn := range out.kick {
		conn.Close()
		o.metrics.Inc(metrics.MembersKicked)
	}
}
