package app

import (
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Room     domain.RoomName
	Conn     core.SignalConnection
	OpenedAt time.Time
}

// Registry is the membership index: every open connection, its send
// capability and the single room it is in (empty when not joined).
// It is not safe for concurrent use; the orchestrator serializes access.
type Registry struct {
	sessions map[domain.ConnID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnID]*sessionEntry),
	}
}

func (r *Registry) Bind(id domain.ConnID, conn core.SignalConnection) {
	r.sessions[id] = &sessionEntry{Conn: conn, OpenedAt: time.Now()}
	log.Debug().Str("module", "app.registry").Str("conn", id.String()).Msg("bound connection")
}

// Unbind drops the entry and returns the room it was in (empty when it
// never joined). ok is false for unknown ids.
func (r *Registry) Unbind(id domain.ConnID) (room domain.RoomName, ok bool) {
	e, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	delete(r.sessions, id)
	log.Debug().Str("module", "app.registry").Str("conn", id.String()).Msg("unbind connection")
	return e.Room, true
}

func (r *Registry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomName, bool) {
	e, ok := r.sessions[id]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) UpdateRoom(id domain.ConnID, room domain.RoomName) bool {
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	e.Room = room
	log.Debug().Str("module", "app.registry").Str("conn", id.String()).Str("room", string(room)).Msg("updated room")
	return true
}

// OpenedAt reports when the connection was bound.
func (r *Registry) OpenedAt(id domain.ConnID) (time.Time, bool) {
	e, ok := r.sessions[id]
	if !ok {
		return time.Time{}, false
	}
	return e.OpenedAt, true
}

// OldestAge is the age of the earliest bound connection, zero when empty.
func (r *Registry) OldestAge(now time.Time) time.Duration {
	var oldest time.Duration
	for _, e := range r.sessions {
		if age := now.Sub(e.OpenedAt); age > oldest {
			oldest = age
		}
	}
	return oldest
}

func (r *Registry) Len() int { return len(r.sessions) }
