package orch

import (
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Join moves the connection into room, leaving its previous room first,
// and announces the new member count to everyone in room.
func (o *Orchestrator) Join(id domain.ConnID, room domain.RoomName) {
	if room == "" {
		room = o.defaultRoom
	}
	if o.limiter != nil && !o.limiter.Allow(id) {
		o.metrics.Inc(metrics.JoinsLimited)
		log.Debug().Str("module", "orch").Str("conn", id.String()).Msg("join rate limited")
		return
	}

	var out outbox
	o.mu.Lock()
	conn, ok := o.registry.Conn(id)
	if !ok {
		o.mu.Unlock()
		log.Warn().Str("module", "orch").Str("conn", id.String()).Msg("join from unknown connection")
		return
	}
	if prev, ok := o.registry.RoomOf(id); ok && prev != room {
		o.leaveLocked(id, prev, &out)
		log.Info().Str("module", "orch").Str("conn", id.String()).Str("from_room", string(prev)).Msg("left room")
	}

	r, created := o.rooms.GetOrCreate(room)
	r.AddMember(id, conn)
	o.registry.UpdateRoom(id, room)
	count := r.MemberCount()
	o.broadcastLocked(room, core.NewPeers(count), &out)
	o.mu.Unlock()
	o.flush(&out)

	o.metrics.Inc(metrics.Joins)
	log.Info().Str("module", "orch").Str("conn", id.String()).Str("room", string(room)).Bool("created", created).Int("count", count).Msg("joined room")
}

// leaveLocked removes id from room, deleting the room when it empties and
// announcing the new count otherwise. The caller updates the registry.
func (o *Orchestrator) leaveLocked(id domain.ConnID, room domain.RoomName, out *outbox) {
	r, ok := o.rooms.Get(room)
	if !ok {
		return
	}
	r.RemoveMember(id)
	if r.Empty() {
		o.rooms.Delete(room)
		log.Info().Str("module", "orch").Str("room", string(room)).Msg("room closed")
		return
	}
	o.broadcastLocked(room, core.NewPeers(r.MemberCount()), out)
}

// broadcastLocked encodes v once and sends it to every current member.
func (o *Orchestrator) broadcastLocked(room domain.RoomName, v any, out *outbox) {
	frame, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode broadcast")
		return
	}
	o.sendToRoomLocked(room, frame, "", out)
}

// sendToRoomLocked sends to a snapshot of the room, skipping except.
// A missing room is a no-op.
func (o *Orchestrator) sendToRoomLocked(room domain.RoomName, frame core.Frame, except domain.ConnID, out *outbox) int {
	r, ok := o.rooms.Get(room)
	if !ok {
		return 0
	}
	n := 0
	for _, m := range r.MembersSnapshot() {
		if m.ID == except {
			continue
		}
		o.sendLocked(m.ID, m.Conn, frame, out)
		n++
	}
	return n
}
