package orch

import (
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Relay forwards a negotiation message, tagged with the sender's id, to
// every other member of the sender's room.
func (o *Orchestrator) Relay(id domain.ConnID, msg core.Negotiation) {
	frame, err := msg.WithSender(id)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("conn", id.String()).Msg("encode relay")
		return
	}

	var out outbox
	o.mu.Lock()
	room, ok := o.registry.RoomOf(id)
	if !ok {
		o.mu.Unlock()
		o.metrics.Inc(metrics.RelayMisses)
		log.Debug().Str("module", "orch").Str("conn", id.String()).Str("type", msg.Kind).Msg("relay from connection without room")
		return
	}
	n := o.sendToRoomLocked(room, frame, id, &out)
	o.mu.Unlock()
	o.flush(&out)

	log.Debug().Str("module", "orch").Str("conn", id.String()).Str("room", string(room)).Str("type", msg.Kind).Int("recipients", n).Msg("relayed")
}
