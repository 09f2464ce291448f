package core

import (
	"sort"

	"github.com/dkeye/roomsignal/internal/domain"
)

// Member pairs a connection id with its send capability.
type Member struct {
	ID   domain.ConnID
	Conn SignalConnection
}

// Room is an in-memory member set.
// It is not safe for concurrent use; the owner serializes access.
// It never closes adapter-owned resources.
type Room struct {
	name    domain.RoomName
	members map[domain.ConnID]SignalConnection
}

func NewRoom(name domain.RoomName) *Room {
	return &Room{
		name:    name,
		members: make(map[domain.ConnID]SignalConnection),
	}
}

func (r *Room) Name() domain.RoomName { return r.name }

func (r *Room) MemberCount() int { return len(r.members) }

func (r *Room) Empty() bool { return len(r.members) == 0 }

// AddMember reports whether id was newly added.
func (r *Room) AddMember(id domain.ConnID, conn SignalConnection) bool {
	_, exists := r.members[id]
	r.members[id] = conn
	return !exists
}

// RemoveMember reports whether id was present.
func (r *Room) RemoveMember(id domain.ConnID) bool {
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

func (r *Room) Has(id domain.ConnID) bool {
	_, ok := r.members[id]
	return ok
}

// MembersSnapshot copies the member set, ordered by id.
func (r *Room) MembersSnapshot() []Member {
	out := make([]Member, 0, len(r.members))
	for id, conn := range r.members {
		out = append(out, Member{ID: id, Conn: conn})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Room) Info() domain.RoomInfo {
	return domain.RoomInfo{Name: r.name, Count: len(r.members)}
}
