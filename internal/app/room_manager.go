package app

import (
	"sort"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
)

// RoomManager maps room names to live rooms. Rooms are created lazily and
// must be deleted by the owner as soon as they become empty.
// It is not safe for concurrent use.
type RoomManager struct {
	rooms map[domain.RoomName]*core.Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[domain.RoomName]*core.Room)}
}

func (m *RoomManager) GetOrCreate(name domain.RoomName) (*core.Room, bool) {
	if room, ok := m.rooms[name]; ok {
		return room, false
	}
	room := core.NewRoom(name)
	m.rooms[name] = room
	return room, true
}

func (m *RoomManager) Get(name domain.RoomName) (*core.Room, bool) {
	room, ok := m.rooms[name]
	return room, ok
}

func (m *RoomManager) Delete(name domain.RoomName) {
	delete(m.rooms, name)
}

// List returns every room ordered by name.
func (m *RoomManager) List() []domain.RoomInfo {
	out := make([]domain.RoomInfo, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *RoomManager) Len() int { return len(m.rooms) }
