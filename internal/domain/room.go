package domain

// RoomName is an opaque room key chosen by clients.
type RoomName string

// DefaultRoom is used when a join carries no usable room name.
const DefaultRoom RoomName = "default"

// RoomInfo is a read-only view of a room for APIs.
type RoomInfo struct {
	Name  RoomName `json:"name"`
	Count int      `json:"count"`
}
