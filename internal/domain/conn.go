// Package domain contains plain identifiers shared by core and adapters.
package domain

import "github.com/google/uuid"

// ConnID identifies a single signaling connection for its whole lifetime.
// It is assigned by the transport on accept and never reused.
type ConnID string

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

func (id ConnID) String() string { return string(id) }
