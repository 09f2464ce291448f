package app

import (
	"fmt"

	"github.com/dkeye/roomsignal/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a member whose send failed.
type Policy interface {
	OnBackPressure(id domain.ConnID, err error) BackpressureAction
}

// DropPolicy discards the frame and keeps the member.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.ConnID, error) BackpressureAction { return DropFrame }

// KickPolicy closes members that cannot keep up.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.ConnID, error) BackpressureAction { return KickMember }

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
