package rtc

import (
	"errors"
	"testing"

	"github.com/dkeye/roomsignal/internal/config"
)

func TestICEServers_DefaultsWhenEmpty(t *testing.T) {
	got, err := ICEServers(nil)
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(got) != 1 || got[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("got %+v", got)
	}
}

func TestICEServers_Valid(t *testing.T) {
	got, err := ICEServers([]config.ICEServer{
		{URLs: []string{"stun:stun.example.com:3478"}},
		{URLs: []string{"turn:turn.example.com:3478?transport=udp"}, Username: "u", Credential: "p"},
	})
	if err != nil {
		t.Fatalf("ICEServers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[1].Username != "u" || got[1].Credential != "p" {
		t.Fatalf("turn entry = %+v", got[1])
	}
	if got[0].Credential != nil {
		t.Fatalf("stun entry should carry no credential")
	}
}

func TestICEServers_Rejects(t *testing.T) {
	if _, err := ICEServers([]config.ICEServer{{URLs: []string{"http://nope"}}}); err == nil {
		t.Fatalf("expected error for non-ICE scheme")
	}
	if _, err := ICEServers([]config.ICEServer{{}}); err == nil {
		t.Fatalf("expected error for empty urls")
	}
	_, err := ICEServers([]config.ICEServer{{URLs: []string{"turns:turn.example.com"}}})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
