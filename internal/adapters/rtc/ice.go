// Package rtc prepares the WebRTC settings handed to clients. The server
// itself never opens peer connections.
package rtc

import (
	"errors"
	"fmt"

	"github.com/dkeye/roomsignal/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

var ErrMissingCredentials = errors.New("turn server requires username and credential")

func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{
		{
			URLs: []string{"stun:stun.l.google.com:19302"},
		},
	}
}

// ICEServers validates configured entries and converts them to the
// RTCIceServer shape browsers accept.
func ICEServers(entries []config.ICEServer) ([]webrtc.ICEServer, error) {
	if len(entries) == 0 {
		return DefaultICEServers(), nil
	}
	out := make([]webrtc.ICEServer, 0, len(entries))
	for i, e := range entries {
		if len(e.URLs) == 0 {
			return nil, fmt.Errorf("ice_servers[%d]: no urls", i)
		}
		for _, raw := range e.URLs {
			uri, err := stun.ParseURI(raw)
			if err != nil {
				return nil, fmt.Errorf("ice_servers[%d]: %q: %w", i, raw, err)
			}
			isTURN := uri.Scheme == stun.SchemeTypeTURN || uri.Scheme == stun.SchemeTypeTURNS
			if isTURN && (e.Username == "" || e.Credential == "") {
				return nil, fmt.Errorf("ice_servers[%d]: %q: %w", i, raw, ErrMissingCredentials)
			}
		}
		s := webrtc.ICEServer{URLs: e.URLs, Username: e.Username}
		if e.Credential != "" {
			s.Credential = e.Credential
			s.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, s)
	}
	return out, nil
}
