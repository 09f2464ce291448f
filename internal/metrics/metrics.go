// Package metrics holds process-wide signaling counters.
package metrics

import (
	"maps"
	"sync"
)

const (
	ConnectionsOpened = "connections_opened"
	ConnectionsClosed = "connections_closed"
	Joins             = "joins"
	JoinsLimited      = "joins_rate_limited"
	MessagesMalformed = "messages_malformed"
	MessagesIgnored   = "messages_ignored"
	RelayMisses       = "relay_misses"
	FramesSent        = "frames_sent"
	FramesDropped     = "frames_dropped"
	MembersKicked     = "members_kicked"
	TransportErrors   = "transport_errors"
)

// Metrics is a minimal, concurrency-safe counter registry.
type Metrics struct {
	mu sync.Mutex
	m  map[string]uint64
}

func New() *Metrics {
	return &Metrics{
		m: make(map[string]uint64),
	}
}

func (m *Metrics) Inc(name string) {
	m.Add(name, 1)
}

func (m *Metrics) Add(name string, n uint64) {
	if n == 0 {
		return
	}
	m.mu.Lock()
	m.m[name] += n
	m.mu.Unlock()
}

func (m *Metrics) Get(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[name]
}

func (m *Metrics) Snapshot() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.m)
}
