package state

import (
	"sync"
	"time"

	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
)

type entry struct {
	packet      f1.Packet
	lastUpdated time.Time
}

// Manager holds a concurrent-safe cache of the latest packet of each type.
type Manager struct {
	mu             sync.RWMutex
	latest         map[f1.PacketID]entry
	staleThreshold time.Duration
}

// NewManager creates a Manager with the given stale threshold.
// A zero threshold disables staleness checking.
func NewManager(staleThreshold time.Duration) *Manager {
	return &Manager{
		latest:         make(map[f1.PacketID]entry),
		staleThreshold: staleThreshold,
	}
}

// Update stores a packet as the latest of its type and records the current
// time.
func (m *Manager) Update(p f1.Packet) {
	id := f1.PacketID(p.PacketHeader().PacketID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[id] = entry{packet: p, lastUpdated: time.Now()}
}

// Latest returns the most recent packet of the given type, or ErrStale if
// none has been received yet or its age exceeds the stale threshold.
func (m *Manager) Latest(id f1.PacketID) (f1.Packet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.latest[id]
	if !ok {
		return nil, ErrStale
	}
	if m.staleThreshold > 0 && time.Since(e.lastUpdated) > m.staleThreshold {
		return nil, ErrStale
	}
	return e.packet, nil
}

// LastUpdated returns the time the given packet type was last received, or
// zero if it never was.
func (m *Manager) LastUpdated(id f1.PacketID) time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest[id].lastUpdated
}
