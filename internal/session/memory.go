package session

import (
	"context"
	"sync"
	"time"

	"shopassist/internal/transcript"
)

type memorySession struct {
	log      *transcript.Log
	lastSeen time.Time
}

// MemoryStore keeps session transcripts in process memory. Sessions idle
// longer than ttl are dropped by a background sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(ttl)
			m.sweep(time.Now())
		}
	}()

	return m
}

func (m *MemoryStore) History(ctx context.Context, sessionID string) ([]string, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()

	if !ok {
		return []string{}, nil
	}
	return s.log.Lines(), nil
}

func (m *MemoryStore) AppendExchange(ctx context.Context, sessionID, userLine, assistantLine string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &memorySession{log: transcript.New()}
		m.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	m.mu.Unlock()

	s.log.Append(userLine, assistantLine)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
