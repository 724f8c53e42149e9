package session

import (
	"context"
	"maps"
	"sync"

	"github.com/gratefultolord/survey_bot/internal/survey"
)

// MemoryStore keeps sessions in process memory. Sessions are copied on the way in
// and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*survey.Session
}

var _ survey.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*survey.Session),
	}
}

func clone(s *survey.Session) *survey.Session {
	return &survey.Session{State: s.State, Fields: maps.Clone(s.Fields)}
}

func (m *MemoryStore) Get(ctx context.Context, senderID int64) (*survey.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[senderID]
	if !ok {
		return nil, nil
	}

	return clone(sess), nil
}

func (m *MemoryStore) Save(ctx context.Context, senderID int64, s *survey.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[senderID] = clone(s)

	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, senderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, senderID)

	return nil
}
