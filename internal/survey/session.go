package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/gratefultolord/survey_bot/internal/db"
)

// Session is one user's in-progress survey. Fields only holds answers to states
// already passed.
type Session struct {
	State  State             `json:"state"`
	Fields map[string]string `json:"fields"`
}

func NewSession() *Session {
	return &Session{
		State:  StateIdle,
		Fields: make(map[string]string),
	}
}

// Language is empty until the language question is answered.
func (s *Session) Language() db.Language {
	return db.Language(s.Fields[keyLanguage])
}

func (s *Session) require(keys ...string) error {
	for _, key := range keys {
		if s.Fields[key] == "" {
			return fmt.Errorf("%w: %s", ErrIncomplete, key)
		}
	}

	return nil
}

func (s *Session) date(key string) (time.Time, error) {
	d, ok := ParseDate(s.Fields[key])
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s is not a date", ErrIncomplete, key)
	}

	return d, nil
}

// SessionStore keeps sessions between events. Get returns nil, nil for a sender
// without a session.
type SessionStore interface {
	Get(ctx context.Context, senderID int64) (*Session, error)
	Save(ctx context.Context, senderID int64, s *Session) error
	Delete(ctx context.Context, senderID int64) error
}
