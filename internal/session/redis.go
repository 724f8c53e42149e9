package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gratefultolord/survey_bot/internal/survey"
)

const keyPrefix = "surveybot:session:"

// RedisStore keeps JSON-encoded sessions without expiry, so a survey survives
// process restarts.
type RedisStore struct {
	client *redis.Client
}

var _ survey.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(senderID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, senderID)
}

func (r *RedisStore) Get(ctx context.Context, senderID int64) (*survey.Session, error) {
	raw, err := r.client.Get(ctx, key(senderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("RedisStore.Get: %w", err)
	}

	var sess survey.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("RedisStore.Get: decode session: %w", err)
	}

	if sess.Fields == nil {
		sess.Fields = make(map[string]string)
	}

	return &sess, nil
}

func (r *RedisStore) Save(ctx context.Context, senderID int64, s *survey.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("RedisStore.Save: encode session: %w", err)
	}

	if err := r.client.Set(ctx, key(senderID), raw, 0).Err(); err != nil {
		return fmt.Errorf("RedisStore.Save: %w", err)
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, senderID int64) error {
	if err := r.client.Del(ctx, key(senderID)).Err(); err != nil {
		return fmt.Errorf("RedisStore.Delete: %w", err)
	}

	return nil
}
