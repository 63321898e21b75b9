package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redisClient}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func applicationKey(applicationID string) string {
	return fmt.Sprintf("application-session:%s", applicationID)
}

func (s *RedisStore) Save(ctx context.Context, session model.SandboxSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := s.redisClient.Set(ctx, sessionKey(session.SessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.SandboxSession, error) {
	data, err := s.redisClient.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}
	var session model.SandboxSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) SetStatus(ctx context.Context, sessionID string, status model.Status) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("no session record for %s", sessionID)
	}
	session.Status = status
	return s.Save(ctx, *session)
}

func (s *RedisStore) ReserveApplication(ctx context.Context, applicationID, token string) (bool, error) {
	ok, err := s.redisClient.SetNX(ctx, applicationKey(applicationID), token, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve application slot: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) AssignApplication(ctx context.Context, applicationID, sessionID string) error {
	if err := s.redisClient.Set(ctx, applicationKey(applicationID), sessionID, 0).Err(); err != nil {
		return fmt.Errorf("failed to assign application slot: %w", err)
	}
	return nil
}

func (s *RedisStore) ReleaseApplication(ctx context.Context, applicationID string) error {
	if err := s.redisClient.Del(ctx, applicationKey(applicationID)).Err(); err != nil {
		return fmt.Errorf("failed to release application slot: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
