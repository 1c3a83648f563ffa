package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Sessions maps opaque tokens to user ids.
type Sessions interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Lookup(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// NewToken returns 64 hex characters drawn from two random v4 uuids.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *RedisSessions) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := NewToken()
	if err := s.client.Set(ctx, sessionKey(token), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup session: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
