package redisdb

import (
	"context"
	"strconv"
	"time"

	"github.com/Niranjjith/Attendance-System/internal/pkg/config"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const activeTokenPrefix = "active_token:"

// Session keeps one active access token per user. Signing in overwrites the
// previous token, which signs every other device out.
type Session struct {
	client *redis.Client
}

func NewSession(cfg *config.Config) *Session {
	return &Session{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost,
			Password: cfg.RedisPassword,
		}),
	}
}

func (s *Session) key(userID int) string {
	return activeTokenPrefix + strconv.Itoa(userID)
}

func (s *Session) SetActiveToken(ctx context.Context, userID int, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return errors.Wrap(err, "storing active token")
	}

	return nil
}

// ActiveToken returns the stored token, or "" when the user has no session.
func (s *Session) ActiveToken(ctx context.Context, userID int) (string, error) {
	token, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "loading active token")
	}

	return token, nil
}

func (s *Session) Clear(ctx context.Context, userID int) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return errors.Wrap(err, "clearing active token")
	}

	return nil
}

func (s *Session) Close() error {
	return s.client.Close()
}
