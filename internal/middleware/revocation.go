package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList remembers logged-out session ids until they expire.
type RevocationList interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type RedisRevocationList struct {
	rdb *redis.Client
}

// NewRedisRevocationList connects using a redis:// URL.
func NewRedisRevocationList(ctx context.Context, redisURL string) (*RedisRevocationList, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &RedisRevocationList{rdb: rdb}, nil
}

func revokedKey(sessionID string) string {
	return "session:revoked:" + sessionID
}

func (l *RedisRevocationList) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, revokedKey(sessionID), "1", ttl).Err()
}

func (l *RedisRevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisRevocationList) Close() error {
	return l.rdb.Close()
}
