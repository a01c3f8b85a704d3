package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestRedisErr(t *testing.T) {
	if redisErr(nil) != nil {
		t.Error("nil should stay nil")
	}
	if err := redisErr(redis.Nil); !errors.Is(err, redis.Nil) || IsRetryable(err) {
		t.Errorf("redis.Nil should pass through unchanged, got %v", err)
	}
	if err := redisErr(context.Canceled); IsRetryable(err) {
		t.Error("context errors should not be retried")
	}

	err := redisErr(errors.New("dial tcp: connection refused"))
	if !IsRetryable(err) {
		t.Error("connection errors should be retryable")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("connection errors should wrap ErrNetwork")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://localhost:6379"); err == nil {
		t.Error("non-redis URL should be rejected")
	}
}
