package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(nil, zerolog.Nop())
	rule := NewRule(KeyMessage, 1, time.Minute)

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(context.Background(), 1, rule)
		assert.NoError(t, err)
		assert.True(t, ok)
	}

	remaining, err := l.Remaining(context.Background(), 1, rule)
	assert.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestLimiter_FailsOpenWhenRedisIsUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewLimiter(client, zerolog.Nop())
	ok, err := l.Allow(context.Background(), 7, NewRule(KeyReport, 1, time.Minute))
	assert.Error(t, err)
	assert.True(t, ok)
}

func TestNewRule_DefaultWindow(t *testing.T) {
	rule := NewRule(KeyMessage, 3, 0)
	assert.Equal(t, time.Minute, rule.Window)
	assert.Equal(t, 3, rule.Limit)
}
