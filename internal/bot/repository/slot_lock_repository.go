package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-bot/pkg/common"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlotLocker makes sure a scheduled slot is posted by one bot instance only.
type SlotLocker interface {
	Acquire(ctx context.Context, slot time.Time) (bool, error)
}

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
	owner  string
}

// NewRedisSlotLocker claims slots with SET NX so replicas sharing a Redis do not double post.
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) SlotLocker {
	return &redisSlotLocker{
		client: client,
		ttl:    ttl,
		owner:  uuid.NewString(),
	}
}

func (l *redisSlotLocker) Acquire(ctx context.Context, slot time.Time) (bool, error) {
	key := fmt.Sprintf(common.RedisKeySlotLock, slot.Unix())
	ok, err := l.client.SetNX(ctx, key, l.owner, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire slot lock %s: %w", key, err)
	}
	return ok, nil
}

type noopSlotLocker struct{}

// NewNoopSlotLocker grants every slot. Used when Redis is disabled.
func NewNoopSlotLocker() SlotLocker {
	return noopSlotLocker{}
}

func (noopSlotLocker) Acquire(context.Context, time.Time) (bool, error) {
	return true, nil
}
