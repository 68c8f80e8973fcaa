package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeedLock 防止同一用户的同一周被两个并发请求重复播种
type SeedLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSeedLock(rdb *redis.Client, ttl time.Duration) *SeedLock {
	return &SeedLock{rdb: rdb, ttl: ttl}
}

// Acquire tries to take the per-(user, week) seeding lock.
// Returns true if this request should perform the seeding.
func (l *SeedLock) Acquire(ctx context.Context, userID, week int) bool {
	key := fmt.Sprintf("seedlock:%d:%d", userID, week)

	ok, err := l.rdb.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		// Redis 挂了？为了安全：当 redis 不可用时，不阻止播种，返回 true
		return true
	}
	return ok
}

// Release drops the lock early so a follow-up regenerate does not wait out the TTL.
func (l *SeedLock) Release(ctx context.Context, userID, week int) {
	key := fmt.Sprintf("seedlock:%d:%d", userID, week)
	_ = l.rdb.Del(ctx, key).Err()
}
