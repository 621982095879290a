package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustionAndRefill(t *testing.T) {
	bucket := NewTokenBucket(2, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestRateLimiterKeysPerUserAndAction(t *testing.T) {
	rl := NewRateLimiter()

	allowed, _ := rl.Allow("user-a", "create_task")
	assert.True(t, allowed)

	// a different user gets an independent bucket
	allowed, _ = rl.Allow("user-b", "create_task")
	assert.True(t, allowed)

	// so does a different action for the same user
	allowed, _ = rl.Allow("user-a", "propose_offer")
	assert.True(t, allowed)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()
	rl.Allow("user-a", "create_task")

	rl.mutex.Lock()
	for _, bucket := range rl.buckets {
		bucket.lastRefill = time.Now().Add(-2 * time.Hour)
	}
	rl.mutex.Unlock()

	rl.Cleanup()

	rl.mutex.RLock()
	defer rl.mutex.RUnlock()
	assert.Empty(t, rl.buckets)
}
