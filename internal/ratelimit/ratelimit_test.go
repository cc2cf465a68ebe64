package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	// Burst of 2 should be allowed immediately.
	assert.True(t, krl.Allow("key1"))
	assert.True(t, krl.Allow("key1"))

	// Third request exceeds the burst.
	assert.False(t, krl.Allow("key1"))
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("key1"))
	assert.False(t, krl.Allow("key1"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("key2"))
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	krl := New(100, 1)
	defer krl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// First token is free, second waits ~10ms at 100rps.
	require.NoError(t, krl.Wait(ctx, "key1"))
	require.NoError(t, krl.Wait(ctx, "key1"))
}

func TestKeyedRateLimiter_WaitCanceled(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()

	require.True(t, krl.Allow("key1"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Next token is ~1000s away, so the wait must fail with the context.
	err := krl.Wait(ctx, "key1")
	assert.Error(t, err)
}

func TestKeyedRateLimiter_StopIdempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
