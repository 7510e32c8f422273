package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstThenDeny(t *testing.T) {
	l := NewLimiter(1, 2)
	defer l.Close()

	ok, _ := l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, retry := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, retry, time.Second)

	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok, "keys have separate buckets")
}

func TestDisabledLimiter(t *testing.T) {
	l := NewLimiter(0, 0)
	defer l.Close()
	for i := 0; i < 100; i++ {
		ok, _ := l.Allow("k")
		assert.True(t, ok)
	}

	var nilLimiter *Limiter
	ok, _ := nilLimiter.Allow("k")
	assert.True(t, ok)
	nilLimiter.Close()
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	l := NewLimiter(100, 1)
	defer l.Close()

	l.Allow("a")
	assert.Equal(t, 1, l.size())

	l.mu.Lock()
	l.buckets["a"].lastSeen = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	// At 100 rps the single token is back well before the cleanup runs.
	time.Sleep(50 * time.Millisecond)
	l.cleanup(time.Now())
	assert.Equal(t, 0, l.size())
}
