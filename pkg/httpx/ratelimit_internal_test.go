package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterRefillAndEviction(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 1})
	now := time.Now()

	ok, _ := rl.allow("a", now)
	require.True(t, ok)

	ok, delay := rl.allow("a", now)
	require.False(t, ok)
	require.InDelta(t, time.Second, delay, float64(10*time.Millisecond))

	// One token per second refills the bucket.
	ok, _ = rl.allow("a", now.Add(time.Second))
	require.True(t, ok)

	ok, _ = rl.allow("b", now.Add(time.Second))
	require.True(t, ok)
	require.Len(t, rl.entries, 2)

	// Past the idle window both keys are evicted and only "b" comes back.
	later := now.Add(limiterIdleTTL + 2*time.Second)
	ok, _ = rl.allow("b", later)
	require.True(t, ok)
	require.Len(t, rl.entries, 1)
	require.Contains(t, rl.entries, "b")
}
