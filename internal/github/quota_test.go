package github

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the gate without real waiting: Sleep advances the clock
// and records how long the gate asked to wait.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) totalSlept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.slept {
		total += d
	}
	return total
}

func newTestGate(clock *fakeClock, remaining int, resetIn, maxWait time.Duration) *QuotaGate {
	return &QuotaGate{
		remaining: remaining,
		reset:     clock.Now().Add(resetIn),
		maxWait:   maxWait,
		now:       clock.Now,
		sleep:     clock.Sleep,
	}
}

func TestAcquireConsumesQuota(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 2, time.Hour, 0)

	require.NoError(t, gate.Acquire(context.Background()))
	require.NoError(t, gate.Acquire(context.Background()))
	assert.Empty(t, clock.slept, "no waiting while quota remains")
}

func TestAcquireBlocksUntilReset(t *testing.T) {
	// Zero remaining quota with a 2-second reset: the fetch must block at most
	// 2 seconds and then proceed without error.
	clock := newFakeClock()
	gate := newTestGate(clock, 0, 2*time.Second, 0)

	require.NoError(t, gate.Acquire(context.Background()))
	assert.LessOrEqual(t, clock.totalSlept(), 2*time.Second)
	assert.Equal(t, 2*time.Second, clock.slept[0])
}

func TestAcquireFailsWhenWaitExceedsCeiling(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 0, 10*time.Minute, 5*time.Minute)

	err := gate.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Empty(t, clock.slept, "ceiling failure must not wait first")
}

func TestAcquireSingleProbeAfterReset(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 0, -time.Second, 0)

	// First acquire after a passed reset probes.
	require.NoError(t, gate.Acquire(context.Background()))

	// Fresh headers restore the budget and clear the probe latch.
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-RateLimit-Remaining", "100")
	resp.Header.Set("X-RateLimit-Reset", "4102444800")
	gate.Update(resp)

	require.NoError(t, gate.Acquire(context.Background()))
	assert.Equal(t, 99, gate.remaining)
}

func TestForfeitReopensProbeLatch(t *testing.T) {
	// Exhausted quota, reset already passed: the first Acquire goes through as
	// the probe. If that request dies without a response, no Update ever
	// arrives; Forfeit must reopen the latch so the next Acquire can probe
	// instead of polling until the run deadline.
	clock := newFakeClock()
	gate := newTestGate(clock, 0, -time.Second, 0)

	require.NoError(t, gate.Acquire(context.Background()))
	gate.Forfeit()

	require.NoError(t, gate.Acquire(context.Background()))
	assert.Empty(t, clock.slept, "reopened latch must admit the next probe without waiting")
}

func TestAcquireHonorsCancellation(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 0, time.Minute, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := gate.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdateRetryAfterExhaustsQuota(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 50, time.Hour, 0)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "30")
	gate.Update(resp)

	assert.Equal(t, 0, gate.remaining)
}

func TestExhaust(t *testing.T) {
	clock := newFakeClock()
	gate := newTestGate(clock, 100, time.Minute, 0)

	reset := clock.Now().Add(2 * time.Minute)
	gate.Exhaust(reset)

	assert.Equal(t, 0, gate.remaining)
	assert.Equal(t, reset, gate.reset)
}
