package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHub grants authenticated tokens 5000 core requests per hour; start
	// from that and correct from response headers as soon as the first request
	// lands.
	initialQuota = 5000

	// Pacing smooths request bursts from concurrent workers so a full worker
	// pool does not trip GitHub's secondary rate limits.
	paceRequestsPerSecond = 8
	paceBurst             = 8

	// Poll interval while waiting for fresh headers after a reset has passed.
	probeRetryInterval = 250 * time.Millisecond
)

// QuotaGate is the single shared rate-limit gate for a run. Every outbound
// request acquires from it first; it blocks when the reported quota is
// exhausted and unblocks at the reported reset time. Safe for concurrent use.
type QuotaGate struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	probed    bool

	maxWait time.Duration
	pacer   *rate.Limiter

	// Seams for tests; NewQuotaGate installs the real clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewQuotaGate builds a gate that blocks until quota reset, unless the
// required wait exceeds maxWait, in which case Acquire fails with
// ErrRateLimitExceeded. maxWait <= 0 means wait without ceiling.
func NewQuotaGate(maxWait time.Duration) *QuotaGate {
	return &QuotaGate{
		remaining: initialQuota,
		reset:     time.Now().Add(time.Hour),
		maxWait:   maxWait,
		pacer:     rate.NewLimiter(rate.Limit(paceRequestsPerSecond), paceBurst),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Acquire consumes one request slot, blocking until one is available.
func (g *QuotaGate) Acquire(ctx context.Context) error {
	if g.pacer != nil {
		if err := g.pacer.Wait(ctx); err != nil {
			return err
		}
	}

	for {
		g.mu.Lock()
		now := g.now()

		if g.remaining > 0 {
			g.remaining--
			g.mu.Unlock()
			return nil
		}

		wait := g.reset.Sub(now)
		if wait <= 0 {
			// Reset has passed but no refreshed headers observed yet. Let one
			// request probe; hold the rest until Update reports fresh quota.
			if !g.probed {
				g.probed = true
				g.mu.Unlock()
				return nil
			}
			g.mu.Unlock()
			if err := g.sleep(ctx, probeRetryInterval); err != nil {
				return err
			}
			continue
		}

		if g.maxWait > 0 && wait > g.maxWait {
			g.mu.Unlock()
			return fmt.Errorf("%w: quota resets in %s, ceiling is %s",
				ErrRateLimitExceeded, wait.Round(time.Second), g.maxWait)
		}

		g.mu.Unlock()
		if err := g.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Update records the quota state reported by a response.
func (g *QuotaGate) Update(resp *http.Response) {
	if resp == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	changed := false

	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if remaining, err := strconv.Atoi(v); err == nil && remaining >= 0 {
			if g.remaining != remaining {
				g.remaining = remaining
				changed = true
			}
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil && unix > 0 {
			reset := time.Unix(unix, 0)
			if !g.reset.Equal(reset) {
				g.reset = reset
				changed = true
			}
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			until := g.now().Add(time.Duration(seconds) * time.Second)
			if until.After(g.reset) {
				g.reset = until
			}
			g.remaining = 0
			changed = true
		}
	}

	if changed {
		g.probed = false
	}
}

// Forfeit reports that a request admitted by Acquire failed without a usable
// response. If that request held the probe latch, the latch reopens so the
// next waiter becomes the probe instead of polling until the run deadline.
func (g *QuotaGate) Forfeit() {
	g.mu.Lock()
	g.probed = false
	g.mu.Unlock()
}

// Exhaust records quota exhaustion reported through a typed rate-limit error
// rather than headers.
func (g *QuotaGate) Exhaust(reset time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.remaining = 0
	if reset.After(g.reset) || g.reset.Before(g.now()) {
		g.reset = reset
	}
	g.probed = false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
