package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v81/github"
	"go.uber.org/zap"
)

const (
	retryBaseDelay     = 1 * time.Second
	retryMaxDelay      = 30 * time.Second
	defaultMaxAttempts = 3
)

// do runs one API call under the quota gate with capped exponential backoff.
//
// Transient faults (network errors, 5xx) are retried up to maxAttempts.
// Rate-limit responses are fed back into the gate and do not consume attempts;
// the gate decides whether to wait or give up with ErrRateLimitExceeded.
// Other 4xx responses propagate immediately.
func (c *Client) do(ctx context.Context, op string, call func() (*github.Response, error)) error {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		if err := c.quota.Acquire(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		resp, err := call()
		if resp != nil && resp.Response != nil {
			c.quota.Update(resp.Response)
		} else if err != nil {
			// No headers came back to refresh the gate; release any probe
			// latch this request may hold so waiters are not stranded.
			c.quota.Forfeit()
		}
		if err == nil {
			return nil
		}

		classified := classify(err)

		var limited *rateLimitedError
		if errors.As(classified, &limited) {
			c.quota.Exhaust(limited.reset)
			c.log.Debug("rate limited, deferring to quota gate",
				zap.String("op", op),
				zap.Time("reset", limited.reset))
			continue
		}

		if !isTransient(classified) || attempt >= c.maxAttempts {
			return fmt.Errorf("%s: %w", op, classified)
		}

		c.log.Debug("transient error, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))
		if err := sleepCtx(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}
