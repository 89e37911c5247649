package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v81/github"
)

// Sentinel errors classifying API failures. Only ErrAuth is fatal to a run;
// the rest are recorded per repository and the batch continues.
var (
	ErrAuth              = errors.New("authentication failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrRateLimitExceeded = errors.New("rate limit wait ceiling exceeded")
)

// errTransient marks failures worth retrying: network faults and 5xx responses.
var errTransient = errors.New("transient error")

// rateLimitedError signals that the API reported quota exhaustion. It is
// absorbed by the quota gate rather than surfaced to callers.
type rateLimitedError struct {
	reset time.Time
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("rate limited until %s", e.reset.Format(time.RFC3339))
}

// classify maps a go-github error onto the package taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &rateLimitedError{reset: rateErr.Rate.Reset.Time}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now().Add(30 * time.Second)
		if abuseErr.RetryAfter != nil {
			reset = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &rateLimitedError{reset: reset}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch code := respErr.Response.StatusCode; {
		case code == http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case code == http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrForbidden, err)
		case code >= 500:
			return fmt.Errorf("%w: %v", errTransient, err)
		default:
			return err
		}
	}

	if errors.Is(err, github.ErrBranchNotProtected) {
		return err
	}

	// Everything else (DNS failures, connection resets, timeouts) is a
	// network-level fault and eligible for retry.
	return fmt.Errorf("%w: %v", errTransient, err)
}

func isTransient(err error) bool {
	return errors.Is(err, errTransient)
}
