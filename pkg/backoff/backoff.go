package backoff

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/api/googleapi"
)

// Policy controls how Google API calls are retried.
type Policy struct {
	Attempts  uint
	Delay     time.Duration
	MaxDelay  time.Duration
	MaxJitter time.Duration
}

// DefaultPolicy keeps retries short so a single poll cycle never stalls for long.
var DefaultPolicy = Policy{
	Attempts:  3,
	Delay:     500 * time.Millisecond,
	MaxDelay:  5 * time.Second,
	MaxJitter: 250 * time.Millisecond,
}

// Do runs fn with retries. Client errors (4xx other than 429) are not retried.
func Do(ctx context.Context, tag, op string, policy Policy, fn func() error) error {
	err := retry.Do(
		fn,
		retry.Attempts(policy.Attempts),
		retry.Delay(policy.Delay),
		retry.MaxDelay(policy.MaxDelay),
		retry.MaxJitter(policy.MaxJitter),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[%s] Retrying %s (attempt %d): %v", tag, op, n+1, err)
		}),
		retry.RetryIf(IsRetryable),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRetryable reports whether err looks transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return true
		}
		return apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
