package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/brendaninnis/uncluttered-cli/internal/logger"
	"go.uber.org/zap"
)

const (
	maxAttempts     = 10
	baseBackoff     = 2 * time.Second
	maxBackoff      = 60 * time.Second
	backoffMultiple = 2
)

// backoffWait returns the wait before retry attempt k (1-based): an
// exponential curve with base multiplier 2, floored at 2s and capped at 60s.
func backoffWait(attempt int) time.Duration {
	wait := baseBackoff
	for i := 1; i < attempt; i++ {
		wait *= backoffMultiple
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	if wait < baseBackoff {
		return baseBackoff
	}
	return wait
}

// callWithRetry invokes fn until it succeeds, fails with an error the
// retryable predicate classifies as permanent, or exhausts maxAttempts.
// The sleep between attempts is context-aware so a cancelled run does not
// sit out a full backoff window.
func callWithRetry(ctx context.Context, provider string, retryable func(error) bool, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		wait := backoffWait(attempt)
		logger.Get().Warn("provider is busy, retrying",
			zap.String("provider", provider),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("%s: exhausted %d attempts: %w", provider, maxAttempts, lastErr)
}
