package retry

import (
	"context"
	"time"

	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// Executor runs a Wikibase read and repeats it while the classifier calls
// the failure transient and the strategy allows another attempt.
// Only idempotent requests may be passed to Execute.
//
// WithOnRetry returns a new instance, so an Executor can be shared between
// goroutines that need different callbacks.
type Executor struct {
	classifier wbapi.ErrorClassifier
	strategy   wbapi.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier wbapi.ErrorClassifier,
	strategy wbapi.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// NoRetry returns an executor that runs each operation exactly once. The
// wikibase client uses it when retries are not configured.
func NoRetry() *Executor {
	return NewExecutor(NewHTTPErrorClassifier(), NewExponentialBackoff(0))
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The receiver is not modified.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// MaxAttempts returns the number of retries after the first attempt.
func (e *Executor) MaxAttempts() int {
	return e.strategy.MaxAttempts()
}

// Execute runs the read, retrying transient failures such as a throttled
// or restarting instance. It returns the result of the last attempt, or the
// context error if ctx ends while waiting.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()

	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	// Negative maxAttempts retries until the context ends.
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
