// Package notifier is the delivery contract for out-of-band messages (email or
// SMS). The portal core only raises admin alerts through it; the account
// verification flow lives outside this service and plugs in its own sink.
package notifier

import (
	"context"
	"time"

	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/cenkalti/backoff/v4"
)

type Notifier interface {
	Send(ctx context.Context, destination, message string) error
}

// LogNotifier writes messages to the service log instead of delivering them.
// Used in development and wherever no gateway is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, destination, message string) error {
	logger.Infof(ctx, "notify %s: %s", destination, message)
	return nil
}

type retryNotifier struct {
	next Notifier
}

// WithRetry wraps a sink with a short constant-backoff retry.
func WithRetry(next Notifier) Notifier {
	return &retryNotifier{next: next}
}

func (n *retryNotifier) Send(ctx context.Context, destination, message string) error {
	return backoff.Retry(
		func() error { return n.next.Send(ctx, destination, message) },
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 3),
			ctx,
		),
	)
}
