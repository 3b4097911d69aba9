package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/resilience"
)

// transientConnErrs are connection-level failures where a republish of the
// batch event can succeed once the server is reachable again.
var transientConnErrs = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
}

func isTransientConnErr(err error) bool {
	for _, target := range transientConnErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func classifyPublishError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The caller gave up; retrying past a dead context wastes budget.
		return resilience.ErrorClassification{}
	case resilience.IsCircuitOpen(err), isTransientConnErr(err):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

// markTemporary tags retryable publish failures as domain.ErrTemporary so
// the API layer answers 503 and the caller knows to resubmit the batch.
func markTemporary(batchID string, err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classifyPublishError(err).Retryable {
		return domain.WrapError(domain.ErrTemporary, "publish batch "+batchID, err)
	}
	return err
}
