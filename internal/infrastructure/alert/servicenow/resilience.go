package servicenow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/resilience"
)

// TableAPIError is a non-2xx response from the incident Table API. Detail
// carries the message from ServiceNow's JSON error envelope when the body
// parses as one, otherwise the raw response body.
type TableAPIError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *TableAPIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("servicenow incident status: %s", e.Status)
	}
	return fmt.Sprintf("servicenow incident status: %s: %s", e.Status, strings.TrimSpace(e.Detail))
}

// Transient reports whether resending the same incident record can succeed
// on a later attempt.
func (e *TableAPIError) Transient() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= 500 && e.StatusCode != http.StatusNotImplemented
}

// AuthFailure reports a rejected credential or a missing write ACL on the
// incident table. These are instance-configuration problems, not outages,
// so they must not trip the breaker or burn retries.
func (e *TableAPIError) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func classifyIncidentError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var apiErr *TableAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Transient():
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		case apiErr.AuthFailure():
			return resilience.ErrorClassification{}
		default:
			// Rejected record, e.g. a field the instance does not accept.
			return resilience.ErrorClassification{}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{RecordFailure: true}
}

// markTemporary tags transient delivery failures as domain.ErrTemporary so
// the worker logs them as retry-later rather than as broken alert config.
func markTemporary(operation string, err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classifyIncidentError(err).Retryable {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}
