package bootstrap

import (
	"context"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
)

// alertHook wraps the alert sink so the worker can count incident
// deliveries without the usecase knowing about metrics.
type alertHook struct {
	sink     ports.AlertSink
	observer func(error)
}

func (h *alertHook) RaiseIncident(ctx context.Context, incident domain.Incident) error {
	err := h.sink.RaiseIncident(ctx, incident)
	if h.observer != nil {
		h.observer(err)
	}
	return err
}
