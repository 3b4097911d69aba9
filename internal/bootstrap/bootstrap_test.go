package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flashnarrative/brandpulse/internal/config"
	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

func TestNewRejectsAlertsWithoutCredentials(t *testing.T) {
	cfg := config.Config{
		AlertsEnabled: true,
	}

	_, err := New(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for enabled alerts without servicenow config")
	}
	for _, want := range []string{"SERVICENOW_INSTANCE", "SERVICENOW_USER", "SERVICENOW_PASSWORD"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %s in error, got %v", want, err)
		}
	}
}

func TestValidateAlertConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name:    "alerts disabled needs nothing",
			cfg:     config.Config{AlertsEnabled: false},
			wantErr: false,
		},
		{
			name: "complete servicenow config",
			cfg: config.Config{
				AlertsEnabled:      true,
				ServiceNowInstance: "acme",
				ServiceNowUser:     "bot",
				ServiceNowPassword: "secret",
			},
			wantErr: false,
		},
		{
			name: "missing instance",
			cfg: config.Config{
				AlertsEnabled:      true,
				ServiceNowUser:     "bot",
				ServiceNowPassword: "secret",
			},
			wantErr: true,
		},
		{
			name: "missing password",
			cfg: config.Config{
				AlertsEnabled:      true,
				ServiceNowInstance: "acme",
				ServiceNowUser:     "bot",
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAlertConfig(tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateAlertConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

type alertSinkFake struct {
	err    error
	raised []domain.Incident
}

func (f *alertSinkFake) RaiseIncident(_ context.Context, incident domain.Incident) error {
	f.raised = append(f.raised, incident)
	return f.err
}

func TestAlertHookNotifiesObserver(t *testing.T) {
	sink := &alertSinkFake{err: errors.New("delivery failed")}
	hook := &alertHook{sink: sink}

	var observed []error
	hook.observer = func(err error) { observed = append(observed, err) }

	incident := domain.Incident{Title: "PR Crisis Alert: Zenith Bank"}
	if err := hook.RaiseIncident(context.Background(), incident); err == nil {
		t.Fatal("expected sink error to pass through")
	}
	sink.err = nil
	if err := hook.RaiseIncident(context.Background(), incident); err != nil {
		t.Fatalf("RaiseIncident() error = %v", err)
	}

	if len(sink.raised) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sink.raised))
	}
	if len(observed) != 2 || observed[0] == nil || observed[1] != nil {
		t.Fatalf("expected observer to see [error, nil], got %v", observed)
	}
}

func TestAlertHookWorksWithoutObserver(t *testing.T) {
	hook := &alertHook{sink: &alertSinkFake{}}
	if err := hook.RaiseIncident(context.Background(), domain.Incident{Title: "PR Crisis Alert: Zenith Bank"}); err != nil {
		t.Fatalf("RaiseIncident() error = %v", err)
	}
}
