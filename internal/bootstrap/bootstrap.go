package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/flashnarrative/brandpulse/internal/config"
	"github.com/flashnarrative/brandpulse/internal/core/analysis"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
	"github.com/flashnarrative/brandpulse/internal/core/usecase"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/alert/servicenow"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/queue/nats"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/repository/postgres"
	"github.com/flashnarrative/brandpulse/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.BatchRepository
	IngestUC  ports.BatchIngestor
	AnalyzeUC ports.BatchAnalyzer
	SyncUC    ports.AnalysisService

	alertHook *alertHook
	closeFn   func()
}

// OnIncident registers fn to observe every crisis-incident delivery
// attempt, with the delivery error or nil. No-op when alerts are disabled.
// Register before the worker subscribes.
func (a *App) OnIncident(fn func(error)) {
	if a.alertHook != nil {
		a.alertHook.observer = fn
	}
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := validateAlertConfig(cfg); err != nil {
		return nil, err
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewBatchRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	pipeline, err := analysis.NewPipeline(analysis.PipelineConfig{
		Lexicon:        profile.Lexicon,
		Registry:       profile.Registry(cfg.MonitoredBrand, cfg.Competitors),
		IntendedThemes: profile.IntendedThemeSets(),
		Keywords: analysis.KeywordOptions{
			TopK:           cfg.KeywordTopK,
			MinTokenLength: cfg.KeywordMinTokenLen,
			PhraseMinCount: cfg.PhraseMinCount,
		},
		Parallelism: cfg.AnalysisWorkers,
	})
	if err != nil {
		return nil, fmt.Errorf("build analysis pipeline: %w", err)
	}

	var alerts ports.AlertSink
	var hook *alertHook
	if cfg.AlertsEnabled {
		hook = &alertHook{
			sink: servicenow.New(cfg.ServiceNowInstance, cfg.ServiceNowUser, cfg.ServiceNowPassword, executor),
		}
		alerts = hook
	}

	ingestUC := usecase.NewIngestBatchUseCase(repo, queue)
	analyzeUC := usecase.NewAnalyzeBatchUseCase(repo, pipeline, alerts, usecase.CrisisPolicy{
		Brand:     cfg.MonitoredBrand,
		Threshold: cfg.CrisisThreshold,
	})
	syncUC := usecase.NewAnalyzeSyncUseCase(pipeline)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		AnalyzeUC: analyzeUC,
		SyncUC:    syncUC,

		alertHook: hook,
		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// validateAlertConfig rejects an alert setup that could only fail at
// delivery time. With an empty instance name the client would target the
// nonsense host https://.service-now.com and every incident would be lost.
func validateAlertConfig(cfg config.Config) error {
	if !cfg.AlertsEnabled {
		return nil
	}
	var missing []string
	if cfg.ServiceNowInstance == "" {
		missing = append(missing, "SERVICENOW_INSTANCE")
	}
	if cfg.ServiceNowUser == "" {
		missing = append(missing, "SERVICENOW_USER")
	}
	if cfg.ServiceNowPassword == "" {
		missing = append(missing, "SERVICENOW_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("alerts enabled but servicenow config incomplete: set %s or disable ALERTS_ENABLED", strings.Join(missing, ", "))
	}
	return nil
}
