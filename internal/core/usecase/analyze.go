package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
)

// CrisisPolicy decides when an analyzed batch triggers a PR-crisis
// incident: when the share of anger+negative mentions among the classified
// ones reaches Threshold.
type CrisisPolicy struct {
	Brand     string
	Threshold float64
}

// AnalyzeBatchUseCase drives one batch through the analysis pipeline:
// load, run, persist, mark ready, and raise a crisis incident when the
// batch crosses the negative-sentiment threshold.
type AnalyzeBatchUseCase struct {
	repo     ports.BatchRepository
	pipeline ports.AnalysisPipeline
	alerts   ports.AlertSink
	crisis   CrisisPolicy
}

// NewAnalyzeBatchUseCase wires the worker-side analysis flow. alerts may be
// nil, which disables crisis incidents.
func NewAnalyzeBatchUseCase(
	repo ports.BatchRepository,
	pipeline ports.AnalysisPipeline,
	alerts ports.AlertSink,
	crisis CrisisPolicy,
) *AnalyzeBatchUseCase {
	return &AnalyzeBatchUseCase{
		repo:     repo,
		pipeline: pipeline,
		alerts:   alerts,
		crisis:   crisis,
	}
}

func (uc *AnalyzeBatchUseCase) AnalyzeByID(ctx context.Context, batchID string) error {
	if err := uc.repo.UpdateBatchStatus(ctx, batchID, domain.BatchProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.analyzeBatch(ctx, batchID)
	if err != nil {
		if failErr := uc.repo.UpdateBatchStatus(ctx, batchID, domain.BatchFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.UpdateBatchStatus(ctx, batchID, domain.BatchReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	uc.maybeRaiseIncident(ctx, batchID, result)
	return nil
}

func (uc *AnalyzeBatchUseCase) analyzeBatch(ctx context.Context, batchID string) (*domain.AnalysisResult, error) {
	mentions, err := uc.repo.ListMentions(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch mentions: %w", err)
	}

	result, err := uc.pipeline.Run(ctx, mentions)
	if err != nil {
		return nil, fmt.Errorf("run analysis pipeline: %w", err)
	}

	if err := uc.repo.SaveAnalysis(ctx, batchID, result); err != nil {
		return nil, fmt.Errorf("save analysis result: %w", err)
	}
	return result, nil
}

// maybeRaiseIncident applies the crisis policy. Alert delivery failures are
// logged and swallowed: a ticketing outage must not fail an already
// analyzed batch.
func (uc *AnalyzeBatchUseCase) maybeRaiseIncident(ctx context.Context, batchID string, result *domain.AnalysisResult) {
	if uc.alerts == nil || uc.crisis.Threshold <= 0 || len(result.Mentions) == 0 {
		return
	}

	negatives := 0
	for _, mention := range result.Mentions {
		if mention.Sentiment == domain.SentimentAnger || mention.Sentiment == domain.SentimentNegative {
			negatives++
		}
	}
	share := float64(negatives) / float64(len(result.Mentions))
	if share < uc.crisis.Threshold {
		return
	}

	incident := domain.Incident{
		Title: fmt.Sprintf("PR Crisis Alert: %s", uc.crisis.Brand),
		Description: fmt.Sprintf("High negative sentiment (%.1f%%) detected for %s in batch %s.",
			share*100, uc.crisis.Brand, batchID),
		Urgency: "1",
		Impact:  "1",
	}
	if err := uc.alerts.RaiseIncident(ctx, incident); err != nil {
		slog.Warn("crisis_incident_failed", "batch_id", batchID, "error", err)
		return
	}
	slog.Info("crisis_incident_raised", "batch_id", batchID, "negative_share", share)
}
