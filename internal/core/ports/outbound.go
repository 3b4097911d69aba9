package ports

import (
	"context"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// BatchRepository persists mention batches and their analysis results.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *domain.MentionBatch, mentions []domain.Mention) error
	GetBatch(ctx context.Context, id string) (*domain.MentionBatch, error)
	ListMentions(ctx context.Context, batchID string) ([]domain.Mention, error)
	UpdateBatchStatus(ctx context.Context, id string, status domain.BatchStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, batchID string, result *domain.AnalysisResult) error
	GetAnalysis(ctx context.Context, batchID string) (*domain.AnalysisResult, error)
}

// MessageQueue publishes/consumes batch-ingested events.
type MessageQueue interface {
	PublishBatchIngested(ctx context.Context, batchID string) error
	SubscribeBatchIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// AnalysisPipeline runs the whole analysis over an in-memory mention
// collection.
type AnalysisPipeline interface {
	Run(ctx context.Context, mentions []domain.Mention) (*domain.AnalysisResult, error)
}

// AlertSink delivers PR-crisis incidents to an external ticketing system.
type AlertSink interface {
	RaiseIncident(ctx context.Context, incident domain.Incident) error
}
