package ports

import (
	"context"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// BatchIngestor is the inbound contract for accepting a mention batch and
// queueing it for analysis.
type BatchIngestor interface {
	Ingest(ctx context.Context, mentions []domain.Mention) (*domain.MentionBatch, error)
}

// BatchAnalyzer is the inbound contract for asynchronous batch analysis.
type BatchAnalyzer interface {
	AnalyzeByID(ctx context.Context, batchID string) error
}

// AnalysisService is the inbound contract for synchronous, non-persisted
// analysis of a mention collection.
type AnalysisService interface {
	Analyze(ctx context.Context, mentions []domain.Mention) (*domain.AnalysisResult, error)
}
