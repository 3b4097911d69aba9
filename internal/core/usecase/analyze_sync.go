package usecase

import (
	"context"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
)

// AnalyzeSyncUseCase runs the pipeline inline for the synchronous API
// endpoint; nothing is persisted.
type AnalyzeSyncUseCase struct {
	pipeline ports.AnalysisPipeline
}

func NewAnalyzeSyncUseCase(pipeline ports.AnalysisPipeline) *AnalyzeSyncUseCase {
	return &AnalyzeSyncUseCase{pipeline: pipeline}
}

func (uc *AnalyzeSyncUseCase) Analyze(ctx context.Context, mentions []domain.Mention) (*domain.AnalysisResult, error) {
	return uc.pipeline.Run(ctx, mentions)
}
