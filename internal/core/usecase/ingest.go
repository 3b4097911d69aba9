package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
	"github.com/flashnarrative/brandpulse/internal/core/ports"
)

// IngestBatchUseCase accepts a mention batch, persists it and queues it for
// asynchronous analysis.
type IngestBatchUseCase struct {
	repo  ports.BatchRepository
	queue ports.MessageQueue
}

func NewIngestBatchUseCase(repo ports.BatchRepository, queue ports.MessageQueue) *IngestBatchUseCase {
	return &IngestBatchUseCase{repo: repo, queue: queue}
}

func (uc *IngestBatchUseCase) Ingest(ctx context.Context, mentions []domain.Mention) (*domain.MentionBatch, error) {
	if len(mentions) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyDataset, "ingest batch",
			errors.New("zero mentions supplied"))
	}

	now := time.Now().UTC()
	batch := &domain.MentionBatch{
		ID:           uuid.NewString(),
		Status:       domain.BatchReceived,
		MentionCount: len(mentions),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	prepared := make([]domain.Mention, len(mentions))
	for i, mention := range mentions {
		if mention.ID == "" {
			mention.ID = uuid.NewString()
		}
		// Audience metrics may be absent or dirty in upstream exports;
		// they are floored at zero, never skipped.
		if mention.Reach < 0 {
			mention.Reach = 0
		}
		if mention.Engagement < 0 {
			mention.Engagement = 0
		}
		prepared[i] = mention
	}

	if err := uc.repo.CreateBatch(ctx, batch, prepared); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	if err := uc.queue.PublishBatchIngested(ctx, batch.ID); err != nil {
		return nil, fmt.Errorf("publish batch event: %w", err)
	}
	return batch, nil
}
