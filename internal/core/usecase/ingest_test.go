package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishBatchIngested(_ context.Context, batchID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, batchID)
	return nil
}

func (f *queueFake) SubscribeBatchIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestIngestCreatesBatchAndPublishes(t *testing.T) {
	repo := &batchRepoFake{}
	queue := &queueFake{}
	uc := NewIngestBatchUseCase(repo, queue)

	batch, err := uc.Ingest(context.Background(), []domain.Mention{
		{Text: "Zenith Bank wins award", Source: "newswire"},
		{ID: "m-2", Text: "app outage complaints", Reach: -5, Engagement: -1},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if batch.Status != domain.BatchReceived || batch.MentionCount != 2 {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if len(queue.published) != 1 || queue.published[0] != batch.ID {
		t.Fatalf("expected publish of %s, got %v", batch.ID, queue.published)
	}
	if len(repo.createdRows) != 2 {
		t.Fatalf("expected 2 stored mentions, got %d", len(repo.createdRows))
	}
	if repo.createdRows[0].ID == "" {
		t.Fatalf("missing mention ID should be assigned at ingest")
	}
	if repo.createdRows[1].ID != "m-2" {
		t.Fatalf("supplied mention ID must be kept, got %q", repo.createdRows[1].ID)
	}
	if repo.createdRows[1].Reach != 0 || repo.createdRows[1].Engagement != 0 {
		t.Fatalf("negative audience metrics must floor at zero, got %+v", repo.createdRows[1])
	}
}

func TestIngestRejectsEmptyDataset(t *testing.T) {
	uc := NewIngestBatchUseCase(&batchRepoFake{}, &queueFake{})

	_, err := uc.Ingest(context.Background(), nil)
	if !domain.IsKind(err, domain.ErrEmptyDataset) {
		t.Fatalf("Ingest() error = %v, want ErrEmptyDataset", err)
	}
}

func TestIngestPropagatesRepoError(t *testing.T) {
	uc := NewIngestBatchUseCase(&batchRepoFake{createErr: errors.New("db down")}, &queueFake{})

	if _, err := uc.Ingest(context.Background(), []domain.Mention{{Text: "x"}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestIngestPropagatesQueueError(t *testing.T) {
	uc := NewIngestBatchUseCase(&batchRepoFake{}, &queueFake{err: errors.New("nats down")})

	if _, err := uc.Ingest(context.Background(), []domain.Mention{{Text: "x"}}); err == nil {
		t.Fatalf("expected error")
	}
}
