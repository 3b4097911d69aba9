package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

type statusCall struct {
	status domain.BatchStatus
	errMsg string
}

type batchRepoFake struct {
	mentions    []domain.Mention
	listErr     error
	saveErr     error
	statusErr   error
	statusCalls []statusCall
	savedID     string
	saved       *domain.AnalysisResult
	created     *domain.MentionBatch
	createdRows []domain.Mention
	createErr   error
}

func (f *batchRepoFake) CreateBatch(_ context.Context, batch *domain.MentionBatch, mentions []domain.Mention) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = batch
	f.createdRows = mentions
	return nil
}

func (f *batchRepoFake) GetBatch(context.Context, string) (*domain.MentionBatch, error) {
	return f.created, nil
}

func (f *batchRepoFake) ListMentions(context.Context, string) ([]domain.Mention, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.mentions, nil
}

func (f *batchRepoFake) UpdateBatchStatus(_ context.Context, _ string, status domain.BatchStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return f.statusErr
}

func (f *batchRepoFake) SaveAnalysis(_ context.Context, batchID string, result *domain.AnalysisResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = batchID
	f.saved = result
	return nil
}

func (f *batchRepoFake) GetAnalysis(context.Context, string) (*domain.AnalysisResult, error) {
	return f.saved, nil
}

type pipelineFake struct {
	result *domain.AnalysisResult
	err    error
}

func (f *pipelineFake) Run(context.Context, []domain.Mention) (*domain.AnalysisResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type alertSinkFake struct {
	incidents []domain.Incident
	err       error
}

func (f *alertSinkFake) RaiseIncident(_ context.Context, incident domain.Incident) error {
	if f.err != nil {
		return f.err
	}
	f.incidents = append(f.incidents, incident)
	return nil
}

func classifiedResult(sentiments ...domain.SentimentCategory) *domain.AnalysisResult {
	result := &domain.AnalysisResult{}
	for i, sentiment := range sentiments {
		result.Mentions = append(result.Mentions, domain.Mention{
			ID:        string(rune('a' + i)),
			Text:      "text",
			Sentiment: sentiment,
			Theme:     domain.ThemeOther,
		})
	}
	return result
}

func TestAnalyzeByIDSuccess(t *testing.T) {
	repo := &batchRepoFake{mentions: []domain.Mention{{ID: "m-1", Text: "fine"}}}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{result: classifiedResult(domain.SentimentNeutral)}, nil, CrisisPolicy{})

	if err := uc.AnalyzeByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.BatchProcessing || repo.statusCalls[1].status != domain.BatchReady {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.savedID != "b-1" {
		t.Fatalf("expected analysis saved for b-1, got %q", repo.savedID)
	}
}

func TestAnalyzeByIDMarksFailedOnPipelineError(t *testing.T) {
	repo := &batchRepoFake{mentions: nil}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{
		err: domain.WrapError(domain.ErrEmptyDataset, "run pipeline", errors.New("zero mentions")),
	}, nil, CrisisPolicy{})

	err := uc.AnalyzeByID(context.Background(), "b-1")
	if !domain.IsKind(err, domain.ErrEmptyDataset) {
		t.Fatalf("AnalyzeByID() error = %v, want ErrEmptyDataset", err)
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.BatchFailed {
		t.Fatalf("expected processing + failed statuses, got %+v", repo.statusCalls)
	}
	if repo.statusCalls[1].errMsg == "" {
		t.Fatalf("failed status should carry the error message")
	}
}

func TestAnalyzeByIDMarksFailedOnSaveError(t *testing.T) {
	repo := &batchRepoFake{
		mentions: []domain.Mention{{ID: "m-1", Text: "fine"}},
		saveErr:  errors.New("insert failed"),
	}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{result: classifiedResult(domain.SentimentNeutral)}, nil, CrisisPolicy{})

	if err := uc.AnalyzeByID(context.Background(), "b-1"); err == nil {
		t.Fatalf("expected error")
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.BatchFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestAnalyzeByIDRaisesCrisisIncident(t *testing.T) {
	repo := &batchRepoFake{mentions: []domain.Mention{{ID: "m-1", Text: "fine"}}}
	alerts := &alertSinkFake{}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{
		result: classifiedResult(
			domain.SentimentAnger,
			domain.SentimentNegative,
			domain.SentimentNeutral,
			domain.SentimentPositive,
		),
	}, alerts, CrisisPolicy{Brand: "Zenith Bank", Threshold: 0.4})

	if err := uc.AnalyzeByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}
	if len(alerts.incidents) != 1 {
		t.Fatalf("expected 1 incident, got %d", len(alerts.incidents))
	}
	incident := alerts.incidents[0]
	if !strings.Contains(incident.Title, "Zenith Bank") {
		t.Fatalf("incident title %q missing brand", incident.Title)
	}
	if incident.Urgency != "1" {
		t.Fatalf("incident urgency = %q, want 1", incident.Urgency)
	}
}

func TestAnalyzeByIDSkipsIncidentBelowThreshold(t *testing.T) {
	repo := &batchRepoFake{mentions: []domain.Mention{{ID: "m-1", Text: "fine"}}}
	alerts := &alertSinkFake{}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{
		result: classifiedResult(
			domain.SentimentNegative,
			domain.SentimentNeutral,
			domain.SentimentPositive,
			domain.SentimentPositive,
		),
	}, alerts, CrisisPolicy{Brand: "Zenith Bank", Threshold: 0.4})

	if err := uc.AnalyzeByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}
	if len(alerts.incidents) != 0 {
		t.Fatalf("expected no incidents, got %d", len(alerts.incidents))
	}
}

func TestAnalyzeByIDToleratesAlertFailure(t *testing.T) {
	repo := &batchRepoFake{mentions: []domain.Mention{{ID: "m-1", Text: "fine"}}}
	alerts := &alertSinkFake{err: errors.New("servicenow down")}
	uc := NewAnalyzeBatchUseCase(repo, &pipelineFake{
		result: classifiedResult(domain.SentimentAnger),
	}, alerts, CrisisPolicy{Brand: "Zenith Bank", Threshold: 0.4})

	if err := uc.AnalyzeByID(context.Background(), "b-1"); err != nil {
		t.Fatalf("alert failure must not fail the batch, got %v", err)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.BatchReady {
		t.Fatalf("expected batch marked ready, got %+v", repo.statusCalls)
	}
}
