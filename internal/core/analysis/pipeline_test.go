package analysis

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	pipeline, err := NewPipeline(PipelineConfig{Registry: testRegistry()})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return pipeline
}

func TestPipelineRunRejectsEmptyDataset(t *testing.T) {
	pipeline := newTestPipeline(t)

	_, err := pipeline.Run(context.Background(), nil)
	if !domain.IsKind(err, domain.ErrEmptyDataset) {
		t.Fatalf("Run() error = %v, want ErrEmptyDataset", err)
	}
}

func TestPipelineRunSkipsBadMentionWithoutAborting(t *testing.T) {
	mentions := []domain.Mention{
		{ID: "m-1", Text: "Zenith Bank CSR donation drive praised, thanks everyone", Reach: 100},
		{ID: "m-2", Text: ""},
		{ID: "m-3", Text: "Customers furious at Zenith over app downtime", Reach: 300},
		{ID: "m-4", Text: "CompetitorBank profit results impress the CEO", Reach: 200},
		{ID: "m-5", Text: "Quiet day across the sector", Reach: 50},
	}

	result, err := newTestPipeline(t).Run(context.Background(), mentions)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Mentions) != 4 {
		t.Fatalf("classified mentions = %d, want 4", len(result.Mentions))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].ID != "m-2" {
		t.Fatalf("skipped = %+v, want single entry for m-2", result.Skipped)
	}

	overall, ok := result.KPIFor(domain.OverallSubject)
	if !ok {
		t.Fatalf("missing overall KPI set")
	}
	if overall.MentionCount != 4 {
		t.Fatalf("overall mention count = %d, want 4 (skipped row excluded)", overall.MentionCount)
	}
	if overall.Reach != 650 {
		t.Fatalf("overall reach = %d, want 650", overall.Reach)
	}
}

func TestPipelineRunEnrichesDerivedFields(t *testing.T) {
	mentions := []domain.Mention{
		{ID: "m-1", Text: "Furious customers blast Zenith over the CSR scandal", Reach: 1000},
	}

	result, err := newTestPipeline(t).Run(context.Background(), mentions)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := result.Mentions[0]
	if got.Sentiment != domain.SentimentAnger {
		t.Fatalf("sentiment = %q, want anger", got.Sentiment)
	}
	if got.Theme != domain.ThemeCSRESG {
		t.Fatalf("theme = %q, want CSR/ESG", got.Theme)
	}
	if !reflect.DeepEqual(got.Brands, []string{"Zenith Bank"}) {
		t.Fatalf("brands = %v, want [Zenith Bank]", got.Brands)
	}

	zenith, ok := result.KPIFor("Zenith Bank")
	if !ok {
		t.Fatalf("missing Zenith Bank KPI set")
	}
	if zenith.MediaImpactScore != -2 {
		t.Fatalf("MIS = %v, want -2 (anger weighted over reach 1000)", zenith.MediaImpactScore)
	}

	// The caller's slice is an immutable snapshot.
	if mentions[0].Classified() {
		t.Fatalf("Run() wrote derived fields onto the input slice")
	}
}

func TestPipelineRunDeterministic(t *testing.T) {
	mentions := []domain.Mention{
		{ID: "m-1", Text: "Zenith Bank wins award, customers thank the support team", Reach: 400, Engagement: 12},
		{ID: "m-2", Text: "GTCO app glitch sparks outrage", Reach: 900, Engagement: 55},
		{ID: "m-3", Text: "CompetitorBank bond raise oversubscribed", Reach: 1200, Engagement: 9},
		{ID: "m-4", Text: "Community foundation initiative funded by Zenith", Reach: 300, Engagement: 30},
	}

	pipeline := newTestPipeline(t)
	first, err := pipeline.Run(context.Background(), mentions)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := pipeline.Run(context.Background(), mentions)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs differ:\n first %+v\nsecond %+v", first, second)
	}
}

func TestPipelineRunHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	mentions := []domain.Mention{{ID: "m-1", Text: "some text"}}
	if _, err := newTestPipeline(t).Run(ctx, mentions); err == nil {
		t.Fatalf("Run() with cancelled context expected error")
	}
}
