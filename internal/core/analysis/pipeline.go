package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// PipelineConfig assembles one analysis pipeline. Lexicon and Keywords zero
// values fall back to the built-in defaults; Parallelism <= 0 uses the
// number of available CPUs.
type PipelineConfig struct {
	Lexicon        Lexicon
	Registry       domain.BrandRegistry
	IntendedThemes map[string][]domain.ThemeCategory
	Keywords       KeywordOptions
	Parallelism    int
}

// Pipeline runs the full analysis over a mention collection: per-mention
// classification and brand extraction, then corpus keyword extraction and
// KPI aggregation. A pipeline is read-only after construction and may be
// shared across concurrent runs.
type Pipeline struct {
	classifier  *Classifier
	brands      *BrandMatcher
	keywordOpts KeywordOptions
	kpiOpts     KPIOptions
	parallelism int
}

func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if len(cfg.Registry.Brands) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build pipeline",
			errors.New("brand registry is empty"))
	}

	classifier, err := NewClassifier(cfg.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	matcher, err := NewBrandMatcher(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("build brand matcher: %w", err)
	}

	keywordOpts := cfg.Keywords.normalize()
	if cfg.Keywords.Stopwords == nil && len(cfg.Lexicon.Stopwords) > 0 {
		keywordOpts.Stopwords = cfg.Lexicon.Stopwords
	}
	// Brand names dominate every corpus they are monitored in; keep them
	// out of the keyword table, like the generic stopwords.
	for _, brand := range cfg.Registry.Brands {
		for _, term := range brand.Terms() {
			keywordOpts.Stopwords = append(keywordOpts.Stopwords, splitLetterTokensLower(term)...)
		}
	}

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	return &Pipeline{
		classifier:  classifier,
		brands:      matcher,
		keywordOpts: keywordOpts,
		kpiOpts: KPIOptions{
			Registry:       cfg.Registry,
			IntendedThemes: cfg.IntendedThemes,
		},
		parallelism: parallelism,
	}, nil
}

// Run executes the pipeline over mentions and returns the assembled
// result. It fails with domain.ErrEmptyDataset for a zero-length input. A
// mention failing classification (empty text) never aborts the batch: it
// is excluded from the aggregates and recorded in the skipped list.
//
// The input slice is treated as an immutable snapshot; derived fields are
// written onto copies, so nothing is visible to the caller until Run
// returns.
func (p *Pipeline) Run(ctx context.Context, mentions []domain.Mention) (*domain.AnalysisResult, error) {
	if len(mentions) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyDataset, "run pipeline",
			errors.New("zero mentions supplied"))
	}

	type enriched struct {
		mention domain.Mention
		err     error
	}
	out := make([]enriched, len(mentions))

	// Per-mention classification and brand extraction are independent pure
	// functions; fan them out with one result slot per mention.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism)
	for i := range mentions {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			mention := mentions[i]
			sentiment, theme, err := p.classifier.Classify(mention.Text)
			if err != nil {
				out[i] = enriched{mention: mention, err: err}
				return nil
			}
			mention.Sentiment = sentiment
			mention.Theme = theme
			mention.Brands = p.brands.Extract(mention.Text)
			out[i] = enriched{mention: mention}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("classify mentions: %w", err)
	}

	classified := make([]domain.Mention, 0, len(mentions))
	skipped := make([]domain.SkippedMention, 0)
	for _, item := range out {
		if item.err != nil {
			skipped = append(skipped, domain.SkippedMention{
				ID:     item.mention.ID,
				Reason: item.err.Error(),
			})
			continue
		}
		classified = append(classified, item.mention)
	}

	kpis, err := ComputeKPIs(classified, p.kpiOpts)
	if err != nil {
		return nil, fmt.Errorf("aggregate kpis: %w", err)
	}

	return &domain.AnalysisResult{
		Mentions: classified,
		Keywords: TopKeywords(classified, p.keywordOpts),
		KPIs:     kpis,
		Skipped:  skipped,
	}, nil
}
