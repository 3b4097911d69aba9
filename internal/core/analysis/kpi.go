package analysis

import (
	"errors"
	"fmt"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// DefaultIntendedThemes is the intended-message theme set used for Message
// Penetration when a brand has no explicit override.
var DefaultIntendedThemes = []domain.ThemeCategory{
	domain.ThemeCorporate,
	domain.ThemeCSRESG,
}

// KPIOptions configures KPI aggregation. IntendedThemes maps a brand's
// canonical name to its intended-message theme set; brands without an
// entry use DefaultIntendedThemes.
type KPIOptions struct {
	Registry       domain.BrandRegistry
	IntendedThemes map[string][]domain.ThemeCategory
}

// ComputeKPIs aggregates one KPISet for the overall collection followed by
// one per registered brand, in registry order. Every mention must already
// carry its derived fields; otherwise the call fails with
// domain.ErrNotClassified. The input is read-only and results are computed
// fresh on every call, so shuffling the mention order changes nothing.
//
// Share of Voice divides each brand's mention count by the sum of all
// brand mention counts, not by the total mention count: a mention naming
// several brands counts toward each of them, so the denominator can exceed
// the mention total. That mirrors the upstream reporting behavior and is
// kept deliberately.
//
// The Media Impact Score is the reach-weighted average sentiment severity
// (anger -2 .. appreciation +2), so it lies in [-2, 2] and may be negative.
func ComputeKPIs(mentions []domain.Mention, opts KPIOptions) ([]domain.KPISet, error) {
	for _, mention := range mentions {
		if !mention.Classified() {
			return nil, domain.WrapError(domain.ErrNotClassified, "compute kpis",
				fmt.Errorf("mention %s has no derived sentiment/theme", mention.ID))
		}
	}
	if len(opts.Registry.Brands) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "compute kpis",
			errors.New("brand registry is empty"))
	}

	sets := make([]domain.KPISet, 0, len(opts.Registry.Brands)+1)
	sets = append(sets, aggregate(domain.OverallSubject, mentions, DefaultIntendedThemes))

	totalAppearances := 0
	brandMentions := make([][]domain.Mention, len(opts.Registry.Brands))
	for i, brand := range opts.Registry.Brands {
		for _, mention := range mentions {
			if mentionsBrand(mention, brand.Name) {
				brandMentions[i] = append(brandMentions[i], mention)
			}
		}
		totalAppearances += len(brandMentions[i])
	}

	for i, brand := range opts.Registry.Brands {
		intended := DefaultIntendedThemes
		if themes, ok := opts.IntendedThemes[brand.Name]; ok && len(themes) > 0 {
			intended = themes
		}
		set := aggregate(brand.Name, brandMentions[i], intended)
		if totalAppearances > 0 {
			set.ShareOfVoice = float64(len(brandMentions[i])) / float64(totalAppearances)
		}
		sets = append(sets, set)
	}

	// Overall share of voice is the sum of the per-brand fractions: 1 when
	// anything matched a tracked brand, 0 otherwise.
	if totalAppearances > 0 {
		sets[0].ShareOfVoice = 1
	}

	return sets, nil
}

func aggregate(subject string, mentions []domain.Mention, intended []domain.ThemeCategory) domain.KPISet {
	set := domain.KPISet{
		Subject:      subject,
		MentionCount: len(mentions),
	}

	intendedSet := make(map[domain.ThemeCategory]struct{}, len(intended))
	for _, theme := range intended {
		intendedSet[theme] = struct{}{}
	}

	var weightedReach float64
	var totalReach int64
	onMessage := 0
	for _, mention := range mentions {
		set.Reach += mention.Reach
		set.Engagement += mention.Engagement

		weightedReach += float64(mention.Reach) * mention.Sentiment.SeverityWeight()
		totalReach += mention.Reach

		if _, ok := intendedSet[mention.Theme]; ok {
			onMessage++
		}
	}

	if totalReach > 0 {
		set.MediaImpactScore = weightedReach / float64(totalReach)
	}
	if len(mentions) > 0 {
		set.MessagePenetration = float64(onMessage) / float64(len(mentions))
	}
	return set
}

func mentionsBrand(mention domain.Mention, name string) bool {
	for _, brand := range mention.Brands {
		if brand == name {
			return true
		}
	}
	return false
}
