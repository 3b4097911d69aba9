package analysis

import (
	"fmt"
	"regexp"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// BrandMatcher scans mention text for registered brands by canonical name
// or alias. It is immutable after construction and safe for concurrent use.
type BrandMatcher struct {
	brands []brandPatterns
}

type brandPatterns struct {
	name     string
	patterns []*regexp.Regexp
}

// NewBrandMatcher compiles word-boundary matchers for every registered
// brand's canonical name and aliases.
func NewBrandMatcher(registry domain.BrandRegistry) (*BrandMatcher, error) {
	matcher := &BrandMatcher{brands: make([]brandPatterns, 0, len(registry.Brands))}
	for _, brand := range registry.Brands {
		patterns, err := compileKeywords(brand.Terms())
		if err != nil {
			return nil, fmt.Errorf("compile brand %q: %w", brand.Name, err)
		}
		matcher.brands = append(matcher.brands, brandPatterns{name: brand.Name, patterns: patterns})
	}
	return matcher, nil
}

// Extract returns the canonical names of every brand referenced in text,
// in registry order. A brand matched through several aliases still appears
// once; a mention naming several brands is attributed to all of them.
func (m *BrandMatcher) Extract(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, brand := range m.brands {
		if anyMatch(brand.patterns, text) {
			found = append(found, brand.name)
		}
	}
	return found
}
