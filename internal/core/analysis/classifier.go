package analysis

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

// Classifier assigns one sentiment label and one theme label to a mention
// by word-boundary keyword matching against its lexicon. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	sentiment map[domain.SentimentCategory][]*regexp.Regexp
	mixed     []*regexp.Regexp
	themes    map[domain.ThemeCategory][]*regexp.Regexp
}

// NewClassifier compiles the lexicon's keyword lists into word-boundary
// matchers. Matching is case-insensitive and boundary-anchored, so "mad"
// never fires inside "madrid".
func NewClassifier(lex Lexicon) (*Classifier, error) {
	lex = lex.merged()

	c := &Classifier{
		sentiment: make(map[domain.SentimentCategory][]*regexp.Regexp, len(lex.Sentiment)),
		themes:    make(map[domain.ThemeCategory][]*regexp.Regexp, len(lex.Themes)),
	}

	for category, keywords := range lex.Sentiment {
		patterns, err := compileKeywords(keywords)
		if err != nil {
			return nil, fmt.Errorf("compile sentiment %q lexicon: %w", category, err)
		}
		c.sentiment[category] = patterns
	}

	mixed, err := compileKeywords(lex.MixedConnectors)
	if err != nil {
		return nil, fmt.Errorf("compile mixed connectors: %w", err)
	}
	c.mixed = mixed

	for category, keywords := range lex.Themes {
		patterns, err := compileKeywords(keywords)
		if err != nil {
			return nil, fmt.Errorf("compile theme %q lexicon: %w", category, err)
		}
		c.themes[category] = patterns
	}

	return c, nil
}

// Classify returns the sentiment and theme labels for one mention text.
// It fails with domain.ErrInvalidInput when the text is empty or blank;
// the classifier never guesses on missing content.
func (c *Classifier) Classify(text string) (domain.SentimentCategory, domain.ThemeCategory, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", domain.WrapError(domain.ErrInvalidInput, "classify mention", errors.New("empty mention text"))
	}
	return c.classifySentiment(text), c.classifyTheme(text), nil
}

func (c *Classifier) classifySentiment(text string) domain.SentimentCategory {
	counts := make(map[domain.SentimentCategory]int, len(c.sentiment))
	for category, patterns := range c.sentiment {
		counts[category] = countMatches(patterns, text)
	}

	// A mention carrying both polarities, or a contrast connector next to
	// a polar keyword, is mixed rather than one-sided. Any anger hit takes
	// precedence over the mixed overlay.
	positive := counts[domain.SentimentPositive]
	negative := counts[domain.SentimentNegative]
	if counts[domain.SentimentAnger] == 0 {
		if (positive > 0 && negative > 0) ||
			(anyMatch(c.mixed, text) && (positive > 0 || negative > 0)) {
			return domain.SentimentMixed
		}
	}

	best := domain.SentimentNeutral
	bestCount := 0
	for _, category := range domain.SentimentPriority {
		if counts[category] > bestCount {
			best = category
			bestCount = counts[category]
		}
	}
	return best
}

func (c *Classifier) classifyTheme(text string) domain.ThemeCategory {
	best := domain.ThemeOther
	bestCount := 0
	for _, category := range domain.ThemePriority {
		if count := countMatches(c.themes[category], text); count > bestCount {
			best = category
			bestCount = count
		}
	}
	return best
}

// compileKeywords builds one case-insensitive word-boundary matcher per
// keyword or phrase.
func compileKeywords(keywords []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(strings.ToLower(keyword))
		if keyword == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

// countMatches counts how many distinct keywords of a category occur in
// text. A keyword repeated in the text still counts once, matching how the
// hit counts feed the tie-break.
func countMatches(patterns []*regexp.Regexp, text string) int {
	count := 0
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			count++
		}
	}
	return count
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
