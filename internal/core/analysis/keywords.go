package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

const (
	// DefaultTopK bounds the keyword table length.
	DefaultTopK = 10
	// DefaultMinTokenLength drops very short tokens before counting.
	DefaultMinTokenLength = 3
	// DefaultPhraseMinCount is the minimum corpus frequency for a two-word
	// phrase to enter the ranking.
	DefaultPhraseMinCount = 2
)

// KeywordOptions tunes corpus keyword extraction. Zero values fall back to
// the documented defaults; a nil Stopwords slice falls back to the default
// stopword list.
type KeywordOptions struct {
	TopK           int
	MinTokenLength int
	PhraseMinCount int
	Stopwords      []string
}

func (o KeywordOptions) normalize() KeywordOptions {
	out := o
	if out.TopK <= 0 {
		out.TopK = DefaultTopK
	}
	if out.MinTokenLength <= 0 {
		out.MinTokenLength = DefaultMinTokenLength
	}
	if out.PhraseMinCount <= 0 {
		out.PhraseMinCount = DefaultPhraseMinCount
	}
	if out.Stopwords == nil {
		out.Stopwords = defaultStopwords()
	}
	return out
}

// TopKeywords ranks the recurring terms and two-word phrases across the
// whole mention corpus. Tokens are lowercased, split on non-letter
// boundaries, and dropped when shorter than the minimum length or present
// in the stopword set. Phrases count adjacent surviving tokens within one
// mention and must reach PhraseMinCount occurrences.
//
// The result is sorted by descending count, then alphabetically, and
// truncated to TopK entries. The function is pure: rerunning it over an
// unchanged corpus yields an identical table.
func TopKeywords(mentions []domain.Mention, opts KeywordOptions) []domain.KeywordCount {
	opts = opts.normalize()

	stop := make(map[string]struct{}, len(opts.Stopwords))
	for _, word := range opts.Stopwords {
		stop[strings.ToLower(word)] = struct{}{}
	}

	termCounts := make(map[string]int)
	phraseCounts := make(map[string]int)
	for _, mention := range mentions {
		tokens := filterTokens(splitLetterTokensLower(mention.Text), opts.MinTokenLength, stop)
		for _, token := range tokens {
			termCounts[token]++
		}
		for i := 0; i+1 < len(tokens); i++ {
			phraseCounts[tokens[i]+" "+tokens[i+1]]++
		}
	}

	combined := make([]domain.KeywordCount, 0, len(termCounts)+len(phraseCounts))
	for term, count := range termCounts {
		combined = append(combined, domain.KeywordCount{Term: term, Count: count})
	}
	for phrase, count := range phraseCounts {
		if count >= opts.PhraseMinCount {
			combined = append(combined, domain.KeywordCount{Term: phrase, Count: count})
		}
	}

	sort.Slice(combined, func(i, j int) bool {
		if combined[i].Count != combined[j].Count {
			return combined[i].Count > combined[j].Count
		}
		return combined[i].Term < combined[j].Term
	})

	if len(combined) > opts.TopK {
		combined = combined[:opts.TopK]
	}
	return combined
}

func filterTokens(tokens []string, minLength int, stop map[string]struct{}) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) < minLength {
			continue
		}
		if _, skip := stop[token]; skip {
			continue
		}
		out = append(out, token)
	}
	return out
}

// splitLetterTokensLower lowercases s and splits it into purely alphabetic
// tokens. Digits and punctuation are boundaries, so URLs and figures never
// become keyword candidates.
func splitLetterTokensLower(s string) []string {
	if s == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
