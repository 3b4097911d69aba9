// Package analysis implements the reputation analysis engine: lexicon-based
// sentiment and theme classification, brand extraction, trending-keyword
// extraction and KPI aggregation over in-memory mention collections.
//
// Everything in this package is a pure computation over immutable input.
// No component performs I/O, and all of them are safe to share across
// concurrent pipeline runs once constructed.
package analysis

import "github.com/flashnarrative/brandpulse/internal/core/domain"

// Lexicon maps the closed sentiment and theme categories to their trigger
// keyword lists, plus the contrast connectors that flag a mixed mention and
// the stopwords dropped during keyword extraction. A zero field falls back
// to the corresponding DefaultLexicon list.
type Lexicon struct {
	Sentiment map[domain.SentimentCategory][]string `yaml:"sentiment"`
	// MixedConnectors are contrast words ("but", "however") that, combined
	// with a polar keyword hit, mark a mention as mixed.
	MixedConnectors []string                          `yaml:"mixed_connectors"`
	Themes          map[domain.ThemeCategory][]string `yaml:"themes"`
	Stopwords       []string                          `yaml:"stopwords"`
}

// DefaultLexicon returns the built-in keyword lists. Callers may override
// any list through the analysis profile; the defaults are tuned for
// banking-sector PR monitoring.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Sentiment: map[domain.SentimentCategory][]string{
			domain.SentimentPositive: {
				"good", "great", "excellent", "positive", "love", "awesome",
				"best", "happy", "like", "amazing", "superb", "fantastic",
				"recommend", "perfect", "honoured", "lauds", "empower",
				"support", "champions", "wins", "upgrades", "successful",
				"oversubscribed", "confidence",
			},
			domain.SentimentNegative: {
				"bad", "poor", "terrible", "negative", "hate", "awful",
				"worst", "sad", "dislike", "broken", "fail", "issue",
				"problem", "disappointed", "avoid", "scam", "fraud",
				"downtime", "glitches", "fume", "arrest", "rift", "vanished",
				"failed", "undersubscribed", "loss",
			},
			domain.SentimentAnger: {
				"angry", "furious", "rage", "mad", "outrage", "pissed",
				"fuming", "livid",
			},
			domain.SentimentAppreciation: {
				"thank", "appreciate", "grateful", "thanks", "kudos",
				"cheers", "props", "helpful", "legacy", "honoring",
			},
		},
		MixedConnectors: []string{
			"but", "however", "although", "yet", "still", "despite",
		},
		Themes: map[domain.ThemeCategory][]string{
			domain.ThemeCSRESG: {
				"csr", "esg", "donation", "community", "foundation",
				"initiative", "sustainability",
			},
			domain.ThemeCorporate: {
				"ceo", "gmd", "profit", "results", "acquisition",
				"corporate", "raise", "capital", "bond", "earnings",
			},
			domain.ThemeProductService: {
				"app", "loan", "card", "customer service", "downtime",
				"glitch", "e-channel", "transfer",
			},
			domain.ThemeLegalRisk: {
				"fraud", "cbn", "efcc", "fine", "court", "scam",
				"allegation", "rift", "lawsuit",
			},
		},
		Stopwords: defaultStopwords(),
	}
}

// merged returns lex with any zero field replaced by the default list.
func (lex Lexicon) merged() Lexicon {
	def := DefaultLexicon()
	out := lex
	if len(out.Sentiment) == 0 {
		out.Sentiment = def.Sentiment
	}
	if len(out.MixedConnectors) == 0 {
		out.MixedConnectors = def.MixedConnectors
	}
	if len(out.Themes) == 0 {
		out.Themes = def.Themes
	}
	if len(out.Stopwords) == 0 {
		out.Stopwords = def.Stopwords
	}
	return out
}

// defaultStopwords is a compact English stopword list extended with the web
// and finance noise terms that dominate media mention text.
func defaultStopwords() []string {
	return []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "aren", "as", "at", "be", "because",
		"been", "before", "being", "below", "between", "both", "but", "by",
		"can", "cannot", "could", "did", "do", "does", "doing", "down",
		"during", "each", "few", "for", "from", "further", "had", "has",
		"have", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "i", "if", "in", "into", "is", "isn", "it",
		"its", "itself", "just", "me", "more", "most", "my", "myself", "no",
		"nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "ourselves", "out", "over", "own", "same",
		"she", "should", "so", "some", "such", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
		// web/media noise
		"com", "www", "http", "https", "co", "uk", "amp", "rt", "via",
		// generic banking terms that would otherwise top every ranking
		"bank", "plc", "ltd", "group", "holdings",
	}
}
