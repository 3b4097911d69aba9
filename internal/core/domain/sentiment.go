package domain

import "fmt"

// SentimentCategory is the closed set of sentiment labels a mention can
// receive. The zero value ("") means the mention has not been classified.
type SentimentCategory string

const (
	SentimentAnger        SentimentCategory = "anger"
	SentimentNegative     SentimentCategory = "negative"
	SentimentMixed        SentimentCategory = "mixed"
	SentimentNeutral      SentimentCategory = "neutral"
	SentimentPositive     SentimentCategory = "positive"
	SentimentAppreciation SentimentCategory = "appreciation"
)

// SentimentPriority lists the lexicon-scored categories from most to least
// severe. Ties on keyword-hit count resolve to the earlier entry, so a
// high-risk mention is never downgraded to a milder label on a tie.
// Mixed and neutral are assignment outcomes, not scored categories, and do
// not appear here.
var SentimentPriority = []SentimentCategory{
	SentimentAnger,
	SentimentNegative,
	SentimentPositive,
	SentimentAppreciation,
}

// SeverityWeight returns the sentiment weight used by the Media Impact
// Score: anger -2, negative -1, mixed/neutral 0, positive +1,
// appreciation +2.
func (s SentimentCategory) SeverityWeight() float64 {
	switch s {
	case SentimentAnger:
		return -2
	case SentimentNegative:
		return -1
	case SentimentMixed, SentimentNeutral:
		return 0
	case SentimentPositive:
		return 1
	case SentimentAppreciation:
		return 2
	default:
		return 0
	}
}

func (s SentimentCategory) Valid() bool {
	switch s {
	case SentimentAnger, SentimentNegative, SentimentMixed,
		SentimentNeutral, SentimentPositive, SentimentAppreciation:
		return true
	}
	return false
}

// ParseSentimentCategory maps a stored label back to its typed value.
func ParseSentimentCategory(label string) (SentimentCategory, error) {
	s := SentimentCategory(label)
	if !s.Valid() {
		return "", fmt.Errorf("unknown sentiment category: %q", label)
	}
	return s, nil
}
