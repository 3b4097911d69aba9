package analysis

import (
	"reflect"
	"testing"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

func mentionsFromTexts(texts ...string) []domain.Mention {
	mentions := make([]domain.Mention, len(texts))
	for i, text := range texts {
		mentions[i] = domain.Mention{ID: string(rune('a' + i)), Text: text}
	}
	return mentions
}

func TestTopKeywordsRanking(t *testing.T) {
	mentions := mentionsFromTexts(
		"Loan approval delays frustrate loan applicants",
		"Loan officers blame the approval backlog",
		"Branch queues grow while approval times slip",
	)

	got := TopKeywords(mentions, KeywordOptions{TopK: 3})
	want := []domain.KeywordCount{
		{Term: "approval", Count: 3},
		{Term: "loan", Count: 3},
		{Term: "applicants", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
}

func TestTopKeywordsDropsStopwordsAndShortTokens(t *testing.T) {
	mentions := mentionsFromTexts("it is an ok day at the fx desk desk")

	got := TopKeywords(mentions, KeywordOptions{TopK: 10})
	want := []domain.KeywordCount{
		{Term: "desk", Count: 2},
		{Term: "day", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
}

func TestTopKeywordsCountsRecurringPhrases(t *testing.T) {
	mentions := mentionsFromTexts(
		"customer service queues again",
		"endless customer service complaints",
	)

	got := TopKeywords(mentions, KeywordOptions{TopK: 10})

	foundPhrase := false
	for _, kw := range got {
		if kw.Term == "customer service" {
			foundPhrase = true
			if kw.Count != 2 {
				t.Fatalf("phrase count = %d, want 2", kw.Count)
			}
		}
		if kw.Term == "service queues" {
			t.Fatalf("one-off phrase %q should be below the phrase frequency floor", kw.Term)
		}
	}
	if !foundPhrase {
		t.Fatalf("expected phrase \"customer service\" in %v", got)
	}
}

func TestTopKeywordsIgnoresDigitsAndURLs(t *testing.T) {
	mentions := mentionsFromTexts("visit https://example.com/offer2024 rates rates rates")

	got := TopKeywords(mentions, KeywordOptions{TopK: 2})
	if len(got) == 0 || got[0].Term != "rates" || got[0].Count != 3 {
		t.Fatalf("TopKeywords() = %v, want rates x3 first", got)
	}
	for _, kw := range got {
		if kw.Term == "com" || kw.Term == "https" {
			t.Fatalf("web noise token %q leaked into the table", kw.Term)
		}
	}
}

func TestTopKeywordsIdempotent(t *testing.T) {
	mentions := mentionsFromTexts(
		"Outage anger spreads as the outage persists",
		"Regulator reviews outage reports",
		"Anger over fees grows during the outage",
	)

	first := TopKeywords(mentions, KeywordOptions{TopK: 5})
	second := TopKeywords(mentions, KeywordOptions{TopK: 5})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("TopKeywords() not idempotent: %v vs %v", first, second)
	}
}

func TestTopKeywordsTieBreaksAlphabetically(t *testing.T) {
	mentions := mentionsFromTexts("zebra apple zebra apple")

	got := TopKeywords(mentions, KeywordOptions{TopK: 2})
	want := []domain.KeywordCount{
		{Term: "apple", Count: 2},
		{Term: "zebra", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
}
