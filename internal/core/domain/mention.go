package domain

import "time"

type BatchStatus string

const (
	BatchReceived   BatchStatus = "received"
	BatchProcessing BatchStatus = "processing"
	BatchReady      BatchStatus = "ready"
	BatchFailed     BatchStatus = "failed"
)

// Mention is one observed media item. The input fields are immutable once
// ingested; Sentiment, Theme and Brands are derived fields written exactly
// once by the analysis pipeline and never overwritten afterwards.
type Mention struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Reach       int64     `json:"reach"`
	Engagement  int64     `json:"engagement"`

	Sentiment SentimentCategory `json:"sentiment,omitempty"`
	Theme     ThemeCategory     `json:"theme,omitempty"`
	Brands    []string          `json:"brands,omitempty"`
}

// Classified reports whether the derived labels have been written.
func (m Mention) Classified() bool {
	return m.Sentiment != "" && m.Theme != ""
}

// MentionBatch tracks one ingested mention collection through the
// received -> processing -> ready | failed lifecycle.
type MentionBatch struct {
	ID           string      `json:"id"`
	Status       BatchStatus `json:"status"`
	Error        string      `json:"error,omitempty"`
	MentionCount int         `json:"mention_count"`
	SkippedCount int         `json:"skipped_count"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
