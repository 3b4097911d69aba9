package domain

// OverallSubject is the KPISet subject for metrics computed over the whole
// mention collection rather than a single brand.
const OverallSubject = "overall"

// KPISet is a record of named numeric metrics computed over a mention
// collection, attributed to one brand or to the overall collection.
//
// ShareOfVoice and MessagePenetration are fractions in [0,1].
// MediaImpactScore is an unbounded composite: a severity-weighted average
// of reach, bounded only by the weight scale (-2..+2) and possibly
// negative.
type KPISet struct {
	Subject            string  `json:"subject"`
	MentionCount       int     `json:"mention_count"`
	ShareOfVoice       float64 `json:"share_of_voice"`
	MessagePenetration float64 `json:"message_penetration"`
	MediaImpactScore   float64 `json:"media_impact_score"`
	Reach              int64   `json:"reach"`
	Engagement         int64   `json:"engagement"`
}

// KeywordCount is one entry of the trending-keyword table.
type KeywordCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// SkippedMention records a mention the pipeline excluded from aggregate
// computations, with the reason it was skipped.
type SkippedMention struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// AnalysisResult bundles everything one pipeline run produces: the
// classified mentions, the keyword table, one KPISet per tracked brand plus
// the overall set, and the mentions that were skipped.
type AnalysisResult struct {
	Mentions []Mention        `json:"mentions"`
	Keywords []KeywordCount   `json:"keywords"`
	KPIs     []KPISet         `json:"kpis"`
	Skipped  []SkippedMention `json:"skipped"`
}

// KPIFor returns the KPI set attributed to subject.
func (r *AnalysisResult) KPIFor(subject string) (KPISet, bool) {
	for _, set := range r.KPIs {
		if set.Subject == subject {
			return set, true
		}
	}
	return KPISet{}, false
}

// Incident is a PR-crisis alert raised against an external ticketing
// system when a batch crosses the configured negative-sentiment threshold.
type Incident struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency"`
	Impact      string `json:"impact"`
}
