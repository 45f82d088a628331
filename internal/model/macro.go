package model

import "time"

// MacroIndicator is one macro-level signal used by the score aggregator.
// Known reports whether the underlying fetch/parse succeeded; when false the
// aggregator substitutes the configured default verdict for this indicator.
type MacroIndicator struct {
	Name    string  `json:"name"`   // stable key, e.g. "twd_strong"
	Label   string  `json:"label"`  // display label, e.g. "匯率"
	Raw     float64 `json:"raw"`    // fetched or user-supplied numeric value, 0 when N/A
	Verdict bool    `json:"verdict"`
	Known   bool    `json:"known"`
	Detail  string  `json:"detail"` // short human-readable note, e.g. "綠燈 28分"
	Source  string  `json:"source"` // "yahoo", "fred", "ndc", "twse", "manual"
}

// MacroSnapshot is a full set of indicators plus the composite score,
// as produced by one refresh cycle.
type MacroSnapshot struct {
	Indicators []MacroIndicator `json:"indicators"`
	Score      int              `json:"score"` // 0-100
	FetchedAt  time.Time        `json:"fetched_at"`
}
