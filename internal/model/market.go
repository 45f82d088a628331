package model

import "time"

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// PivotLevels holds a CDP pivot and its four derived reference levels,
// computed from the latest bar's high/low/close.
type PivotLevels struct {
	Pivot       float64 `json:"pivot"`        // (high + low + 2*close) / 4
	ResistHigh  float64 `json:"resist_high"`  // pivot + (high - low)
	ResistNear  float64 `json:"resist_near"`  // 2*pivot - low
	SupportNear float64 `json:"support_near"` // 2*pivot - high
	SupportLow  float64 `json:"support_low"`  // pivot - (high - low)
}
