package calculator

import "github.com/mas6446/ai-adjutant-system/internal/model"

// CalculateCDP derives the CDP pivot set from a single bar, usually the
// latest completed daily bar.
func CalculateCDP(bar model.PriceBar) model.PivotLevels {
	pivot := (bar.High + bar.Low + 2*bar.Close) / 4
	spread := bar.High - bar.Low
	return model.PivotLevels{
		Pivot:       pivot,
		ResistHigh:  pivot + spread,
		ResistNear:  2*pivot - bar.Low,
		SupportNear: 2*pivot - bar.High,
		SupportLow:  pivot - spread,
	}
}
