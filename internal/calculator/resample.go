package calculator

import "github.com/mas6446/ai-adjutant-system/internal/model"

// ResampleWeekly aggregates chronological daily bars into weekly bars keyed by
// ISO week: first open, max high, min low, last close. The last (possibly
// partial) week is included, matching how charting tools show the current week.
func ResampleWeekly(daily []model.PriceBar) []model.PriceBar {
	if len(daily) == 0 {
		return nil
	}

	weekly := make([]model.PriceBar, 0, len(daily)/5+1)
	curYear, curWeek := daily[0].Date.ISOWeek()
	cur := daily[0]

	for _, bar := range daily[1:] {
		y, w := bar.Date.ISOWeek()
		if y != curYear || w != curWeek {
			weekly = append(weekly, cur)
			curYear, curWeek = y, w
			cur = bar
			continue
		}
		if bar.High > cur.High {
			cur.High = bar.High
		}
		if bar.Low < cur.Low {
			cur.Low = bar.Low
		}
		cur.Close = bar.Close
		cur.Date = bar.Date
	}
	return append(weekly, cur)
}
