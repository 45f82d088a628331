package macro

import "github.com/mas6446/ai-adjutant-system/internal/model"

// Aggregate combines indicator verdicts into the composite 0-100 score:
// floor(100 * positives / total). Every indicator carries equal weight.
// Unknown indicators take the configured default for their name; an
// unconfigured unknown falls back to positive, the deliberate fail-open
// policy that keeps the score computable under partial outages.
func Aggregate(indicators []model.MacroIndicator, defaults map[string]bool) int {
	if len(indicators) == 0 {
		return 0
	}
	positives := 0
	for _, ind := range indicators {
		verdict := ind.Verdict
		if !ind.Known {
			verdict = true
			if d, ok := defaults[ind.Name]; ok {
				verdict = d
			}
		}
		if verdict {
			positives++
		}
	}
	return 100 * positives / len(indicators)
}
