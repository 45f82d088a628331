package strategy

import "github.com/mas6446/ai-adjutant-system/internal/model"

// Snapshot carries everything the signal ladder judges: the macro score, the
// latest technical readings, and the computed entry zone.
type Snapshot struct {
	MacroScore int
	WeeklyHist float64
	K, D       float64
	PrevK      float64
	PrevD      float64
	Price      float64
	EntryLow   float64
	EntryHigh  float64
}

// GoldenCross reports whether %K crossed above %D on the latest bar.
func (s Snapshot) GoldenCross() bool {
	return s.PrevK < s.PrevD && s.K > s.D
}

func (s Snapshot) inEntryZone() bool {
	return s.Price >= s.EntryLow && s.Price <= s.EntryHigh
}

// Rule pairs a predicate with the signal it produces. The ladder is evaluated
// top-down and the first match wins; ties break positionally, not numerically.
type Rule struct {
	Name    string
	Applies func(Snapshot) bool
	Outcome model.Signal
}

// Ladder returns the ordered decision rules. The macro veto sits first so a
// weak macro regime suppresses any technical setup, however strong.
func Ladder(vetoCutoff int) []Rule {
	return []Rule{
		{
			Name:    "macro veto",
			Applies: func(s Snapshot) bool { return s.MacroScore < vetoCutoff },
			Outcome: model.SignalStayAway,
		},
		{
			Name: "oversold golden cross",
			Applies: func(s Snapshot) bool {
				return s.WeeklyHist > 0 && s.K < 30 && s.GoldenCross()
			},
			Outcome: model.SignalFire,
		},
		{
			Name: "price in entry zone",
			Applies: func(s Snapshot) bool {
				return s.WeeklyHist > 0 && s.inEntryZone()
			},
			Outcome: model.SignalAmbush,
		},
		{
			Name: "oversold watch",
			Applies: func(s Snapshot) bool {
				return s.WeeklyHist > 0 && s.K < 35
			},
			Outcome: model.SignalPrepare,
		},
		{
			Name:    "overbought",
			Applies: func(s Snapshot) bool { return s.K > 80 },
			Outcome: model.SignalTakeProfit,
		},
	}
}

// Classify walks the ladder and returns the first matching outcome, falling
// through to the default wait signal.
func Classify(rules []Rule, s Snapshot) model.Signal {
	for _, r := range rules {
		if r.Applies(s) {
			return r.Outcome
		}
	}
	return model.SignalWait
}
