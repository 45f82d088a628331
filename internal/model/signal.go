package model

// Signal is the discrete trading verdict for one instrument.
type Signal string

const (
	SignalStayAway   Signal = "STAY_AWAY"   // macro veto, regardless of technicals
	SignalFire       Signal = "FIRE"        // strongest buy: oversold golden cross in a bullish regime
	SignalAmbush     Signal = "AMBUSH"      // price inside the computed entry zone
	SignalPrepare    Signal = "PREPARE"     // watch: oversold but no crossover yet
	SignalTakeProfit Signal = "TAKE_PROFIT" // overbought exit
	SignalWait       Signal = "WAIT"        // default, no action
)

// Color returns the display color the dashboard uses for this signal.
func (s Signal) Color() string {
	switch s {
	case SignalStayAway:
		return "red"
	case SignalFire:
		return "green"
	case SignalAmbush:
		return "cyan"
	case SignalPrepare:
		return "orange"
	case SignalTakeProfit:
		return "blue"
	default:
		return "gray"
	}
}

// TacticalResult is the full per-instrument output of one analysis pass.
type TacticalResult struct {
	Ticker     string      `json:"ticker"`
	Name       string      `json:"name,omitempty"`
	Price      float64     `json:"price"`
	ChangePct  float64     `json:"change_pct"`
	Signal     Signal      `json:"signal"`
	Color      string      `json:"color"`
	EntryLow   float64     `json:"entry_low"`
	EntryHigh  float64     `json:"entry_high"`
	StopLoss   float64     `json:"stop_loss"`
	Target1    float64     `json:"target1"`
	Target2    float64     `json:"target2"`
	K          float64     `json:"k"`
	D          float64     `json:"d"`
	WeeklyHist float64     `json:"weekly_hist"`
	ATR        float64     `json:"atr"`
	Pivots     PivotLevels `json:"pivots"`
}
