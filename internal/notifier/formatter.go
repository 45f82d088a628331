package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/mas6446/ai-adjutant-system/internal/model"
	"github.com/mas6446/ai-adjutant-system/internal/strategy"
)

var signalEmoji = map[model.Signal]string{
	model.SignalStayAway:   "🔴",
	model.SignalFire:       "🟢",
	model.SignalAmbush:     "🌀",
	model.SignalPrepare:    "🟠",
	model.SignalTakeProfit: "🔵",
	model.SignalWait:       "⚪",
}

// FormatBatchReport formats an analysis batch into a Telegram message.
func FormatBatchReport(macroScore int, items []strategy.BatchItem) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🛡️ <b>戰術分析快報</b> | %s\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("宏觀戰略總分: <b>%d/100</b>\n\n", macroScore))

	for _, item := range items {
		if item.Err != "" {
			b.WriteString(fmt.Sprintf("❌ %s: %s\n\n", item.Ticker, item.Err))
			continue
		}
		r := item.Result
		name := r.Name
		if name == "" {
			name = r.Ticker
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> $%.2f (%+.2f%%) — %s\n",
			signalEmoji[r.Signal], name, r.Price, r.ChangePct, r.Signal))
		b.WriteString(fmt.Sprintf("   進場區間: %.2f ~ %.2f\n", r.EntryLow, r.EntryHigh))
		b.WriteString(fmt.Sprintf("   停損防守: %.2f\n", r.StopLoss))
		b.WriteString(fmt.Sprintf("   獲利目標: %.2f / %.2f\n\n", r.Target1, r.Target2))
	}

	return b.String()
}

// HasFireSignal reports whether any instrument in the batch produced the
// strongest buy signal. These push even when the caller did not ask for a
// notification.
func HasFireSignal(items []strategy.BatchItem) bool {
	for _, item := range items {
		if item.Result != nil && item.Result.Signal == model.SignalFire {
			return true
		}
	}
	return false
}
