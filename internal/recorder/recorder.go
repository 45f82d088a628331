// Package recorder optionally persists analysis history for later review.
package recorder

import (
	"time"

	"github.com/mas6446/ai-adjutant-system/internal/model"
	"github.com/mas6446/ai-adjutant-system/internal/strategy"
)

// AnalysisRun holds everything produced by one analyze action.
type AnalysisRun struct {
	At         time.Time
	MacroScore int
	Indicators []model.MacroIndicator
	Items      []strategy.BatchItem
}

// Recorder persists analysis runs.
type Recorder interface {
	RecordRun(run *AnalysisRun) error
	Close() error
}
