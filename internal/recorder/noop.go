package recorder

// NoopRecorder discards all records. Used when no database path is configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a no-op recorder.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *AnalysisRun) error { return nil }
func (n *NoopRecorder) Close() error                   { return nil }
