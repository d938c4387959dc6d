package recorder

import "time"

// NoopRecorder discards everything. Used when no database path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(*AnalysisSnapshot) error { return nil }
func (n *NoopRecorder) RecentSnapshots(string, int) ([]AnalysisSnapshot, error) {
	return nil, nil
}
func (n *NoopRecorder) TrimBefore(time.Time) (int64, error) { return 0, nil }
func (n *NoopRecorder) Close() error                        { return nil }
