package recorder

import "time"

// AnalysisSnapshot is one completed analyze call, persisted for history.
type AnalysisSnapshot struct {
	Timestamp     time.Time
	Symbol        string
	Price         float64
	ChangePercent float64
	RSI           float64
	MACD          float64
	Score         float64
	Label         string
	Source        string
	DemoMode      bool
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecentSnapshots(symbol string, limit int) ([]AnalysisSnapshot, error)
	TrimBefore(t time.Time) (int64, error)
	Close() error
}
