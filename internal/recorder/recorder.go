package recorder

import "StockAnalyzer/internal/model"

// Recorder persists batch run history for later analysis.
type Recorder interface {
	RecordRun(summary *model.RunSummary) error
	Close() error
}
