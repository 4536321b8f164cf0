package model

import "time"

// RunRequest is the batch input. SMAWindow == 0 disables the SMA step for every symbol.
type RunRequest struct {
	Symbols   []string
	SMAWindow int
}

// Status is the final outcome of one symbol in a batch.
type Status string

const (
	StatusOK         Status = "ok"
	StatusNotFound   Status = "not_found"
	StatusFetchError Status = "fetch_error"
	StatusSaveError  Status = "save_error"
	StatusPlotError  Status = "plot_error"
)

// Stage names the pipeline step a result stopped at.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageSMA   Stage = "sma"
	StageSave  Stage = "save"
	StagePlot  Stage = "plot"
	StageDone  Stage = "done"
)

// SymbolResult records what happened to one symbol.
type SymbolResult struct {
	Symbol    string
	Status    Status
	Stage     Stage
	Rows      int
	DataPath  string
	ChartPath string
	Err       error
}

// OK reports whether the symbol went through the whole pipeline.
func (r SymbolResult) OK() bool { return r.Status == StatusOK }

// RunSummary is the outcome of one batch.
type RunSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Request    RunRequest
	Results    []SymbolResult
}

func (s *RunSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

func (s *RunSummary) Failed() int { return len(s.Results) - s.Succeeded() }
