package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

type countingRunner struct {
	calls     atomic.Int32
	active    atomic.Int32
	maxActive atomic.Int32
	last      atomic.Value
	delay     time.Duration
}

func (c *countingRunner) Run(_ context.Context, req model.RunRequest) *model.RunSummary {
	c.calls.Add(1)
	n := c.active.Add(1)
	defer c.active.Add(-1)
	for {
		m := c.maxActive.Load()
		if n <= m || c.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	c.last.Store(req)
	time.Sleep(c.delay)
	return &model.RunSummary{Request: req}
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRegisterBatch(t *testing.T) {
	s := NewScheduler(context.Background(), &countingRunner{}, quiet())
	req := model.RunRequest{Symbols: []string{"AAPL"}, SMAWindow: 5}

	require.NoError(t, s.RegisterBatch("0 30 17 * * 1-5", req))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.RegisterBatch("every day", req))
	assert.Error(t, s.RegisterBatch("0 30 17 * *", req), "five fields need the seconds field")
	assert.Error(t, s.RegisterBatch("0 30 17 * * *", model.RunRequest{}))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestRunNow(t *testing.T) {
	r := &countingRunner{}
	s := NewScheduler(context.Background(), r, quiet())
	req := model.RunRequest{Symbols: []string{"TSLA"}, SMAWindow: 10}

	sum := s.RunNow(req)
	assert.Equal(t, req, sum.Request)
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestScheduledBatchesDoNotOverlap(t *testing.T) {
	r := &countingRunner{delay: 2500 * time.Millisecond}
	s := NewScheduler(context.Background(), r, quiet())
	require.NoError(t, s.RegisterBatch("* * * * * *", model.RunRequest{Symbols: []string{"AAPL"}}))

	s.Start()
	time.Sleep(2200 * time.Millisecond)
	s.Stop()

	assert.EqualValues(t, 1, r.calls.Load())
	assert.Equal(t, model.RunRequest{Symbols: []string{"AAPL"}}, r.last.Load())
}

func TestTriggeredBatchDoesNotOverlapCron(t *testing.T) {
	r := &countingRunner{delay: 2500 * time.Millisecond}
	s := NewScheduler(context.Background(), r, quiet())
	req := model.RunRequest{Symbols: []string{"AAPL"}}
	require.NoError(t, s.RegisterBatch("* * * * * *", req))

	s.Start()
	s.Trigger(req)
	time.Sleep(1500 * time.Millisecond)
	s.Stop()

	assert.EqualValues(t, 1, r.calls.Load())
	assert.EqualValues(t, 1, r.maxActive.Load())
	assert.Zero(t, r.active.Load(), "Stop waits for the triggered batch")
}

func TestRunNow_SkipsWhileBusy(t *testing.T) {
	r := &countingRunner{delay: 300 * time.Millisecond}
	s := NewScheduler(context.Background(), r, quiet())
	req := model.RunRequest{Symbols: []string{"TSLA"}}

	s.Trigger(req)
	require.Eventually(t, func() bool { return r.active.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Nil(t, s.RunNow(req))
	s.Stop()

	assert.EqualValues(t, 1, r.calls.Load())
	assert.NotNil(t, s.RunNow(req), "lock is released after the batch")
}
