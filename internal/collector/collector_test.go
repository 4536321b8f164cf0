package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

type stubProvider struct {
	bars  []model.OHLCV
	err   error
	calls int
	rng   string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchHistory(_ context.Context, _ string, rng string) ([]model.OHLCV, error) {
	s.calls++
	s.rng = rng
	return s.bars, s.err
}

func TestCollector_Fetch_Success(t *testing.T) {
	p := &stubProvider{bars: []model.OHLCV{
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Close: 10},
	}}
	series, err := NewCollector(p).Fetch(context.Background(), "MSFT")

	require.NoError(t, err)
	assert.Equal(t, "MSFT", series.Symbol)
	assert.Equal(t, 1, series.Len())
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "6mo", p.rng)
}

func TestCollector_Fetch_NotFound(t *testing.T) {
	p := &stubProvider{}
	series, err := NewCollector(p).Fetch(context.Background(), "ZZZZ")

	assert.Nil(t, series)
	assert.ErrorIs(t, err, ErrNotFound)
	var fe *FetchError
	assert.False(t, errors.As(err, &fe))
}

func TestCollector_Fetch_ProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	p := &stubProvider{err: cause}
	_, err := NewCollector(p).Fetch(context.Background(), "AAPL")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "AAPL", fe.Symbol)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, p.calls, "no retry")
}
