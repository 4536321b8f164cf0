package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, status int, body string) *YahooFetcher {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	f := NewYahooFetcher(server.URL, "")
	f.Client = server.Client()
	return f
}

func TestNewYahooFetcher_DefaultBaseURL(t *testing.T) {
	f := NewYahooFetcher("", "http://127.0.0.1:3128")
	assert.Equal(t, DefaultYahooBaseURL, f.BaseURL)
	assert.Equal(t, 30*time.Second, f.Client.Timeout)
	assert.Equal(t, "yahoo", f.Name())
}

func TestYahooFetcher_FetchHistory_Success(t *testing.T) {
	t.Parallel()

	// 2025-01-02 14:30 UTC and 2025-01-03 14:30 UTC (NY open), listed out of order,
	// plus a null holiday bar and a late duplicate for 2025-01-03.
	body := `{"chart":{"result":[{
		"meta":{"symbol":"AAPL","gmtoffset":-18000},
		"timestamp":[1735914600,1735828200,1735950000,1735936000],
		"indicators":{"quote":[{
			"open":  [243.0, 248.9, null, 244.0],
			"high":  [244.2, 249.1, null, 245.0],
			"low":   [241.8, 241.8, null, 242.5],
			"close": [243.4, 243.8, null, 243.36],
			"volume":[40000000, 55740700, null, 40244100]
		}]}
	}],"error":null}}`
	f := newTestFetcher(t, http.StatusOK, body)

	bars, err := f.FetchHistory(context.Background(), "AAPL", "6mo")
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 243.8, bars[0].Close)
	assert.Equal(t, int64(55740700), bars[0].Volume)

	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), bars[1].Date)
	assert.Equal(t, 243.36, bars[1].Close, "later duplicate row wins")
}

func TestYahooFetcher_FetchHistory_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 404", http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`},
		{"error code", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"no timestamps", http.StatusOK, `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{}]}}],"error":null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newTestFetcher(t, tt.status, tt.body)
			bars, err := f.FetchHistory(context.Background(), "AAPL", "6mo")
			require.NoError(t, err)
			assert.Empty(t, bars)
		})
	}
}

func TestYahooFetcher_FetchHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"server error", http.StatusInternalServerError, `oops`, "status 500"},
		{"rate limited", http.StatusTooManyRequests, `Too Many Requests`, "status 429"},
		{"bad json", http.StatusOK, `{invalid`, "yahoo decode"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input"}}}`, "Invalid input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newTestFetcher(t, tt.status, tt.body)
			_, err := f.FetchHistory(context.Background(), "AAPL", "6mo")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestYahooFetcher_FetchHistory_ContextCancelled(t *testing.T) {
	t.Parallel()

	f := newTestFetcher(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchHistory(ctx, "AAPL", "6mo")
	assert.Error(t, err)
}
