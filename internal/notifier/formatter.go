package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockAnalyzer/internal/model"
)

// FormatRunSummary formats a batch summary into a Telegram HTML message.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Stock Price Analyzer</b> | %s\n\n", s.StartedAt.Format("2006-01-02 15:04")))
	if s.Request.SMAWindow > 0 {
		b.WriteString(fmt.Sprintf("SMA window: %d\n", s.Request.SMAWindow))
	} else {
		b.WriteString("SMA window: disabled\n")
	}
	b.WriteString(fmt.Sprintf("Symbols: %d ok, %d failed\n\n", s.Succeeded(), s.Failed()))

	for _, r := range s.Results {
		switch r.Status {
		case model.StatusOK:
			b.WriteString(fmt.Sprintf("✅ %s: %d rows\n", html.EscapeString(r.Symbol), r.Rows))
		case model.StatusNotFound:
			b.WriteString(fmt.Sprintf("❔ %s: no data found\n", html.EscapeString(r.Symbol)))
		default:
			msg := string(r.Status)
			if r.Err != nil {
				msg = r.Err.Error()
			}
			b.WriteString(fmt.Sprintf("❌ %s (%s): %s\n", html.EscapeString(r.Symbol), r.Stage, html.EscapeString(msg)))
		}
	}

	if d := s.FinishedAt.Sub(s.StartedAt); d > 0 {
		b.WriteString(fmt.Sprintf("\nTook %s", d.Round(100*time.Millisecond)))
	}
	return b.String()
}
