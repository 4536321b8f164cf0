// Package prompt reads a batch request from an interactive console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"StockAnalyzer/internal/model"
)

const (
	Welcome       = "Welcome to the Stock Price Analyzer!"
	SymbolsPrompt = "Enter stock symbols separated by commas (e.g., AAPL, TSLA): "
	WindowPrompt  = "Enter the SMA window size (e.g., 5, 10, 20): "
	InvalidWindow = "Invalid window size. Skipping SMA calculation."
)

// ParseSymbols splits line on commas, trims and upper-cases each token and
// drops empty ones. Order and duplicates are kept.
func ParseSymbols(line string) []string {
	var out []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ParseWindow accepts a positive integer. Anything else disables SMA.
func ParseWindow(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Prompter asks for the symbols and the window. Reader is shared with the
// chart viewer so buffered input is not lost between them.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
}

func New(in *bufio.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out}
}

// ReadRequest prints the welcome line and both prompts. An invalid window is
// reported and yields SMAWindow 0.
func (p *Prompter) ReadRequest() (model.RunRequest, error) {
	fmt.Fprintln(p.Out, Welcome)

	fmt.Fprint(p.Out, SymbolsPrompt)
	line, err := p.readLine()
	if err != nil {
		return model.RunRequest{}, fmt.Errorf("read symbols: %w", err)
	}
	req := model.RunRequest{Symbols: ParseSymbols(line)}

	fmt.Fprint(p.Out, WindowPrompt)
	text, err := p.readLine()
	if err != nil {
		return model.RunRequest{}, fmt.Errorf("read window: %w", err)
	}
	if n, ok := ParseWindow(text); ok {
		req.SMAWindow = n
	} else {
		fmt.Fprintln(p.Out, InvalidWindow)
	}
	return req, nil
}

// readLine returns the next line without its terminator. A final line without
// a newline is accepted; EOF with nothing read is an error.
func (p *Prompter) readLine() (string, error) {
	line, err := p.In.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
