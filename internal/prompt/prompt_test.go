package prompt

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"AAPL, aapl , tsla", []string{"AAPL", "AAPL", "TSLA"}},
		{"msft", []string{"MSFT"}},
		{" goog ,, ,amzn,", []string{"GOOG", "AMZN"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSymbols(tt.in), "input %q", tt.in)
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"5", 5, true},
		{" 20 ", 20, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"2.5", 0, false},
	}
	for _, tt := range tests {
		n, ok := ParseWindow(tt.in)
		assert.Equal(t, tt.want, n, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestReadRequest(t *testing.T) {
	var out strings.Builder
	p := New(bufio.NewReader(strings.NewReader("aapl, tsla\n10\n")), &out)

	req, err := p.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "TSLA"}, req.Symbols)
	assert.Equal(t, 10, req.SMAWindow)
	assert.Equal(t, Welcome+"\n"+SymbolsPrompt+WindowPrompt, out.String())
}

func TestReadRequest_InvalidWindow(t *testing.T) {
	var out strings.Builder
	p := New(bufio.NewReader(strings.NewReader("AAPL\r\nabc")), &out)

	req, err := p.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, req.Symbols)
	assert.Zero(t, req.SMAWindow)
	assert.Contains(t, out.String(), InvalidWindow)
}

func TestReadRequest_EOF(t *testing.T) {
	p := New(bufio.NewReader(strings.NewReader("")), io.Discard)
	_, err := p.ReadRequest()
	assert.ErrorIs(t, err, io.EOF)

	p = New(bufio.NewReader(strings.NewReader("AAPL\n")), io.Discard)
	_, err = p.ReadRequest()
	assert.ErrorIs(t, err, io.EOF)
}
