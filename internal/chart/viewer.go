package chart

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Viewer presents a rendered chart to the user.
type Viewer interface {
	Show(ctx context.Context, path string) error
}

// NoopViewer leaves the chart on disk. Used in headless and scheduled runs.
type NoopViewer struct{}

func (NoopViewer) Show(context.Context, string) error { return nil }

// CommandViewer opens the chart with an external program and blocks until
// the user presses Enter on In.
type CommandViewer struct {
	Command string // empty picks the platform opener
	In      *bufio.Reader
	Out     io.Writer
}

func (v CommandViewer) Show(ctx context.Context, path string) error {
	name, args := v.command()
	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, name, err)
	}
	if v.In == nil {
		return nil
	}
	if v.Out != nil {
		fmt.Fprint(v.Out, "Press Enter to continue...")
	}
	if _, err := v.In.ReadString('\n'); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (v CommandViewer) command() (string, []string) {
	if v.Command != "" {
		return v.Command, nil
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
