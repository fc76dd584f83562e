package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/video-downloader/internal/download"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// console prints orchestrator output to a terminal. It is the status and
// progress sink of the CLI; progress is redrawn in place on one line.
type console struct {
	mu      sync.Mutex
	w       io.Writer
	bar     progress.Model
	verbose bool

	// progressLine is set while the cursor sits at the end of a progress line.
	progressLine bool
}

func newConsole(w io.Writer, verbose bool) *console {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &console{w: w, bar: bar, verbose: verbose}
}

func (c *console) SetStatus(message string, level download.ProgressLevel) {
	if message == "" {
		return
	}
	c.println(level, message)
}

func (c *console) SetProgress(percent float64, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "\r%s %s", c.bar.ViewAs(percent/100), dimStyle.Render(label))
	c.progressLine = true
}

func (c *console) HideProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endProgressLine()
}

// OnEvent prints diagnostic events; verbose ones only in verbose mode.
func (c *console) OnEvent(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !c.verbose {
		return
	}
	c.println(event.Level, event.Message)
}

func (c *console) println(level download.ProgressLevel, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endProgressLine()

	prefix, style := "  ", dimStyle
	switch level {
	case download.LevelError:
		prefix, style = "✗ ", errorStyle
	case download.LevelWarning:
		prefix, style = "! ", warningStyle
	case download.LevelSuccess:
		prefix, style = "✓ ", successStyle
	case download.LevelInfo:
		prefix, style = "› ", infoStyle
	}
	fmt.Fprintln(c.w, style.Render(prefix+message))
}

func (c *console) endProgressLine() {
	if c.progressLine {
		fmt.Fprintln(c.w)
		c.progressLine = false
	}
}
