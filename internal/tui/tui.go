// Package tui provides a Bubble Tea terminal user interface for video-downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/handiism/video-downloader/internal/config"
	"github.com/handiism/video-downloader/internal/download"
	"github.com/handiism/video-downloader/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

const (
	maxLogs    = 10
	maxHistory = 5
)

// SubmitFunc performs one submission. Orchestrator.Submit satisfies it.
type SubmitFunc func(ctx context.Context, rawURL, quality string) (*model.SavedFile, error)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
//
// The status line, progress bar and trigger are driven by the orchestrator
// through messages (see Sink); the model itself only decides when to submit.
type Model struct {
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	submit    SubmitFunc

	quality model.Quality

	status      string
	statusLevel download.ProgressLevel

	showProgress  bool
	percent       float64
	progressLabel string

	enabled bool
	busy    bool

	logs    []LogEntry
	history []model.SavedFile
	verbose bool

	// Submission context, replaced after every cancellation.
	ctx    context.Context
	cancel context.CancelFunc

	width int
}

// NewModel creates a new TUI model submitting through submit.
func NewModel(settings *config.Settings, submit SubmitFunc, verbose bool) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	quality, err := model.ParseQuality(settings.DefaultQuality)
	if err != nil {
		quality = model.Quality720p
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		submit:    submit,
		quality:   quality,
		enabled:   true,
		verbose:   verbose,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// StatusMsg replaces the status line.
	StatusMsg struct {
		Message string
		Level   download.ProgressLevel
	}

	// ProgressMsg shows the progress bar at Percent (0-100).
	ProgressMsg struct {
		Percent float64
		Label   string
	}

	// HideProgressMsg hides the progress bar.
	HideProgressMsg struct{}

	// TriggerMsg enables or disables submission.
	TriggerMsg struct {
		Enabled bool
	}

	// EventMsg carries a diagnostic event from the orchestrator.
	EventMsg struct {
		Event download.ProgressEvent
	}

	// SubmitDoneMsg is sent when a submission returns.
	SubmitDoneMsg struct {
		File *model.SavedFile
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if !m.busy {
				m.cancel()
				return m, tea.Quit
			}
			m.cancel()
			return m, nil

		case "enter":
			if !m.enabled || m.busy {
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.startSubmit(m.textInput.Value(), m.quality.String()), m.spinner.Tick)

		case "tab":
			if !m.busy {
				m.quality = m.quality.Next()
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case StatusMsg:
		m.status = msg.Message
		m.statusLevel = msg.Level

	case ProgressMsg:
		m.showProgress = true
		m.percent = msg.Percent
		m.progressLabel = msg.Label
		cmds = append(cmds, m.progress.SetPercent(msg.Percent/100))

	case HideProgressMsg:
		m.showProgress = false
		m.progressLabel = ""

	case TriggerMsg:
		m.enabled = msg.Enabled

	case EventMsg:
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case SubmitDoneMsg:
		if errors.Is(msg.Err, download.ErrBusy) {
			return m, nil
		}
		m.busy = false
		if m.ctx.Err() != nil {
			m.ctx, m.cancel = context.WithCancel(context.Background())
		}
		if msg.File != nil {
			m.history = append(m.history, *msg.File)
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			m.textInput.SetValue("")
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if !m.busy {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startSubmit runs the submission in the background.
func (m Model) startSubmit(rawURL, quality string) tea.Cmd {
	ctx, submit := m.ctx, m.submit
	return func() tea.Msg {
		file, err := submit(ctx, rawURL, quality)
		return SubmitDoneMsg{File: file, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("▶ Video Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download videos and audio through the conversion service"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Video URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.viewQuality())
	b.WriteString("\n\n")

	if m.status != "" {
		if m.busy {
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
		}
		b.WriteString(levelStyle(m.statusLevel).Render(m.status))
		b.WriteString("\n")
	}

	if m.showProgress {
		b.WriteString(m.progress.View())
		if m.progressLabel != "" {
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(m.progressLabel))
		}
		b.WriteString("\n")
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		b.WriteString(m.viewHistory())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	// Footer
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewQuality() string {
	parts := make([]string, 0, len(model.Qualities()))
	for _, q := range model.Qualities() {
		if q == m.quality {
			parts = append(parts, selectedStyle.Render("["+q.String()+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+q.String()+" "))
		}
	}
	return infoStyle.Render("Quality: ") + strings.Join(parts, " ")
}

func (m Model) viewHistory() string {
	lines := make([]string, 0, len(m.history)+1)
	lines = append(lines, "Recent downloads")
	for _, f := range m.history {
		name := f.Title
		if name == "" {
			name = f.Path
		}
		line := "✓ " + name
		if f.Size > 0 {
			line += " (" + humanize.Bytes(uint64(f.Size)) + ")"
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			prefix = "✗"
		case download.LevelWarning:
			prefix = "!"
		case download.LevelSuccess:
			prefix = "✓"
		case download.LevelInfo:
			prefix = "›"
		}
		b.WriteString(levelStyle(log.Level).Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func levelStyle(level download.ProgressLevel) lipgloss.Style {
	switch level {
	case download.LevelError:
		return errorStyle
	case download.LevelWarning:
		return warningStyle
	case download.LevelSuccess:
		return successStyle
	case download.LevelInfo:
		return infoStyle
	default:
		return dimStyle
	}
}

func (m Model) getHelpText() string {
	if m.busy {
		return "esc: cancel"
	}
	return "enter: download • tab: quality • esc: quit"
}
