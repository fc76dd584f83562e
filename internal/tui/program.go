package tui

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/video-downloader/internal/config"
	"github.com/handiism/video-downloader/internal/download"
	vhttp "github.com/handiism/video-downloader/internal/http"
	ioutils "github.com/handiism/video-downloader/internal/io"
)

// Sink forwards orchestrator output into a running program as messages.
// It implements download.StatusSink, download.ProgressSink and
// download.Trigger. Messages sent before the program is attached are dropped.
type Sink struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program that receives messages.
func (s *Sink) Attach(p *tea.Program) {
	s.program.Store(p)
}

func (s *Sink) send(msg tea.Msg) {
	if p := s.program.Load(); p != nil {
		p.Send(msg)
	}
}

func (s *Sink) SetStatus(message string, level download.ProgressLevel) {
	s.send(StatusMsg{Message: message, Level: level})
}

func (s *Sink) SetProgress(percent float64, label string) {
	s.send(ProgressMsg{Percent: percent, Label: label})
}

func (s *Sink) HideProgress() {
	s.send(HideProgressMsg{})
}

func (s *Sink) SetEnabled(enabled bool) {
	s.send(TriggerMsg{Enabled: enabled})
}

// OnEvent forwards diagnostic events.
func (s *Sink) OnEvent(event download.ProgressEvent) {
	s.send(EventMsg{Event: event})
}

// Run starts the TUI application.
func Run(settings *config.Settings, verbose bool) error {
	client, err := vhttp.NewClient(settings)
	if err != nil {
		return err
	}

	saver := ioutils.NewFileSaver(client, settings.DownloadsPath)
	sink := &Sink{}

	orch, err := download.NewOrchestrator(settings, download.Collaborators{
		Poster:    client,
		Saver:     saver,
		TempStore: ioutils.NewTempDir(settings.DownloadsPath),
		Status:    sink,
		Progress:  sink,
		Trigger:   sink,
	}, download.Options{
		OnEvent:   sink.OnEvent,
		AfterSave: download.DefaultHooks(settings, client),
	})
	if err != nil {
		return fmt.Errorf("create orchestrator: %w", err)
	}
	defer orch.Close()
	saver.OnProgress = orch.DownloadProgress

	p := tea.NewProgram(NewModel(settings, orch.Submit, verbose), tea.WithAltScreen())
	sink.Attach(p)
	_, err = p.Run()
	return err
}
