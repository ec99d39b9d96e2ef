package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"oledmon/internal/display"
	"oledmon/internal/errors"
	"oledmon/internal/facts"
	"oledmon/internal/layout"
	"oledmon/internal/logger"
	"oledmon/internal/monitor"
)

var (
	previewFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
	previewFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// previewSpinnerFrames matches the glyph set used across the CLI.
var previewSpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// frameMsg carries one rendered frame into the TUI.
type frameMsg string

// streamClosedMsg signals that the driver shut down.
type streamClosedMsg struct{}

// previewModel shows a spinner until the first frame arrives, then
// mirrors the panel contents as half-block text.
type previewModel struct {
	spinner spinner.Model
	frames  <-chan *layout.Frame
	frame   string
}

func newPreviewModel(frames <-chan *layout.Frame) previewModel {
	sp := spinner.New()
	sp.Spinner = previewSpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return previewModel{spinner: sp, frames: frames}
}

// waitForFrame blocks on the frame stream and forwards the next frame.
func waitForFrame(frames <-chan *layout.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return streamClosedMsg{}
		}
		return frameMsg(display.Blocks(f))
	}
}

func (m previewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForFrame(m.frames))
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = string(msg)
		return m, waitForFrame(m.frames)
	case streamClosedMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		if m.frame == "" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	if m.frame == "" {
		return "\n " + m.spinner.View() + " waiting for the first frame...\n"
	}
	panel := previewFrameStyle.Render(strings.TrimRight(m.frame, "\n"))
	footer := previewFooterStyle.Render("q to quit")
	return panel + "\n" + footer + "\n"
}

// previewCommand runs the monitoring pipeline against the terminal
// driver inside a Bubble Tea program.
func previewCommand(configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"Preview needs an interactive terminal",
			"Use 'oledmon run' for headless operation")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := facts.NewSystemProvider(ctx)
	if err != nil {
		return err
	}
	defer provider.Close()

	driver := display.NewTerminal()
	collector := monitor.NewCollector(provider, cfg.Services, logger.Noop())
	engine := layout.NewEngine(cfg.Panel.Width, cfg.Panel.Height)
	loop := monitor.NewLoop(collector, engine, driver, cfg.Interval, logger.Noop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(ctx)
	}()

	p := tea.NewProgram(newPreviewModel(driver.Frames()), tea.WithAltScreen())
	_, runErr := p.Run()

	// Stop the loop before closing the driver so no push races the close.
	cancel()
	<-done
	driver.Close()

	return runErr
}
