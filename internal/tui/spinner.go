package tui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned by RunSpinner when the user interrupts it.
var ErrCancelled = errors.New("cancelled")

type doneMsg struct {
	result string
	err    error
}

type spinnerModel struct {
	spinner   spinner.Model
	title     string
	done      bool
	cancelled bool
	result    string
	err       error
}

func newSpinnerModel(title string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return spinnerModel{spinner: sp, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			m.cancelled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// RunSpinner shows a spinner on out while fn runs. Interrupting the spinner
// cancels the context passed to fn and returns ErrCancelled.
func RunSpinner(ctx context.Context, out io.Writer, title string, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(title), tea.WithOutput(out), tea.WithContext(ctx))
	go func() {
		result, err := fn(ctx)
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return "", err
	}
	m, _ := final.(spinnerModel)
	if m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.result, m.err
}
