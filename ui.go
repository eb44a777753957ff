package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// printStep prints one progress line for a step of the sequence.
func printStep(format string, a ...any) {
	fmt.Println(stepStyle.Render("==> " + fmt.Sprintf(format, a...)))
}

// printWarning prints a non-fatal warning. The run continues afterwards.
func printWarning(format string, a ...any) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, a...)))
}

// printSuccess prints the final confirmation banner.
func printSuccess(format string, a ...any) {
	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf(format, a...)))
}

// printError prints a single-line diagnostic for an aborting failure.
func printError(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}

// ErrPromptCanceled is returned when the user cancels an interactive prompt.
var ErrPromptCanceled = errors.New("canceled")

// promptModel is a one-line textinput prompt rendered inline, not in the
// alternate screen, so the step log above it stays visible.
type promptModel struct {
	input    textinput.Model
	question string
	done     bool
	canceled bool
}

func newPromptModel(question, placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	return promptModel{input: ti, question: question}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		// Leave the answered question in the scrollback
		return fmt.Sprintf("%s %s\n", promptStyle.Render(m.question), m.input.Value())
	}
	if m.canceled {
		return fmt.Sprintf("%s %s\n", promptStyle.Render(m.question), dimStyle.Render("(canceled)"))
	}
	return fmt.Sprintf("%s %s", promptStyle.Render(m.question), m.input.View())
}

// askInput runs the prompt and returns the trimmed answer.
func askInput(question, placeholder string) (string, error) {
	p := tea.NewProgram(newPromptModel(question, placeholder))

	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	final := result.(promptModel)
	if final.canceled {
		return "", ErrPromptCanceled
	}
	return strings.TrimSpace(final.input.Value()), nil
}
