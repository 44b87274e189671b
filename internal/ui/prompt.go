package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("input cancelled")

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompt asks for a line of text, pre-filled with def.
// Without a terminal it returns def unchanged.
func Prompt(label, def string) (string, error) {
	if !IsInteractive() {
		return def, nil
	}

	final, err := tea.NewProgram(newInputModel(label, def)).Run()
	if err != nil {
		return "", fmt.Errorf("error running prompt: %w", err)
	}

	result := final.(inputModel)
	if result.quit {
		return "", ErrCancelled
	}
	return result.value, nil
}

// Confirm asks a yes/no question. Without a terminal it returns def.
func Confirm(question string, def bool) (bool, error) {
	if !IsInteractive() {
		return def, nil
	}

	final, err := tea.NewProgram(confirmModel{question: question, value: def}).Run()
	if err != nil {
		return false, fmt.Errorf("error running prompt: %w", err)
	}

	result := final.(confirmModel)
	if result.quit {
		return false, ErrCancelled
	}
	return result.value, nil
}

type inputModel struct {
	label     string
	textInput textinput.Model
	value     string
	quit      bool
}

func newInputModel(label, def string) inputModel {
	ti := textinput.New()
	ti.SetValue(def)
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60
	return inputModel{label: label, textInput: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.textInput.Value())
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	s := StyleTitle.Render(m.label) + "\n"
	s += m.textInput.View() + "\n"
	s += StyleSubtle.Render("Enter to confirm • Esc to cancel") + "\n"
	return s
}

type confirmModel struct {
	question string
	value    bool
	quit     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quit = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch strings.ToLower(key.String()) {
		case "y":
			m.value = true
			return m, tea.Quit
		case "n":
			m.value = false
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	hint := "[y/N]"
	if m.value {
		hint = "[Y/n]"
	}
	return StyleTitle.Render(m.question) + " " + StyleSubtle.Render(hint) + "\n"
}
