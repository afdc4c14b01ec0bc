package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no question answered with the arrow keys or y/n.
type ConfirmModel struct {
	question string
	yes      bool
	done     bool
	aborted  bool
	keys     KeyMap
}

// NewConfirmModel creates a ConfirmModel with initial preselected.
func NewConfirmModel(question string, initial bool) ConfirmModel {
	return ConfirmModel{
		question: question,
		yes:      initial,
		keys:     DefaultKeyMap,
	}
}

// Value is the selected answer.
func (m ConfirmModel) Value() bool { return m.yes }

// Done reports whether the question was answered.
func (m ConfirmModel) Done() bool { return m.done }

// Aborted reports whether the user cancelled the prompt.
func (m ConfirmModel) Aborted() bool { return m.aborted }

// Init returns the initial command for the prompt.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.CtrlC):
		m.aborted = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Left):
		m.yes = true
	case key.Matches(keyMsg, m.keys.Right):
		m.yes = false
	case key.Matches(keyMsg, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(keyMsg, m.keys.Yes):
		m.yes = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.yes = false
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Confirm):
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the question, the two answers and, once answered, the choice.
func (m ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(QuestionStyle.Render("? " + m.question))

	if m.done {
		answer := "No"
		if m.yes {
			answer = "Yes"
		}
		if m.aborted {
			answer = ErrorStyle.Render("aborted")
		} else {
			answer = SuccessStyle.Render(answer)
		}
		b.WriteString(" " + answer + "\n")
		return b.String()
	}

	b.WriteString("\n")

	yesStyle, noStyle := SelectedStyle, UnselectedStyle
	if !m.yes {
		yesStyle, noStyle = UnselectedStyle, SelectedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "  ", noStyle.Render("No"))
	b.WriteString(buttons)
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("← →: Select · y/n: Answer · Enter: Confirm · Ctrl+C: Abort"))
	b.WriteString("\n")

	return b.String()
}
