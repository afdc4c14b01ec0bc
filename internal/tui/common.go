// Package tui implements the interactive prompts using Bubble Tea.
package tui

import (
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user yes/no questions.
type Prompter interface {
	Confirm(question string, initial bool) (bool, error)
}

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewPrompter returns a Bubble Tea prompter when stdout is a TTY and a
// line-based fallback otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if IsTTY() {
		return &teaPrompter{in: in, out: out}
	}
	return NewLinePrompter(in, out)
}

type teaPrompter struct {
	in  io.Reader
	out io.Writer
}

// Confirm runs a ConfirmModel inline, without the alternate screen, so the
// answer stays in the scrollback next to the generator output.
func (p *teaPrompter) Confirm(question string, initial bool) (bool, error) {
	prog := tea.NewProgram(NewConfirmModel(question, initial), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok || m.Aborted() {
		return false, ErrAborted
	}
	return m.Value(), nil
}
