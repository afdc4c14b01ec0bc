package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinePrompter asks questions on plain line-oriented streams, for CI logs
// and piped input.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints question with a (Y/n) hint and reads answers until one is
// recognised. An empty line or end of input selects initial.
func (p *LinePrompter) Confirm(question string, initial bool) (bool, error) {
	hint := "(y/N)"
	if initial {
		hint = "(Y/n)"
	}

	for {
		fmt.Fprintf(p.out, "? %s %s ", question, hint)

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		eof := errors.Is(err, io.EOF)
		if eof {
			fmt.Fprintln(p.out)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			return initial, nil
		}

		if eof {
			return initial, nil
		}
		fmt.Fprintln(p.out, WarningStyle.Render("Please answer y or n."))
	}
}
