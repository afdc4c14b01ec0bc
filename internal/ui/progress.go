// Package ui provides terminal output components for the generator.
// This file implements the progress lines printed around each setup command.
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/berth-dev/godog-playwright/internal/tui"
)

// StepStatus represents the execution status of a single setup command.
type StepStatus int

const (
	StatusPending StepStatus = iota // Not started yet
	StatusRunning                   // Currently running
	StatusDone                      // Finished successfully
	StatusFailed                    // Exited with an error
)

// Step holds the display state of a single setup command.
type Step struct {
	Name    string
	Command string
	Status  StepStatus
	Elapsed time.Duration

	started time.Time
}

// Progress prints a line when a command starts and another when it ends.
// Commands write to the same terminal in between, so lines are never redrawn.
type Progress struct {
	mu    sync.Mutex
	out   io.Writer
	steps []*Step
	now   func() time.Time
}

// NewProgress creates a Progress writing to out.
func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out, now: time.Now}
}

// Begin registers a step and prints "<name> (<command>)…".
func (p *Progress) Begin(name, command string) *Step {
	p.mu.Lock()
	defer p.mu.Unlock()

	step := &Step{Name: name, Command: command, Status: StatusRunning, started: p.now()}
	p.steps = append(p.steps, step)

	fmt.Fprintf(p.out, "%s (%s)…\n", tui.BoldStyle.Render(name), tui.CommandStyle.Render(command))
	return step
}

// End marks step as done or failed depending on err and prints its result.
func (p *Progress) End(step *Step, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step.Elapsed = p.now().Sub(step.started)
	if err != nil {
		step.Status = StatusFailed
	} else {
		step.Status = StatusDone
	}
	fmt.Fprintln(p.out, formatStepLine(step))
}

// Steps returns the registered steps in order.
func (p *Progress) Steps() []*Step {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Step(nil), p.steps...)
}

// Summary prints how many steps completed and how many failed.
func (p *Progress) Summary() {
	p.mu.Lock()
	defer p.mu.Unlock()

	completed := 0
	failed := 0
	for _, s := range p.steps {
		switch s.Status {
		case StatusDone:
			completed++
		case StatusFailed:
			failed++
		}
	}

	fmt.Fprintf(p.out, "Done: %d/%d completed", completed, len(p.steps))
	if failed > 0 {
		fmt.Fprintf(p.out, ", %d failed", failed)
	}
	fmt.Fprintln(p.out)
}

// formatStepLine formats a finished step with a status icon.
func formatStepLine(step *Step) string {
	return fmt.Sprintf("  %s %s %s", statusIcon(step.Status), step.Name, statusDetail(step))
}

// statusIcon returns the status icon for a step.
func statusIcon(status StepStatus) string {
	switch status {
	case StatusDone:
		return tui.SuccessStyle.Render("✓")
	case StatusRunning:
		return tui.WarningStyle.Render("▸")
	case StatusFailed:
		return tui.ErrorStyle.Render("✗")
	default:
		return tui.DimStyle.Render("○")
	}
}

// statusDetail returns the right-side detail text for a step.
func statusDetail(step *Step) string {
	switch step.Status {
	case StatusDone:
		return tui.DimStyle.Render("[" + formatDuration(step.Elapsed) + "]")
	case StatusFailed:
		return tui.ErrorStyle.Render("[failed after " + formatDuration(step.Elapsed) + "]")
	default:
		return ""
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
