package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Executor runs a shell command line in dir.
type Executor interface {
	Execute(ctx context.Context, dir, command string) error
}

// ShellExecutor runs commands through the platform shell with the
// generator's standard streams attached, so installers can show progress
// and ask for sudo passwords.
type ShellExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellExecutor returns a ShellExecutor bound to the process streams.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute runs command with sh -c, or cmd /C on Windows.
func (e *ShellExecutor) Execute(ctx context.Context, dir, command string) error {
	shell, flag := "sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}

	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %q: %w", command, err)
	}
	return nil
}
