// Package generator scaffolds an end-to-end test project that runs godog
// features against Playwright browsers.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/mod/modfile"

	"github.com/berth-dev/godog-playwright/internal/log"
	"github.com/berth-dev/godog-playwright/internal/toolchain"
	"github.com/berth-dev/godog-playwright/internal/tui"
	"github.com/berth-dev/godog-playwright/internal/ui"
	"github.com/berth-dev/godog-playwright/templates"
)

// TestOptionsEnv holds JSON encoded Answers that replace the prompts.
const TestOptionsEnv = "TEST_OPTIONS"

// Modules added to the generated project.
var (
	deps = []string{
		"github.com/cucumber/godog",
		"github.com/playwright-community/playwright-go",
		"github.com/berth-dev/godog-playwright",
	}
	toolDeps = []string{
		"github.com/playwright-community/playwright-go/cmd/playwright",
	}
)

// playwrightTool is the name `go tool` knows the Playwright CLI by.
const playwrightTool = "playwright"

// DefaultBrowsers are the projects written to playwright.yaml when no
// browser is requested.
var DefaultBrowsers = []string{"chromium", "firefox", "webkit"}

// ErrInvalidTestOptions is returned when TEST_OPTIONS is not valid JSON.
var ErrInvalidTestOptions = errors.New("invalid " + TestOptionsEnv)

// Options are the command line flags.
type Options struct {
	// Browsers limits the download to these browsers and lists them as
	// projects in playwright.yaml.
	Browsers []string
	// NoBrowsers skips the browser download in quiet mode.
	NoBrowsers bool
	// InstallDeps installs the operating system dependencies in quiet mode.
	InstallDeps bool
	// Quiet never prompts.
	Quiet bool
	// Module is the module path used when the project has no go.mod yet.
	Module string
}

// Answers are the choices made at the prompts.
type Answers struct {
	InstallPlaywrightBrowsers     bool `json:"installPlaywrightBrowsers"`
	InstallPlaywrightDependencies bool `json:"installPlaywrightDependencies"`
}

// Command is a shell command run in the project directory.
type Command struct {
	Name    string
	Command string
}

// Changes is everything Run will do to the project.
type Changes struct {
	Files    []string
	Commands []Command
}

// Generator scaffolds a project in rootDir.
type Generator struct {
	rootDir   string
	opts      Options
	toolchain toolchain.Toolchain
	prompter  tui.Prompter
	executor  Executor
	out       io.Writer
	progress  *ui.Progress
	logger    *charmlog.Logger

	goos   string
	cwd    string
	getenv func(string) string
}

// Option customises a Generator.
type Option func(*Generator)

// WithToolchain overrides toolchain detection.
func WithToolchain(tc toolchain.Toolchain) Option {
	return func(g *Generator) { g.toolchain = tc }
}

// WithPrompter sets how questions are asked.
func WithPrompter(p tui.Prompter) Option {
	return func(g *Generator) { g.prompter = p }
}

// WithExecutor sets how commands are run.
func WithExecutor(e Executor) Option {
	return func(g *Generator) { g.executor = e }
}

// WithOutput sets where progress and messages are printed.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *charmlog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates rootDir if needed and returns a Generator for it.
func New(rootDir string, opts Options, options ...Option) (*Generator, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rootDir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", abs, err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = abs
	}

	g := &Generator{
		rootDir: abs,
		opts:    opts,
		out:     os.Stdout,
		logger:  log.New("generator"),
		goos:    runtime.GOOS,
		cwd:     cwd,
		getenv:  os.Getenv,
	}
	for _, o := range options {
		o(g)
	}

	if g.toolchain == nil {
		g.toolchain = toolchain.Detect(abs)
	}
	if g.prompter == nil {
		g.prompter = tui.NewPrompter(os.Stdin, g.out)
	}
	if g.executor == nil {
		g.executor = NewShellExecutor()
	}
	g.progress = ui.NewProgress(g.out)

	g.logger.Debug("generator ready", "root", abs, "toolchain", g.toolchain.Name())
	return g, nil
}

// RootDir is the absolute project directory.
func (g *Generator) RootDir() string { return g.rootDir }

// Run scaffolds the project: it asks questions, runs the setup commands,
// writes the project files and patches .gitignore and the Makefile.
func (g *Generator) Run(ctx context.Context) error {
	g.printPrologue()

	answers, err := g.AskQuestions()
	if err != nil {
		return err
	}

	changes := g.IdentifyChanges(answers)

	if err := g.ExecuteCommands(ctx, changes.Commands); err != nil {
		return err
	}

	if err := g.CreateFiles(changes.Files); err != nil {
		return err
	}

	if err := g.PatchGitIgnore(); err != nil {
		return err
	}

	if err := g.PatchMakefile(); err != nil {
		return err
	}

	g.printEpilogue()
	return nil
}

// AskQuestions returns the answers from TEST_OPTIONS, the quiet flags or
// the prompts, in that order. The operating system dependency question is
// only asked on linux.
func (g *Generator) AskQuestions() (Answers, error) {
	if raw := g.getenv(TestOptionsEnv); raw != "" {
		var answers Answers
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return Answers{}, fmt.Errorf("%w: %v", ErrInvalidTestOptions, err)
		}
		return answers, nil
	}

	if g.opts.Quiet {
		return Answers{
			InstallPlaywrightDependencies: g.opts.InstallDeps,
			InstallPlaywrightBrowsers:     !g.opts.NoBrowsers,
		}, nil
	}

	var answers Answers
	var err error

	answers.InstallPlaywrightBrowsers, err = g.prompter.Confirm(fmt.Sprintf(
		"Install Playwright browsers (can be done manually via '%s')?",
		g.toolchain.Exec(playwrightTool, "install"),
	), true)
	if err != nil {
		return Answers{}, err
	}

	if g.goos == "linux" {
		answers.InstallPlaywrightDependencies, err = g.prompter.Confirm(fmt.Sprintf(
			"Install Playwright operating system dependencies (requires sudo / root - can be done manually via 'sudo %s')?",
			g.toolchain.Exec(playwrightTool, "install-deps"),
		), false)
		if err != nil {
			return Answers{}, err
		}
	}

	return answers, nil
}

// IdentifyChanges lists the commands and files Run applies for answers.
func (g *Generator) IdentifyChanges(answers Answers) Changes {
	var commands []Command

	if !g.hasGoMod() {
		module := g.modulePath()
		commands = append(commands, Command{
			Name:    fmt.Sprintf("Initializing %s project", g.toolchain.Name()),
			Command: g.toolchain.Init(module),
		})
	}

	commands = append(commands, Command{
		Name:    "Installing Dependencies",
		Command: g.toolchain.Install(strings.Join(deps, " ")),
	})

	commands = append(commands, Command{
		Name:    "Installing Tool Dependencies",
		Command: g.toolchain.InstallDev(strings.Join(toolDeps, " ")),
	})

	if answers.InstallPlaywrightBrowsers {
		command := g.toolchain.Exec(playwrightTool, "install")
		if answers.InstallPlaywrightDependencies {
			command += " --with-deps"
		}
		if len(g.opts.Browsers) > 0 {
			command += " " + strings.Join(g.opts.Browsers, " ")
		}
		commands = append(commands, Command{Name: "Downloading browsers", Command: command})
	}

	return Changes{
		Files:    append([]string(nil), templates.Files...),
		Commands: commands,
	}
}

// ExecuteCommands runs commands in order in the project directory and stops
// at the first failure.
func (g *Generator) ExecuteCommands(ctx context.Context, commands []Command) error {
	for _, c := range commands {
		step := g.progress.Begin(c.Name, c.Command)
		err := g.executor.Execute(ctx, g.rootDir, c.Command)
		g.progress.End(step, err)
		if err != nil {
			g.progress.Summary()
			return fmt.Errorf("%s: %w", strings.ToLower(c.Name), err)
		}
	}
	return nil
}

func (g *Generator) hasGoMod() bool {
	_, err := os.Stat(filepath.Join(g.rootDir, "go.mod"))
	return err == nil
}

// modulePath is the module path of the project: the one in go.mod if the
// project has one, else the --module flag, else the directory name.
func (g *Generator) modulePath() string {
	if data, err := os.ReadFile(filepath.Join(g.rootDir, "go.mod")); err == nil {
		if path := modfile.ModulePath(data); path != "" {
			return path
		}
	}
	if g.opts.Module != "" {
		return g.opts.Module
	}
	return filepath.Base(g.rootDir)
}

// browsers are the projects written to playwright.yaml.
func (g *Generator) browsers() []string {
	if len(g.opts.Browsers) > 0 {
		return g.opts.Browsers
	}
	return DefaultBrowsers
}

func (g *Generator) templateData() templates.Data {
	return templates.Data{
		Module:    g.modulePath(),
		Browsers:  g.browsers(),
		Toolchain: g.toolchain,
	}
}

// relative returns path relative to the working directory the generator was
// started from, or "." for that directory itself.
func (g *Generator) relative(path string) string {
	rel, err := filepath.Rel(g.cwd, path)
	if err != nil {
		return path
	}
	return rel
}
