package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/berth-dev/godog-playwright/internal/tui"
)

func (g *Generator) printPrologue() {
	fmt.Fprintln(g.out, tui.WarningStyle.Render(fmt.Sprintf(
		"Getting started with writing %s tests with %s and %s:",
		tui.BoldStyle.Render("end-to-end"),
		tui.BoldStyle.Render("godog"),
		tui.BoldStyle.Render("Playwright"),
	)))
	fmt.Fprintf(g.out, "Initializing project in '%s'\n", g.relative(g.rootDir))
}

// suggestion is a command listed in the epilogue.
type suggestion struct {
	command string
	help    string
}

func (g *Generator) suggestions() []suggestion {
	tc := g.toolchain
	return []suggestion{
		{tc.RunTest(""), "Runs the end-to-end tests."},
		{tc.RunTest("-godog.tags=@smoke"), "Runs only the scenarios tagged @smoke."},
		{tc.RunTest("-run 'TestFeatures/Opening_the_home_page'"), "Runs a single scenario."},
		{tc.Run("test-debug"), "Runs the tests in debug mode."},
		{tc.Run("report"), "Writes a cucumber JSON report to reports/."},
		{tc.Exec(playwrightTool, "codegen"), "Auto generate tests with Codegen."},
	}
}

func (g *Generator) printEpilogue() {
	fmt.Fprintln(g.out, tui.SuccessStyle.Render("✔ Success!")+" "+
		tui.BoldStyle.Render("Created a godog Playwright test project at "+g.rootDir))

	var b strings.Builder
	b.WriteString("\nInside that directory, you can run several commands:\n")
	for _, s := range g.suggestions() {
		fmt.Fprintf(&b, "\n  %s\n    %s\n", tui.CommandStyle.Render(s.command), s.help)
	}

	pathToNavigate := g.relative(g.rootDir)
	b.WriteString("\nWe suggest that you begin by typing:\n\n")
	if pathToNavigate != "." {
		fmt.Fprintf(&b, "  %s\n", tui.CommandStyle.Render("cd "+pathToNavigate))
	}
	fmt.Fprintf(&b, "  %s\n", tui.CommandStyle.Render(g.toolchain.RunTest("")))

	config := "playwright.yaml"
	if pathToNavigate != "." {
		config = filepath.Join(pathToNavigate, config)
	}
	b.WriteString("\nAnd check out the following files:\n")
	fmt.Fprintf(&b, "  - .%c%s - Playwright suite configuration\n", filepath.Separator, config)
	b.WriteString("\nVisit https://playwright.dev/docs/intro for more information. ✨\n")
	b.WriteString("\nHappy hacking! 🎭\n")

	fmt.Fprint(g.out, b.String())
}
