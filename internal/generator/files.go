package generator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/berth-dev/godog-playwright/internal/tui"
	"github.com/berth-dev/godog-playwright/templates"
)

// gitignoreEntries are appended to .gitignore when missing.
var gitignoreEntries = []string{
	"traces/",
	"reports/",
	"!reports/README.md",
}

// CreateFiles renders and writes each project file, asking before
// replacing files that already exist.
func (g *Generator) CreateFiles(files []string) error {
	data := g.templateData()
	for _, name := range files {
		content, err := templates.Render(name, data)
		if err != nil {
			return err
		}
		if err := g.CreateFile(filepath.FromSlash(name), content, false); err != nil {
			return err
		}
	}
	return nil
}

// CreateFile writes data to path, relative to the project directory.
// Unless force is set, an existing file is only replaced after the user
// agrees; in quiet mode it is kept.
func (g *Generator) CreateFile(path string, data []byte, force bool) error {
	absolutePath := filepath.Join(g.rootDir, path)

	if _, err := os.Stat(absolutePath); err == nil && !force {
		override, err := g.confirmOverride(absolutePath)
		if err != nil {
			return err
		}
		if !override {
			g.logger.Debug("keeping existing file", "path", absolutePath)
			return nil
		}
	}

	fmt.Fprintln(g.out, tui.DimStyle.Render(fmt.Sprintf("Writing %s.", g.relative(absolutePath))))

	if err := os.MkdirAll(filepath.Dir(absolutePath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(absolutePath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (g *Generator) confirmOverride(absolutePath string) (bool, error) {
	if g.opts.Quiet {
		fmt.Fprintln(g.out, tui.WarningStyle.Render(fmt.Sprintf("Keeping existing %s.", g.relative(absolutePath))))
		return false, nil
	}
	return g.prompter.Confirm(fmt.Sprintf("%s already exists. Override it?", absolutePath), false)
}

// PatchGitIgnore appends the trace and report entries that .gitignore
// doesn't list yet, creating the file if needed.
func (g *Generator) PatchGitIgnore() error {
	gitignorePath := filepath.Join(g.rootDir, ".gitignore")

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	present := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(existing))
	for scanner.Scan() {
		present[strings.TrimSpace(scanner.Text())] = true
	}

	var missing []string
	for _, entry := range gitignoreEntries {
		if !present[entry] {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(existing, "\n"))
	if existing != "" {
		b.WriteString("\n")
	}
	for _, entry := range missing {
		b.WriteString(entry)
		b.WriteString("\n")
	}

	if err := os.WriteFile(gitignorePath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// PatchMakefile writes the Makefile with the suite's targets, replacing any
// existing one.
func (g *Generator) PatchMakefile() error {
	content, err := templates.Render(templates.Makefile, g.templateData())
	if err != nil {
		return err
	}
	return g.CreateFile(templates.Makefile, content, true)
}
