// Package templates holds the files written into a new end-to-end project.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/berth-dev/godog-playwright/internal/toolchain"
)

// tmplSuffix marks assets rendered with text/template. Go sources carry it
// too so the toolchain doesn't compile them as part of this module.
const tmplSuffix = ".tmpl"

//go:embed all:assets
var assets embed.FS

// Files lists the project files in the order they are written, using
// forward slashes relative to the project root. The Makefile is written
// separately because it always replaces an existing one.
var Files = []string{
	"playwright.yaml",
	"features/home.feature",
	"e2e/main_test.go",
	"e2e/pages/home.go",
	"e2e/steps/home.go",
	"reports/README.md",
}

// Makefile is the name of the script file patched after the other files.
const Makefile = "Makefile"

// Data is what templates can reference. Toolchain methods such as RunTest
// are callable from templates.
type Data struct {
	Module   string
	Browsers []string
	toolchain.Toolchain
}

// Render returns the content of the project file name, executing its
// template with data when the asset is a template.
func Render(name string, data Data) ([]byte, error) {
	raw, err := fs.ReadFile(assets, path.Join("assets", name))
	if err == nil {
		return raw, nil
	}

	src, tmplErr := fs.ReadFile(assets, path.Join("assets", name+tmplSuffix))
	if tmplErr != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Names returns every asset as a project file name, sorted.
func Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(assets, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, "assets/"), tmplSuffix))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return names, nil
}
