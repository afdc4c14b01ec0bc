// Package testutil provides test helper utilities for generator tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// ReadFile returns the content of a file inside dir, failing the test if it is missing.
func ReadFile(t *testing.T, dir, relPath string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, relPath))
	if err != nil {
		t.Fatalf("reading %s: %v", relPath, err)
	}
	return string(data)
}

// GoProject returns file contents for a minimal Go project.
func GoProject() map[string]string {
	return map[string]string{
		"go.mod":  "module example.com/test\n\ngo 1.25\n",
		"main.go": "package main\n\nfunc main() {}\n",
	}
}

// GoProjectWithGitignore returns a Go project that already ignores some paths.
func GoProjectWithGitignore() map[string]string {
	files := GoProject()
	files[".gitignore"] = "bin/\nreports/\n"
	return files
}

// ScaffoldedProject returns a project that already has a suite config.
func ScaffoldedProject() map[string]string {
	files := GoProject()
	files["playwright.yaml"] = "playwrightConfig:\n  timeout: 1000\n"
	return files
}

// EmptyProject returns an empty directory with no files.
func EmptyProject() map[string]string {
	return map[string]string{}
}

// TraceName returns a trace archive name for test at ts.
func TraceName(test string, ts time.Time) string {
	return test + "-" + ts.UTC().Format("2006-01-02T15:04:05") + "trace.zip"
}

// TraceFiles returns empty trace archives for the given timestamps,
// keyed by their path under traces/.
func TraceFiles(test string, stamps ...time.Time) map[string]string {
	files := make(map[string]string, len(stamps))
	for _, ts := range stamps {
		files[filepath.Join("traces", TraceName(test, ts))] = ""
	}
	return files
}
