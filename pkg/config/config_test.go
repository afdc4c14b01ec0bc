package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const customConfig = `playwrightConfig:
  timeout: 2000
  expect:
    timeout: 1000
  use:
    headless: true
    viewport:
      width: 1280
      height: 720
    ignoreHTTPSErrors: true
    actionTimeout: 1000
    baseURL: http://localhost:3000
    locale: en-GB
    screenshot: on
    trace: "off"
  projects:
    - name: firefox
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "playwright.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TimeoutDuration() != 8*time.Second {
		t.Errorf("timeout: got %s, want 8s", cfg.TimeoutDuration())
	}
	if cfg.ExpectTimeout() != 5*time.Second {
		t.Errorf("expect timeout: got %s, want 5s", cfg.ExpectTimeout())
	}
	if cfg.ActionTimeout() != 5*time.Second {
		t.Errorf("action timeout: got %s, want 5s", cfg.ActionTimeout())
	}
	if cfg.Use.Viewport != (Viewport{Width: 1920, Height: 1080}) {
		t.Errorf("viewport: got %+v", cfg.Use.Viewport)
	}
	if cfg.Use.Locale != "en-US" {
		t.Errorf("locale: got %q, want en-US", cfg.Use.Locale)
	}
	if !cfg.Use.IgnoreHTTPSErrors {
		t.Error("TLS errors should be ignored by default")
	}
	if cfg.Use.Screenshot != ScreenshotOnlyOnFailure {
		t.Errorf("screenshot: got %q", cfg.Use.Screenshot)
	}
	if cfg.Use.Trace != TraceRetainOnFailure {
		t.Errorf("trace: got %q", cfg.Use.Trace)
	}
	if len(cfg.Projects) != 1 || cfg.Projects[0].Name != "chromium" {
		t.Errorf("projects: got %+v", cfg.Projects)
	}
}

func TestLoader_FallsBackToDefault(t *testing.T) {
	loader := NewLoader(FileProvider(filepath.Join(t.TempDir(), "missing.yaml")))

	for i := 0; i < 3; i++ {
		if got := loader.Resolve(); !reflect.DeepEqual(got, Default()) {
			t.Fatalf("call %d: got %+v, want default", i, got)
		}
	}
}

func TestLoader_LoadsFileOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, customConfig)
	loader := NewLoader(FileProvider(path))

	first := loader.Resolve()
	if first.Timeout != 2000 || first.Use.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected config: %+v", first)
	}
	if first.Projects[0].Name != "firefox" {
		t.Errorf("project: got %q, want firefox", first.Projects[0].Name)
	}

	// Later edits to the file are not observed.
	writeConfig(t, dir, "playwrightConfig:\n  timeout: 1\n")
	if second := loader.Resolve(); second != first {
		t.Errorf("Resolve re-read the file: got %+v", second)
	}
}

func TestLoader_ResetRereads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, customConfig)
	loader := NewLoader(FileProvider(path))
	loader.Resolve()

	writeConfig(t, dir, "playwrightConfig:\n  timeout: 1\n")
	loader.Reset()

	if got := loader.Resolve(); got.Timeout != 1 {
		t.Errorf("timeout after reset: got %d, want 1", got.Timeout)
	}
}

func TestLoader_FailureIsNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playwright.yaml")
	loader := NewLoader(FileProvider(path))

	if got := loader.Resolve(); !reflect.DeepEqual(got, Default()) {
		t.Fatalf("expected default before the file exists, got %+v", got)
	}

	writeConfig(t, dir, customConfig)
	if got := loader.Resolve(); got.Timeout != 2000 {
		t.Errorf("timeout: got %d, want 2000", got.Timeout)
	}
}

func TestFileProvider_Shape(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing key", "config:\n  timeout: 10\n", ErrMissingConfig},
		{"empty document", "", ErrMissingConfig},
		{"bad trace policy", "playwrightConfig:\n  use:\n    trace: sometimes\n", nil},
		{"malformed yaml", "playwrightConfig: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := FileProvider(path)()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}

			if got := NewLoader(FileProvider(path)).Resolve(); !reflect.DeepEqual(got, Default()) {
				t.Errorf("loader should fall back to default, got %+v", got)
			}
		})
	}
}

func TestEnvProvider(t *testing.T) {
	path := writeConfig(t, t.TempDir(), customConfig)
	t.Setenv(PathEnv, path)

	cfg, err := EnvProvider()()
	if err != nil {
		t.Fatalf("EnvProvider: %v", err)
	}
	if cfg.Use.Locale != "en-GB" {
		t.Errorf("locale: got %q, want en-GB", cfg.Use.Locale)
	}
}

func TestResolve_ProcessWide(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "does", "not", "exist.yaml"))
	if got := Resolve(); !reflect.DeepEqual(got, Default()) {
		t.Fatalf("expected default, got %+v", got)
	}

	path := writeConfig(t, t.TempDir(), customConfig)
	t.Setenv(PathEnv, path)
	loaded := Resolve()
	if loaded.Timeout != 2000 {
		t.Fatalf("timeout: got %d, want 2000", loaded.Timeout)
	}

	t.Setenv(PathEnv, "")
	if got := Resolve(); got != loaded {
		t.Error("Resolve should keep returning the cached configuration")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Use.Screenshot = ""
	cfg.Use.Trace = TraceOn
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Use.Screenshot = "always"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown screenshot policy")
	}
}
