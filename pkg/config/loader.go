package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/berth-dev/godog-playwright/internal/log"
)

const (
	// PathEnv overrides the configuration file location.
	PathEnv = "CONFIG_PATH"

	// DefaultPath is read when PathEnv is unset, relative to the working directory.
	DefaultPath = "playwright.yaml"
)

// ErrMissingConfig is returned when a file parses but has no playwrightConfig key.
var ErrMissingConfig = errors.New("no playwrightConfig key")

// Provider produces a configuration or fails. Loaders fall back to Default on failure.
type Provider func() (*RunConfig, error)

// fileFormat is the document shape; the configuration lives under one key.
type fileFormat struct {
	PlaywrightConfig *RunConfig `yaml:"playwrightConfig"`
}

// FileProvider reads the YAML file at path.
func FileProvider(path string) Provider {
	return func() (*RunConfig, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}

		var doc fileFormat
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if doc.PlaywrightConfig == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingConfig)
		}
		if err := doc.PlaywrightConfig.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return doc.PlaywrightConfig, nil
	}
}

// EnvProvider reads the file named by PathEnv, or DefaultPath.
// The variable is looked up on every call.
func EnvProvider() Provider {
	return func() (*RunConfig, error) {
		path := os.Getenv(PathEnv)
		if path == "" {
			path = DefaultPath
		}
		return FileProvider(path)()
	}
}

// Loader memoizes the first configuration its provider yields.
type Loader struct {
	mu       sync.Mutex
	provider Provider
	cfg      *RunConfig
}

// NewLoader creates a Loader backed by p.
func NewLoader(p Provider) *Loader {
	return &Loader{provider: p}
}

// Resolve returns the cached configuration, asking the provider if nothing
// has been loaded yet. A failed load yields Default and is not cached, so a
// later call may still pick up a configuration file.
// The returned value is shared and must not be modified.
func (l *Loader) Resolve() *RunConfig {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg != nil {
		return l.cfg
	}

	cfg, err := l.provider()
	if err != nil || cfg == nil {
		log.Default().Debug("using default configuration", "err", err)
		return Default()
	}

	l.cfg = cfg
	return l.cfg
}

// Reset forgets the cached configuration. Intended for test isolation.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = nil
}

var process = NewLoader(EnvProvider())

// Resolve returns the process-wide configuration.
func Resolve() *RunConfig {
	return process.Resolve()
}

// Reset clears the process-wide configuration.
func Reset() {
	process.Reset()
}
