// Package world connects godog scenarios to playwright browser lifecycles.
//
// One Suite owns the browser for the whole run. Each scenario gets its own
// World, which opens an isolated browsing context and page, records traces
// and screenshots according to the run configuration, and tears everything
// down when the scenario ends.
package world

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/berth-dev/godog-playwright/internal/log"
	"github.com/berth-dev/godog-playwright/pkg/config"
)

// Engine names understood by StartSuite. Anything else launches chromium.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Launcher starts a browser engine process by name.
type Launcher interface {
	Launch(engine string, opts playwright.BrowserTypeLaunchOptions) (playwright.Browser, error)
}

// PlaywrightLauncher launches engines through a lazily started playwright driver.
type PlaywrightLauncher struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	runOpts *playwright.RunOptions
}

// NewPlaywrightLauncher creates a launcher. runOpts may be nil.
func NewPlaywrightLauncher(runOpts *playwright.RunOptions) *PlaywrightLauncher {
	return &PlaywrightLauncher{runOpts: runOpts}
}

// Launch starts the driver on first use and launches the named engine.
func (l *PlaywrightLauncher) Launch(engine string, opts playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pw == nil {
		var runOpts []*playwright.RunOptions
		if l.runOpts != nil {
			runOpts = append(runOpts, l.runOpts)
		}
		pw, err := playwright.Run(runOpts...)
		if err != nil {
			return nil, fmt.Errorf("starting playwright: %w", err)
		}
		l.pw = pw
	}

	var browserType playwright.BrowserType
	switch engine {
	case EngineFirefox:
		browserType = l.pw.Firefox
	case EngineWebKit:
		browserType = l.pw.WebKit
	default:
		browserType = l.pw.Chromium
	}

	browser, err := browserType.Launch(opts)
	if err != nil {
		return nil, fmt.Errorf("launching %s: %w", engine, err)
	}
	return browser, nil
}

// Stop shuts the driver down. Safe to call when nothing was launched.
func (l *PlaywrightLauncher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pw == nil {
		return nil
	}
	err := l.pw.Stop()
	l.pw = nil
	return err
}

// Suite is the running browser engine shared by every scenario of a run.
type Suite struct {
	Browser playwright.Browser
	Config  *config.RunConfig
	Engine  string

	launcher Launcher
	logger   *charmlog.Logger
}

// SuiteOption customizes StartSuite.
type SuiteOption func(*suiteOptions)

type suiteOptions struct {
	launcher Launcher
	cfg      *config.RunConfig
	logger   *charmlog.Logger
}

// WithLauncher replaces the playwright launcher.
func WithLauncher(l Launcher) SuiteOption {
	return func(o *suiteOptions) { o.launcher = l }
}

// WithSuiteConfig uses cfg instead of config.Resolve.
func WithSuiteConfig(cfg *config.RunConfig) SuiteOption {
	return func(o *suiteOptions) { o.cfg = cfg }
}

// WithSuiteLogger sets the logger used by the suite.
func WithSuiteLogger(l *charmlog.Logger) SuiteOption {
	return func(o *suiteOptions) { o.logger = l }
}

// EngineName maps a configured project name to the engine that will be launched.
func EngineName(project string) string {
	switch project {
	case EngineFirefox, EngineWebKit:
		return project
	default:
		return EngineChromium
	}
}

// StartSuite resolves the configuration, applies the overall timeout through
// setTimeout and launches the engine named by the first configured project.
// A zero duration passed to setTimeout means no timeout; it is used when the
// DEBUG environment variable is set.
func StartSuite(setTimeout func(time.Duration), opts ...SuiteOption) (*Suite, error) {
	o := suiteOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		o.cfg = config.Resolve()
	}
	if o.logger == nil {
		o.logger = log.New("suite")
	}
	if o.launcher == nil {
		o.launcher = NewPlaywrightLauncher(nil)
	}

	if setTimeout != nil {
		if os.Getenv(log.DebugEnv) != "" {
			setTimeout(0)
		} else {
			setTimeout(o.cfg.TimeoutDuration())
		}
	}

	if len(o.cfg.Projects) == 0 {
		return nil, ErrConfiguration
	}

	engine := EngineName(o.cfg.Projects[0].Name)
	browser, err := o.launcher.Launch(engine, playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(o.cfg.Use.Headless),
	})
	if err != nil {
		return nil, err
	}
	o.logger.Debug("browser launched", "engine", engine, "version", browser.Version())

	return &Suite{
		Browser:  browser,
		Config:   o.cfg,
		Engine:   engine,
		launcher: o.launcher,
		logger:   o.logger,
	}, nil
}

// End closes the browser and stops the driver if the launcher owns one.
// Call it once per successful StartSuite, after every scenario has ended.
// The driver is stopped even when closing the browser fails.
func (s *Suite) End() error {
	var errs []error
	if err := s.Browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
	}
	if stopper, ok := s.launcher.(interface{ Stop() error }); ok {
		if err := stopper.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping playwright: %w", err))
		}
	}
	s.logger.Debug("browser closed", "engine", s.Engine)
	return errors.Join(errs...)
}
