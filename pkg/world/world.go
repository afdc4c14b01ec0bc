package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/berth-dev/godog-playwright/internal/log"
	"github.com/berth-dev/godog-playwright/pkg/config"
)

// TracesDir is where trace archives are written, relative to the working directory.
const TracesDir = "traces"

// Trace archive names are <test>-<timestamp>trace.zip, where the timestamp is
// ISO-8601 in UTC without fractional seconds.
const (
	TraceTimestampLayout = "2006-01-02T15:04:05"
	TraceSuffix          = "trace.zip"
)

// Status is the outcome of a step or scenario.
type Status string

const (
	StatusPassed    Status = "passed"
	StatusSkipped   Status = "skipped"
	StatusPending   Status = "pending"
	StatusUndefined Status = "undefined"
	StatusAmbiguous Status = "ambiguous"
	StatusFailed    Status = "failed"
)

// severity orders statuses from best to worst.
var severity = map[Status]int{
	StatusPassed:    1,
	StatusSkipped:   2,
	StatusPending:   3,
	StatusUndefined: 4,
	StatusAmbiguous: 5,
	StatusFailed:    6,
}

// Worse returns whichever of a and b is the worse outcome.
func Worse(a, b Status) Status {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// StepResult is the aggregated outcome reported when a scenario ends.
type StepResult struct {
	Status Status
}

// Scenario identifies the scenario a World is running.
type Scenario struct {
	ID   string
	Name string
	URI  string
}

// State is the lifecycle position of a World.
type State int

const (
	StateIdle State = iota
	StateActive
	StateFinalizing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFinalizing:
		return "finalizing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Attachment is a piece of diagnostic data bound to the scenario result.
type Attachment struct {
	Body      []byte
	MediaType string
	FileName  string
}

// World is the per-scenario session: one browsing context and one page.
// A World belongs to the goroutine running its scenario; its lifecycle
// methods and State are not safe for concurrent use. Attach and
// TakeAttachments may be called from any goroutine.
type World struct {
	cfg       *config.RunConfig
	logger    *charmlog.Logger
	tracesDir string
	now       func() time.Time

	mu          sync.Mutex
	attachments []Attachment

	state     State
	scenario  Scenario
	testName  string
	startTime time.Time
	context   playwright.BrowserContext
	page      playwright.Page
}

// Option customizes a World.
type Option func(*World)

// WithConfig sets the run configuration. Defaults to config.Resolve.
func WithConfig(cfg *config.RunConfig) Option {
	return func(w *World) { w.cfg = cfg }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *charmlog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithTracesDir overrides TracesDir.
func WithTracesDir(dir string) Option {
	return func(w *World) { w.tracesDir = dir }
}

// WithClock overrides the clock used for the scenario start time.
func WithClock(now func() time.Time) Option {
	return func(w *World) { w.now = now }
}

// New creates an idle World.
func New(opts ...Option) *World {
	w := &World{
		tracesDir: TracesDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.cfg == nil {
		w.cfg = config.Resolve()
	}
	if w.logger == nil {
		w.logger = log.New("world")
	}
	return w
}

var nonWord = regexp.MustCompile(`\W`)

// SanitizeName replaces every non-word character of name with a hyphen.
func SanitizeName(name string) string {
	return nonWord.ReplaceAllString(name, "-")
}

// State returns the lifecycle state.
func (w *World) State() State {
	return w.state
}

// Config returns the configuration the World runs with.
func (w *World) Config() *config.RunConfig {
	return w.cfg
}

// Scenario returns the scenario last started.
func (w *World) Scenario() Scenario {
	return w.scenario
}

// TestName returns the filesystem-safe scenario name.
func (w *World) TestName() string {
	return w.testName
}

// StartTime returns when the scenario started.
func (w *World) StartTime() time.Time {
	return w.startTime
}

// TracePath returns where the trace for the current scenario is written.
func (w *World) TracePath() string {
	name := w.testName + "-" + w.startTime.UTC().Format(TraceTimestampLayout) + TraceSuffix
	return filepath.Join(w.tracesDir, name)
}

// ParseTraceName splits a trace archive name into its test name and start time.
func ParseTraceName(name string) (test string, started time.Time, ok bool) {
	stem, found := strings.CutSuffix(name, TraceSuffix)
	if !found || len(stem) < len(TraceTimestampLayout)+1 {
		return "", time.Time{}, false
	}
	split := len(stem) - len(TraceTimestampLayout)
	if stem[split-1] != '-' {
		return "", time.Time{}, false
	}
	started, err := time.Parse(TraceTimestampLayout, stem[split:])
	if err != nil {
		return "", time.Time{}, false
	}
	return stem[:split-1], started, true
}

// StartScenario opens a browsing context and page on browser for sc and
// starts tracing unless the trace policy is off.
func (w *World) StartScenario(browser playwright.Browser, sc Scenario) error {
	w.startTime = w.now()
	w.scenario = sc
	w.testName = SanitizeName(sc.Name)

	bctx, err := browser.NewContext(contextOptions(w.cfg))
	if err != nil {
		return fmt.Errorf("creating browser context: %w", err)
	}
	w.context = bctx
	w.state = StateActive

	if d := w.cfg.ActionTimeout(); d > 0 {
		bctx.SetDefaultTimeout(float64(d.Milliseconds()))
	}

	if err := w.startTracing(); err != nil {
		return err
	}

	return w.initPage()
}

// BoundActions caps the default timeout of Playwright actions at budget, so
// no single call on the page waits longer than the step may run.
func (w *World) BoundActions(budget time.Duration) {
	if w.context == nil || budget <= 0 {
		return
	}
	d := w.cfg.ActionTimeout()
	if d <= 0 || d > budget {
		d = budget
	}
	w.context.SetDefaultTimeout(float64(d.Milliseconds()))
}

// EndScenario captures diagnostics for result and closes the page and
// context. A nil result is ignored and the session stays open.
func (w *World) EndScenario(result *StepResult) error {
	if result == nil {
		return nil
	}
	w.state = StateFinalizing

	var errs []error
	if err := w.saveScreenshot(result.Status); err != nil {
		errs = append(errs, err)
	}
	if err := w.endTracing(result.Status); err != nil {
		errs = append(errs, err)
	}

	if w.page != nil {
		if err := w.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing page: %w", err))
		}
		w.page = nil
	}
	if w.context != nil {
		if err := w.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser context: %w", err))
		}
		w.context = nil
	}

	w.state = StateClosed
	return errors.Join(errs...)
}

func (w *World) startTracing() error {
	if w.cfg.Use.Trace == config.TraceOff {
		return nil
	}

	err := w.context.Tracing().Start(playwright.TracingStartOptions{
		Title:       playwright.String(w.scenario.Name),
		Screenshots: playwright.Bool(true),
		Snapshots:   playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("starting trace: %w", err)
	}
	return nil
}

func (w *World) endTracing(status Status) error {
	policy := w.cfg.Use.Trace
	if policy == config.TraceOff || (policy == config.TraceRetainOnFailure && status == StatusPassed) {
		return nil
	}
	if w.context == nil {
		return ErrNoContext
	}

	if err := os.MkdirAll(w.tracesDir, 0755); err != nil {
		return fmt.Errorf("creating traces directory: %w", err)
	}

	path := w.TracePath()
	if err := w.context.Tracing().Stop(path); err != nil {
		return fmt.Errorf("stopping trace: %w", err)
	}
	w.logger.Debug("trace written", "path", path)
	return nil
}

func (w *World) saveScreenshot(status Status) error {
	policy := w.cfg.Use.Screenshot
	if policy == config.ScreenshotOff || (policy == config.ScreenshotOnlyOnFailure && status == StatusPassed) {
		return nil
	}

	page, err := w.Page()
	if err != nil {
		return err
	}
	image, err := page.Screenshot()
	if err != nil {
		return fmt.Errorf("taking screenshot: %w", err)
	}
	w.Attach(image, "image/png")
	return nil
}

func (w *World) initPage() error {
	if w.context == nil {
		return ErrNoContext
	}

	page, err := w.context.NewPage()
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	w.page = page

	page.OnConsole(func(msg playwright.ConsoleMessage) {
		if msg.Type() == "log" {
			w.Attach([]byte(msg.Text()), "text/plain")
		}
	})
	w.logger.Debug("page opened", "scenario", w.scenario.Name, "url", page.URL())
	return nil
}

// Attach records data against the scenario result.
func (w *World) Attach(body []byte, mediaType string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attachments = append(w.attachments, Attachment{Body: body, MediaType: mediaType})
}

// TakeAttachments returns the pending attachments and clears them.
func (w *World) TakeAttachments() []Attachment {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.attachments
	w.attachments = nil
	return out
}

func contextOptions(cfg *config.RunConfig) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(cfg.Use.IgnoreHTTPSErrors),
	}
	if vp := cfg.Use.Viewport; vp.Width > 0 && vp.Height > 0 {
		opts.Viewport = &playwright.Size{Width: vp.Width, Height: vp.Height}
	}
	if cfg.Use.Locale != "" {
		opts.Locale = playwright.String(cfg.Use.Locale)
	}
	if cfg.Use.BaseURL != "" {
		opts.BaseURL = playwright.String(cfg.Use.BaseURL)
	}
	return opts
}
