package world

import (
	"context"
	"fmt"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/cucumber/godog"

	"github.com/berth-dev/godog-playwright/internal/log"
)

type worldKey struct{}

// NewContext returns a copy of ctx carrying w.
func NewContext(ctx context.Context, w *World) context.Context {
	return context.WithValue(ctx, worldKey{}, w)
}

// FromContext returns the World of the running scenario, or nil.
func FromContext(ctx context.Context) *World {
	w, _ := ctx.Value(worldKey{}).(*World)
	return w
}

// Runner wires a Suite and per-scenario Worlds into godog hooks.
//
//	runner := world.NewRunner()
//	godog.TestSuite{
//		TestSuiteInitializer: runner.InitializeTestSuite,
//		ScenarioInitializer: func(sc *godog.ScenarioContext) {
//			runner.InitializeScenario(sc)
//			steps.Register(sc)
//		},
//	}.Run()
type Runner struct {
	suiteOpts []SuiteOption
	worldOpts []Option
	logger    *charmlog.Logger

	mu       sync.Mutex
	suite    *Suite
	startErr error
	timeout  time.Duration
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithSuiteOptions passes opts to StartSuite.
func WithSuiteOptions(opts ...SuiteOption) RunnerOption {
	return func(r *Runner) { r.suiteOpts = append(r.suiteOpts, opts...) }
}

// WithWorldOptions passes opts to every World the runner creates.
func WithWorldOptions(opts ...Option) RunnerOption {
	return func(r *Runner) { r.worldOpts = append(r.worldOpts, opts...) }
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: log.New("runner")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetDefaultTimeout sets the step timeout. Zero disables it.
func (r *Runner) SetDefaultTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeout = d
}

// DefaultTimeout returns the step timeout.
func (r *Runner) DefaultTimeout() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timeout
}

// Suite returns the running suite, or nil before BeforeSuite.
func (r *Runner) Suite() *Suite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suite
}

// Start launches the suite. InitializeTestSuite calls it from BeforeSuite.
func (r *Runner) Start() error {
	suite, err := StartSuite(r.SetDefaultTimeout, r.suiteOpts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.suite, r.startErr = suite, err
	return err
}

// Stop ends the suite if it was started.
func (r *Runner) Stop() error {
	r.mu.Lock()
	suite := r.suite
	r.suite = nil
	r.mu.Unlock()

	if suite == nil {
		return nil
	}
	return suite.End()
}

// InitializeTestSuite registers the suite start and end hooks.
func (r *Runner) InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		if err := r.Start(); err != nil {
			r.logger.Error("starting suite", "err", err)
		}
	})
	ctx.AfterSuite(func() {
		if err := r.Stop(); err != nil {
			r.logger.Warn("ending suite", "err", err)
		}
	})
}

// InitializeScenario registers the scenario lifecycle hooks. godog calls the
// scenario initializer once per scenario, so hook state is per scenario.
func (r *Runner) InitializeScenario(sc *godog.ScenarioContext) {
	h := &scenarioHooks{runner: r}
	sc.Before(h.before)
	sc.StepContext().Before(h.beforeStep)
	sc.StepContext().After(h.afterStep)
	sc.After(h.after)
}

type scenarioHooks struct {
	runner  *Runner
	world   *World
	timeout time.Duration
	worst   Status
	steps   int

	stepStart  time.Time
	stepCancel context.CancelFunc
}

func (h *scenarioHooks) before(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	h.runner.mu.Lock()
	suite, startErr, timeout := h.runner.suite, h.runner.startErr, h.runner.timeout
	h.runner.mu.Unlock()

	if startErr != nil {
		return ctx, startErr
	}
	if suite == nil {
		return ctx, ErrSuiteNotStarted
	}

	opts := append([]Option{WithConfig(suite.Config)}, h.runner.worldOpts...)
	h.world = New(opts...)
	h.timeout = timeout

	ctx = NewContext(ctx, h.world)

	return ctx, h.world.StartScenario(suite.Browser, Scenario{
		ID:   sc.Id,
		Name: sc.Name,
		URI:  sc.Uri,
	})
}

// beforeStep gives the step a deadline of one timeout and caps the page's
// action timeout at the same budget.
func (h *scenarioHooks) beforeStep(ctx context.Context, _ *godog.Step) (context.Context, error) {
	h.stepStart = time.Now()
	if h.timeout <= 0 {
		return ctx, nil
	}
	if h.world != nil {
		h.world.BoundActions(h.timeout)
	}
	ctx, h.stepCancel = context.WithTimeout(ctx, h.timeout)
	return ctx, nil
}

// afterStep fails a step that outlived the timeout, even when the step itself
// returned no error.
func (h *scenarioHooks) afterStep(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
	if h.stepCancel != nil {
		h.stepCancel()
		h.stepCancel = nil
		// The next step must not inherit this step's deadline.
		ctx = context.WithoutCancel(ctx)
	}

	var timeoutErr error
	if h.timeout > 0 && err == nil && !h.stepStart.IsZero() {
		if elapsed := time.Since(h.stepStart); elapsed > h.timeout {
			timeoutErr = fmt.Errorf("%w: %q took %s, limit is %s", ErrStepTimeout, st.Text, elapsed.Round(time.Millisecond), h.timeout)
			status = godog.StepFailed
		}
	}
	h.stepStart = time.Time{}

	h.steps++
	h.worst = Worse(h.worst, Status(status.String()))
	return h.flush(ctx), timeoutErr
}

func (h *scenarioHooks) after(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
	if h.stepCancel != nil {
		h.stepCancel()
		h.stepCancel = nil
	}
	if h.world == nil {
		return ctx, nil
	}

	var result *StepResult
	if h.steps > 0 {
		status := h.worst
		if err != nil {
			status = Worse(status, StatusFailed)
		}
		result = &StepResult{Status: status}
	}

	endErr := h.world.EndScenario(result)
	return h.flush(ctx), endErr
}

// flush hands pending attachments to godog's formatters.
func (h *scenarioHooks) flush(ctx context.Context) context.Context {
	if h.world == nil {
		return ctx
	}
	pending := h.world.TakeAttachments()
	if len(pending) == 0 {
		return ctx
	}

	attachments := make([]godog.Attachment, 0, len(pending))
	for _, a := range pending {
		attachments = append(attachments, godog.Attachment{
			Body:      a.Body,
			FileName:  a.FileName,
			MediaType: a.MediaType,
		})
	}
	return godog.Attach(ctx, attachments...)
}
