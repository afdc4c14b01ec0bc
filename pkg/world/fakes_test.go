package world

import (
	"errors"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// recorder collects browser calls in order across all fakes of one test.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.list() {
		if c == call {
			n++
		}
	}
	return n
}

// The fakes embed the playwright interfaces and override only what World uses;
// any other method panics on the nil embedded value.

type fakeLauncher struct {
	rec      *recorder
	engines  []string
	headless []bool
	err      error
	stopped  bool
	browser  *fakeBrowser
}

func (l *fakeLauncher) Launch(engine string, opts playwright.BrowserTypeLaunchOptions) (playwright.Browser, error) {
	l.rec.add("launch:" + engine)
	if l.err != nil {
		return nil, l.err
	}
	l.engines = append(l.engines, engine)
	if opts.Headless != nil {
		l.headless = append(l.headless, *opts.Headless)
	}
	if l.browser == nil {
		l.browser = &fakeBrowser{rec: l.rec}
	}
	return l.browser, nil
}

func (l *fakeLauncher) Stop() error {
	l.rec.add("driver.stop")
	l.stopped = true
	return nil
}

type fakeBrowser struct {
	playwright.Browser
	rec        *recorder
	contextErr error
	lastOpts   playwright.BrowserNewContextOptions
	contexts   []*fakeContext
	pageErr    error
	closeErr   error
}

func (b *fakeBrowser) NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error) {
	b.rec.add("context.new")
	if b.contextErr != nil {
		return nil, b.contextErr
	}
	if len(options) > 0 {
		b.lastOpts = options[0]
	}
	ctx := &fakeContext{rec: b.rec, tracing: &fakeTracing{rec: b.rec}, pageErr: b.pageErr}
	b.contexts = append(b.contexts, ctx)
	return ctx, nil
}

func (b *fakeBrowser) Version() string {
	return "fake"
}

func (b *fakeBrowser) Close(options ...playwright.BrowserCloseOptions) error {
	b.rec.add("browser.close")
	return b.closeErr
}

type fakeContext struct {
	playwright.BrowserContext
	rec            *recorder
	tracing        *fakeTracing
	page           *fakePage
	pageErr        error
	defaultTimeout float64
}

func (c *fakeContext) Tracing() playwright.Tracing {
	return c.tracing
}

func (c *fakeContext) SetDefaultTimeout(timeout float64) {
	c.defaultTimeout = timeout
}

func (c *fakeContext) NewPage() (playwright.Page, error) {
	c.rec.add("page.new")
	if c.pageErr != nil {
		return nil, c.pageErr
	}
	c.page = &fakePage{rec: c.rec, screenshot: []byte("png-bytes")}
	return c.page, nil
}

func (c *fakeContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.rec.add("context.close")
	return nil
}

type fakeTracing struct {
	playwright.Tracing
	rec       *recorder
	startOpts playwright.TracingStartOptions
	stopPaths []string
}

func (t *fakeTracing) Start(options ...playwright.TracingStartOptions) error {
	t.rec.add("tracing.start")
	if len(options) > 0 {
		t.startOpts = options[0]
	}
	return nil
}

func (t *fakeTracing) Stop(path ...string) error {
	t.rec.add("tracing.stop")
	t.stopPaths = append(t.stopPaths, path...)
	for _, p := range path {
		if err := os.WriteFile(p, []byte("PK"), 0644); err != nil {
			return err
		}
	}
	return nil
}

type fakePage struct {
	playwright.Page
	rec           *recorder
	screenshot    []byte
	screenshotErr error
	onConsole     func(playwright.ConsoleMessage)
}

func (p *fakePage) OnConsole(fn func(playwright.ConsoleMessage)) {
	p.onConsole = fn
}

func (p *fakePage) URL() string {
	return "about:blank"
}

func (p *fakePage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	p.rec.add("page.screenshot")
	if p.screenshotErr != nil {
		return nil, p.screenshotErr
	}
	return p.screenshot, nil
}

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.rec.add("page.close")
	return nil
}

// emit delivers a console message the way the playwright dispatcher would.
func (p *fakePage) emit(kind, text string) {
	p.onConsole(&fakeConsoleMessage{kind: kind, text: text})
}

type fakeConsoleMessage struct {
	playwright.ConsoleMessage
	kind string
	text string
}

func (m *fakeConsoleMessage) Type() string { return m.kind }
func (m *fakeConsoleMessage) Text() string { return m.text }

var errBoom = errors.New("boom")
