package world

import "errors"

var (
	// ErrConfiguration is returned by StartSuite when no browser engine is configured.
	ErrConfiguration = errors.New("no browser is configured")

	// ErrNoContext is returned when a page is requested before a browsing context exists.
	ErrNoContext = errors.New("no browser context is defined")

	// ErrNoActivePage is returned by page access outside an active scenario.
	ErrNoActivePage = errors.New("no page is defined")

	// ErrStepTimeout fails a step that ran longer than the configured timeout.
	ErrStepTimeout = errors.New("step timed out")

	// ErrSuiteNotStarted is returned by scenario hooks when the suite never launched a browser.
	ErrSuiteNotStarted = errors.New("suite not started")
)
