package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berth-dev/godog-playwright/internal/log"
	"github.com/berth-dev/godog-playwright/pkg/config"
)

func startTestSuite(t *testing.T, cfg *config.RunConfig, l *fakeLauncher) (*Suite, time.Duration, error) {
	t.Helper()
	timeout := time.Duration(-1)
	suite, err := StartSuite(func(d time.Duration) { timeout = d },
		WithLauncher(l),
		WithSuiteConfig(cfg),
		WithSuiteLogger(quietLogger()),
	)
	return suite, timeout, err
}

func TestEngineName(t *testing.T) {
	tests := map[string]string{
		"firefox":  EngineFirefox,
		"webkit":   EngineWebKit,
		"chromium": EngineChromium,
		"":         EngineChromium,
		"msedge":   EngineChromium,
	}
	for in, want := range tests {
		assert.Equal(t, want, EngineName(in), "EngineName(%q)", in)
	}
}

func TestStartSuite_LaunchesFirstProject(t *testing.T) {
	t.Setenv(log.DebugEnv, "")
	cfg := config.Default()
	cfg.Projects = []config.Project{{Name: "firefox"}, {Name: "webkit"}}
	l := &fakeLauncher{rec: &recorder{}}

	suite, timeout, err := startTestSuite(t, cfg, l)
	require.NoError(t, err)

	assert.Equal(t, []string{"firefox"}, l.engines)
	assert.Equal(t, []bool{true}, l.headless)
	assert.Equal(t, EngineFirefox, suite.Engine)
	assert.Equal(t, 8*time.Second, timeout)
	assert.Same(t, cfg, suite.Config)
}

func TestStartSuite_NoProjects(t *testing.T) {
	cfg := config.Default()
	cfg.Projects = nil
	l := &fakeLauncher{rec: &recorder{}}

	suite, _, err := startTestSuite(t, cfg, l)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, suite)
	assert.Empty(t, l.rec.list(), "no engine may be launched")
}

func TestStartSuite_DebugDisablesTimeout(t *testing.T) {
	t.Setenv(log.DebugEnv, "1")
	l := &fakeLauncher{rec: &recorder{}}

	_, timeout, err := startTestSuite(t, config.Default(), l)
	require.NoError(t, err)
	assert.Zero(t, timeout)
}

func TestStartSuite_LaunchError(t *testing.T) {
	l := &fakeLauncher{rec: &recorder{}, err: errBoom}

	_, _, err := startTestSuite(t, config.Default(), l)
	assert.ErrorIs(t, err, errBoom)
}

func TestSuiteEnd(t *testing.T) {
	l := &fakeLauncher{rec: &recorder{}}
	suite, _, err := startTestSuite(t, config.Default(), l)
	require.NoError(t, err)

	require.NoError(t, suite.End())
	assert.Equal(t, []string{"launch:chromium", "browser.close", "driver.stop"}, l.rec.list())
	assert.True(t, l.stopped)
}

func TestSuiteEnd_StopsDriverWhenCloseFails(t *testing.T) {
	l := &fakeLauncher{rec: &recorder{}}
	suite, _, err := startTestSuite(t, config.Default(), l)
	require.NoError(t, err)

	l.browser.closeErr = errBoom
	err = suite.End()
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "closing browser")
	assert.True(t, l.stopped, "driver is stopped after a failed close")
}

func TestSuite_ScenarioClosesBeforeBrowser(t *testing.T) {
	l := &fakeLauncher{rec: &recorder{}}
	suite, _, err := startTestSuite(t, config.Default(), l)
	require.NoError(t, err)

	w := New(WithConfig(suite.Config), WithLogger(quietLogger()), WithTracesDir(t.TempDir()))
	require.NoError(t, w.StartScenario(suite.Browser, Scenario{Name: "one"}))
	require.NoError(t, w.EndScenario(&StepResult{Status: StatusPassed}))
	require.NoError(t, suite.End())

	calls := l.rec.list()
	assert.Equal(t, "context.close", calls[len(calls)-3])
	assert.Equal(t, "browser.close", calls[len(calls)-2])
}
