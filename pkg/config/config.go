// Package config resolves the run configuration shared by every scenario.
// A configuration file is a YAML document with a top-level playwrightConfig key.
package config

import (
	"fmt"
	"time"
)

// Screenshot policies.
const (
	ScreenshotOff           = "off"
	ScreenshotOnlyOnFailure = "only-on-failure"
	ScreenshotOn            = "on"
)

// Trace policies.
const (
	TraceOff             = "off"
	TraceRetainOnFailure = "retain-on-failure"
	TraceOn              = "on"
)

// RunConfig is the resolved configuration for one test run.
type RunConfig struct {
	Timeout  int          `yaml:"timeout"` // ms, 0 disables
	Expect   ExpectConfig `yaml:"expect"`
	Use      UseConfig    `yaml:"use"`
	Projects []Project    `yaml:"projects"`
}

// ExpectConfig controls assertion retries.
type ExpectConfig struct {
	Timeout int `yaml:"timeout"` // ms
}

// UseConfig holds the per-scenario browser options.
type UseConfig struct {
	Headless          bool     `yaml:"headless"`
	Viewport          Viewport `yaml:"viewport"`
	IgnoreHTTPSErrors bool     `yaml:"ignoreHTTPSErrors"`
	ActionTimeout     int      `yaml:"actionTimeout"` // ms
	BaseURL           string   `yaml:"baseURL"`
	Locale            string   `yaml:"locale"`
	Screenshot        string   `yaml:"screenshot"` // "off" | "only-on-failure" | "on"
	Trace             string   `yaml:"trace"`      // "off" | "retain-on-failure" | "on"
}

// Viewport is the page size in CSS pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Project names a browser engine to run against.
type Project struct {
	Name string `yaml:"name"`
}

// Default returns the built-in configuration used when no file is loadable.
func Default() *RunConfig {
	return &RunConfig{
		Timeout: 8000,
		Expect: ExpectConfig{
			Timeout: 5000,
		},
		Use: UseConfig{
			Headless: true,
			Viewport: Viewport{
				Width:  1920,
				Height: 1080,
			},
			IgnoreHTTPSErrors: true,
			ActionTimeout:     5000,
			Locale:            "en-US",
			Screenshot:        ScreenshotOnlyOnFailure,
			Trace:             TraceRetainOnFailure,
		},
		Projects: []Project{
			{Name: "chromium"},
		},
	}
}

// TimeoutDuration returns the timeout each step runs under.
func (c *RunConfig) TimeoutDuration() time.Duration {
	return msToDuration(c.Timeout)
}

// ExpectTimeout returns the assertion timeout.
func (c *RunConfig) ExpectTimeout() time.Duration {
	return msToDuration(c.Expect.Timeout)
}

// ActionTimeout returns the per-action timeout.
func (c *RunConfig) ActionTimeout() time.Duration {
	return msToDuration(c.Use.ActionTimeout)
}

// Validate reports whether the screenshot and trace policies are known.
// An empty policy is accepted and captures unconditionally, like "on".
func (c *RunConfig) Validate() error {
	switch c.Use.Screenshot {
	case "", ScreenshotOff, ScreenshotOnlyOnFailure, ScreenshotOn:
	default:
		return fmt.Errorf("unknown screenshot policy %q", c.Use.Screenshot)
	}
	switch c.Use.Trace {
	case "", TraceOff, TraceRetainOnFailure, TraceOn:
	default:
		return fmt.Errorf("unknown trace policy %q", c.Use.Trace)
	}
	return nil
}

func msToDuration(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
