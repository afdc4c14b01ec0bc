package templates

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berth-dev/godog-playwright/internal/toolchain"
	"github.com/berth-dev/godog-playwright/pkg/config"
)

func testData() Data {
	return Data{
		Module:    "example.com/shop",
		Browsers:  []string{"firefox", "webkit"},
		Toolchain: toolchain.Modules{},
	}
}

func TestNames_MatchFiles(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	want := append([]string{Makefile}, Files...)
	sort.Strings(want)
	assert.Equal(t, want, names)
}

func TestRender_AllFiles(t *testing.T) {
	for _, name := range append(Files, Makefile) {
		t.Run(name, func(t *testing.T) {
			out, err := Render(name, testData())
			require.NoError(t, err)
			assert.NotEmpty(t, out)
			assert.NotContains(t, string(out), "{{")
		})
	}
}

func TestRender_GoSourcesImportModule(t *testing.T) {
	out, err := Render("e2e/main_test.go", testData())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"example.com/shop/e2e/steps"`)

	out, err = Render("e2e/steps/home.go", testData())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"example.com/shop/e2e/pages"`)
}

func TestRender_ConfigLoads(t *testing.T) {
	out, err := Render("playwright.yaml", testData())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "playwright.yaml")
	require.NoError(t, os.WriteFile(path, out, 0644))

	cfg, err := config.FileProvider(path)()
	require.NoError(t, err)
	assert.Equal(t, []config.Project{{Name: "firefox"}, {Name: "webkit"}}, cfg.Projects)
	assert.Equal(t, config.TraceRetainOnFailure, cfg.Use.Trace)
	assert.Equal(t, 8000, cfg.Timeout)
}

func TestRender_MakefileUsesToolchain(t *testing.T) {
	data := testData()
	data.Toolchain = toolchain.Vendor{}

	out, err := Render(Makefile, data)
	require.NoError(t, err)

	makefile := string(out)
	assert.Contains(t, makefile, "\tgo test ./e2e\n")
	assert.Contains(t, makefile, "\tgo tool playwright show-trace\n")
	for _, line := range strings.Split(makefile, "\n") {
		if strings.HasPrefix(line, "    ") {
			t.Errorf("recipe indented with spaces: %q", line)
		}
	}
}

func TestRender_Unknown(t *testing.T) {
	_, err := Render("missing.txt", testData())
	assert.Error(t, err)
}
