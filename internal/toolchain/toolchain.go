// Package toolchain decides how Go module commands are spelled for a target
// directory: plain modules, a go.work workspace, or a vendored module.
package toolchain

import (
	"os"
	"path/filepath"
	"strings"
)

// Toolchain renders the shell commands the generator runs.
type Toolchain interface {
	// Name is shown to the user.
	Name() string
	// CLI is the executable every command starts with.
	CLI() string
	// Init creates a module named module in the working directory.
	Init(module string) string
	// Exec runs a tool dependency.
	Exec(tool, args string) string
	// CI restores dependencies for an existing checkout.
	CI() string
	// Install adds runtime dependencies.
	Install(pkgs string) string
	// InstallDev adds tool dependencies.
	InstallDev(pkgs string) string
	// Run runs a Makefile target.
	Run(target string) string
	// RunTest runs the end-to-end suite with optional extra arguments.
	RunTest(args string) string
}

// Environment lookups used by Detect.
const (
	goflagsEnv = "GOFLAGS"
	goworkEnv  = "GOWORK"
)

// testPackage is the package path of the generated suite.
const testPackage = "./e2e"

// Detect picks the toolchain for dir. Vendoring (GOFLAGS=-mod=vendor) wins
// over a workspace (GOWORK set, or a go.work in dir or any parent).
func Detect(dir string) Toolchain {
	if strings.Contains(os.Getenv(goflagsEnv), "-mod=vendor") {
		return Vendor{}
	}

	if gowork := os.Getenv(goworkEnv); gowork != "" {
		if gowork == "off" {
			return Modules{}
		}
		return Workspace{}
	}

	if findUp(dir, "go.work") != "" {
		return Workspace{}
	}
	return Modules{}
}

// findUp returns the first path named name in dir or its parents, or "".
func findUp(dir, name string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, name)
		if fileExists(candidate) {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// fileExists returns true if path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func runTest(args string) string {
	cmd := "go test " + testPackage
	if args != "" {
		cmd += " " + args
	}
	return cmd
}

// ---------------------------------------------------------------------------
// Modules
// ---------------------------------------------------------------------------

// Modules is a standalone Go module.
type Modules struct{}

func (Modules) Name() string                  { return "Go modules" }
func (Modules) CLI() string                   { return "go" }
func (Modules) Init(module string) string     { return "go mod init " + module }
func (Modules) Exec(tool, args string) string { return "go tool " + tool + " " + args }
func (Modules) CI() string                    { return "go mod download" }
func (Modules) Install(pkgs string) string    { return "go get " + pkgs }
func (Modules) InstallDev(pkgs string) string { return "go get -tool " + pkgs }
func (Modules) Run(target string) string      { return "make " + target }
func (Modules) RunTest(args string) string    { return runTest(args) }

// ---------------------------------------------------------------------------
// Workspace
// ---------------------------------------------------------------------------

// Workspace is a module that joins an enclosing go.work.
type Workspace struct{}

func (Workspace) Name() string { return "Go workspace" }
func (Workspace) CLI() string  { return "go" }

func (Workspace) Init(module string) string {
	return "go mod init " + module + " && go work use ."
}

func (Workspace) Exec(tool, args string) string { return "go tool " + tool + " " + args }
func (Workspace) CI() string                    { return "go work sync" }
func (Workspace) Install(pkgs string) string    { return "go get " + pkgs }
func (Workspace) InstallDev(pkgs string) string { return "go get -tool " + pkgs }
func (Workspace) Run(target string) string      { return "make " + target }
func (Workspace) RunTest(args string) string    { return runTest(args) }

// ---------------------------------------------------------------------------
// Vendor
// ---------------------------------------------------------------------------

// Vendor is a module that keeps its dependencies in vendor/.
type Vendor struct{}

func (Vendor) Name() string                  { return "Go modules (vendored)" }
func (Vendor) CLI() string                   { return "go" }
func (Vendor) Init(module string) string     { return "go mod init " + module }
func (Vendor) Exec(tool, args string) string { return "go tool " + tool + " " + args }
func (Vendor) CI() string                    { return "go mod vendor" }

func (Vendor) Install(pkgs string) string {
	return "go get " + pkgs + " && go mod vendor"
}

func (Vendor) InstallDev(pkgs string) string {
	return "go get -tool " + pkgs + " && go mod vendor"
}

func (Vendor) Run(target string) string   { return "make " + target }
func (Vendor) RunTest(args string) string { return runTest(args) }
