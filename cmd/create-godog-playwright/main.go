// Command create-godog-playwright scaffolds an end-to-end test suite that
// runs godog features against Playwright browsers.
package main

import "github.com/berth-dev/godog-playwright/internal/cli"

func main() {
	cli.Execute()
}
