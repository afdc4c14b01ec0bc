package world

import "github.com/playwright-community/playwright-go"

// Page returns the scenario's page, or ErrNoActivePage outside an active
// scenario. A nil World has no page.
func (w *World) Page() (playwright.Page, error) {
	if w == nil || w.page == nil {
		return nil, ErrNoActivePage
	}
	return w.page, nil
}

// GetPage builds a page object bound to the current page. Page objects are
// cheap value holders, so a fresh one is built on every call.
//
//	home, err := world.GetPage(w, pages.NewHome)
func GetPage[T any](w *World, newPageObject func(playwright.Page) T) (T, error) {
	page, err := w.Page()
	if err != nil {
		var zero T
		return zero, err
	}
	return newPageObject(page), nil
}

// Expect returns assertions that retry for the configured expect timeout.
func (w *World) Expect() playwright.PlaywrightAssertions {
	if d := w.cfg.ExpectTimeout(); d > 0 {
		return playwright.NewPlaywrightAssertions(float64(d.Milliseconds()))
	}
	return playwright.NewPlaywrightAssertions()
}
