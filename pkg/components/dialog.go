// Package components provides page objects for UI pieces that recur across pages.
package components

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// scope is the part of the page a component searches in.
type scope interface {
	byRole(role playwright.AriaRole, name string) playwright.Locator
	locator(selector string) playwright.Locator
}

type pageScope struct{ page playwright.Page }

func (s pageScope) byRole(role playwright.AriaRole, name string) playwright.Locator {
	if name == "" {
		return s.page.GetByRole(role)
	}
	return s.page.GetByRole(role, playwright.PageGetByRoleOptions{Name: name})
}

func (s pageScope) locator(selector string) playwright.Locator {
	return s.page.Locator(selector)
}

type locatorScope struct{ root playwright.Locator }

func (s locatorScope) byRole(role playwright.AriaRole, name string) playwright.Locator {
	if name == "" {
		return s.root.GetByRole(role)
	}
	return s.root.GetByRole(role, playwright.LocatorGetByRoleOptions{Name: name})
}

func (s locatorScope) locator(selector string) playwright.Locator {
	return s.root.Locator(selector)
}

// Dialog exposes the common parts of a modal dialog.
type Dialog struct {
	Page         playwright.Page
	HeadingTitle playwright.Locator
	CloseButton  playwright.Locator
	ActionButton playwright.Locator
	CancelButton playwright.Locator

	root scope
}

// NewDialog scopes a Dialog to the whole page.
func NewDialog(page playwright.Page) *Dialog {
	return newDialog(page, pageScope{page: page})
}

// NewDialogIn scopes a Dialog to root, usually the dialog element itself.
func NewDialogIn(root playwright.Locator) (*Dialog, error) {
	page, err := root.Page()
	if err != nil {
		return nil, fmt.Errorf("resolving dialog page: %w", err)
	}
	return newDialog(page, locatorScope{root: root}), nil
}

func newDialog(page playwright.Page, root scope) *Dialog {
	return &Dialog{
		Page:         page,
		HeadingTitle: root.byRole(*playwright.AriaRoleHeading, "").Nth(0),
		CloseButton:  root.byRole(*playwright.AriaRoleButton, "close"),
		ActionButton: root.locator("button[type='submit']"),
		CancelButton: root.byRole(*playwright.AriaRoleButton, "cancel"),
		root:         root,
	}
}

// Click clicks the button with the given accessible name inside the dialog.
func (d *Dialog) Click(name string) error {
	if err := d.root.byRole(*playwright.AriaRoleButton, name).Click(); err != nil {
		return fmt.Errorf("clicking %q: %w", name, err)
	}
	return nil
}
