package widget

// MobileMenu is the collapsible navigation shown on narrow viewports
type MobileMenu struct {
	open bool
}

// Toggle flips the menu on a button click
func (m *MobileMenu) Toggle() {
	m.open = !m.open
}

// LinkClicked collapses the menu after navigation
func (m *MobileMenu) LinkClicked() {
	m.open = false
}

// Hidden reports whether the menu is collapsed. A new menu starts hidden.
func (m *MobileMenu) Hidden() bool {
	return !m.open
}
