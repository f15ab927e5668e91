package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMobileMenu(t *testing.T) {
	var m MobileMenu
	assert.True(t, m.Hidden())

	m.Toggle()
	assert.False(t, m.Hidden())

	m.LinkClicked()
	assert.True(t, m.Hidden())

	// clicking a link on a closed menu keeps it closed
	m.LinkClicked()
	assert.True(t, m.Hidden())

	m.Toggle()
	m.Toggle()
	assert.True(t, m.Hidden())
}
