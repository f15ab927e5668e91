package widget

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appTabs = []string{"personalization", "operations", "service"}

func TestNewTabGroup(t *testing.T) {
	g, err := NewTabGroup(appTabs...)
	require.NoError(t, err)
	assert.Equal(t, "personalization", g.Active())
	assert.Equal(t, appTabs, g.Keys())

	_, err = NewTabGroup()
	assert.Error(t, err)

	_, err = NewTabGroup("a", "")
	assert.Error(t, err)

	_, err = NewTabGroup("a", "b", "a")
	assert.Error(t, err)
}

func TestTabGroupSelect(t *testing.T) {
	g, err := NewTabGroup(appTabs...)
	require.NoError(t, err)

	require.NoError(t, g.Select("operations"))
	assert.True(t, g.Visible("operations"))
	assert.False(t, g.Visible("personalization"))
	assert.False(t, g.Visible("service"))

	err = g.Select("pricing")
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, "operations", g.Active(), "unknown key must not change the active tab")

	// selecting the active tab again keeps it
	require.NoError(t, g.Select("operations"))
	assert.Equal(t, "operations", g.Active())
}

func TestTabGroupExactlyOneVisible(t *testing.T) {
	g, err := NewTabGroup(appTabs...)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	clicks := append(append([]string(nil), appTabs...), "unknown")

	assert.Equal(t, 1, g.VisibleCount())
	for i := 0; i < 500; i++ {
		key := clicks[rng.Intn(len(clicks))]
		_ = g.Select(key)
		require.Equal(t, 1, g.VisibleCount(), "after click %d on %q", i, key)
	}
}

func TestTabGroupKeysIsACopy(t *testing.T) {
	g, err := NewTabGroup(appTabs...)
	require.NoError(t, err)

	keys := g.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "personalization", g.Active())
}
