package configfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/internal/config"
)

func TestConfigExampleLoadsAsDefaults(t *testing.T) {
	t.Setenv("RS_HOST", "")

	path := filepath.Join(t.TempDir(), "retailscope.yaml")
	require.NoError(t, os.WriteFile(path, GetConfigExample(), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Validate())

	def := config.Default()
	assert.Equal(t, def.Server.Host, cfg.Server.Host)
	assert.Equal(t, def.Server.Port, cfg.Server.Port)
	assert.Equal(t, def.Page, cfg.Page)
	assert.Equal(t, def.Report, cfg.Report)
	assert.Equal(t, def.Export, cfg.Export)
}

func TestGetConfigExampleReturnsCopy(t *testing.T) {
	a := GetConfigExample()
	a[0] = 'X'
	assert.NotEqual(t, a[0], GetConfigExample()[0])
}
