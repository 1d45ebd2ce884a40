package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, InitConf(""))
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "concrete", c.Defaults.Material)
	assert.Equal(t, "water", c.Defaults.Fluid)
	assert.Equal(t, 4, c.Report.Precision)
	assert.Equal(t, 10, c.Log.MaxSizeMB)
}

func TestInitConfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goflow.yaml")
	body := `
log:
  level: debug
  file: /tmp/goflow.log
defaults:
  material: plastic
report:
  precision: 6
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	require.NoError(t, InitConf(path))
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "/tmp/goflow.log", c.Log.File)
	assert.Equal(t, "plastic", c.Defaults.Material)
	assert.Equal(t, "water", c.Defaults.Fluid)
	assert.Equal(t, 6, c.Report.Precision)
}

func TestInitConfEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GOFLOW_DEFAULTS_FLUID", "seawater")

	require.NoError(t, InitConf(""))
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "seawater", c.Defaults.Fluid)
}

func TestInitConfMissingExplicitFile(t *testing.T) {
	err := InitConf(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsNegativePrecision(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GOFLOW_REPORT_PRECISION", "-1")

	require.NoError(t, InitConf(""))
	_, err := Load()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
