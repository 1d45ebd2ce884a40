package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goflow.log")

	require.NoError(t, InitLogger("goflow", Options{Level: "info", File: path, MaxSizeMB: 1}))
	Logger.Infow("pipe solved", "velocity", 1.22)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipe solved")
	assert.Contains(t, string(data), `"velocity":1.22`)
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	assert.Error(t, InitLogger("goflow", Options{Level: "loud"}))
}

func TestInitLoggerLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goflow.log")

	require.NoError(t, InitLogger("goflow", Options{Level: "error", File: path}))
	Logger.Warn("ignored")
	Logger.Error("kept")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ignored")
	assert.Contains(t, string(data), "kept")
}
