package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{"Warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestSetLevelIgnoresEmpty(t *testing.T) {
	old := Logger.GetLevel()
	defer Logger.SetLevel(old)

	SetLevel("error")
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())

	SetLevel("  ")
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
}

func TestSetupFileLogging(t *testing.T) {
	old := Logger.GetLevel()
	defer Logger.SetLevel(old)
	Logger.SetLevel(log.InfoLevel)

	dir := filepath.Join(t.TempDir(), "nested")
	f, err := SetupFileLogging(dir)
	require.NoError(t, err)
	Info("display ready", "eyes", 2)
	ResetOutput()
	require.NoError(t, f.Close())
	Info("not in the file")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "display ready")
	assert.Contains(t, string(data), "eyes=2")
	assert.NotContains(t, string(data), "not in the file")

	t.Run("unwritable directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		_, err := SetupFileLogging(filepath.Join(blocker, "logs"))
		assert.Error(t, err)
	})
}
