package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vrkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	viper.Reset()
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		viper.Reset()
		Set(nil)
	})
	return path
}

func TestInit(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		withConfigFile(t, `
[display]
descriptor_path = "/tmp/hmd.json"

[host]
update_rate_hz = 90

[logging]
log_level = "debug"
`)
		require.NoError(t, Init())

		c := Get()
		assert.Equal(t, "/tmp/hmd.json", c.Display.DescriptorPath)
		assert.Equal(t, 90, c.Host.UpdateRateHz)
		assert.Equal(t, "debug", c.Logging.LogLevel)
		// untouched keys keep defaults
		assert.Equal(t, DefaultConfig.Client.AppID, c.Client.AppID)
		assert.True(t, c.Host.AsyncDevices)
	})

	t.Run("invalid TOML is reported", func(t *testing.T) {
		withConfigFile(t, "[display\ndescriptor = 1")
		assert.Error(t, Init())
	})

	t.Run("non-positive update rate is rejected", func(t *testing.T) {
		withConfigFile(t, "[host]\nupdate_rate_hz = 0\n")
		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "update_rate_hz")
	})
}

func TestGetWithoutInitReturnsDefaults(t *testing.T) {
	Set(nil)
	c := Get()
	require.NotNil(t, c)
	assert.Equal(t, 60, c.Host.UpdateRateHz)
	assert.Equal(t, "com.bnema.vrkit", c.Client.AppID)

	// mutating the returned copy must not leak into the defaults
	c.Host.UpdateRateHz = 1
	assert.Equal(t, 60, DefaultConfig.Host.UpdateRateHz)
}

func TestDescriptorString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hmd.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hmd":{}}`), 0644))

	tests := []struct {
		name    string
		display DisplayConfig
		want    string
		wantErr bool
	}{
		{name: "inline wins", display: DisplayConfig{Descriptor: `{"inline":1}`, DescriptorPath: path}, want: `{"inline":1}`},
		{name: "file", display: DisplayConfig{DescriptorPath: path}, want: `{"hmd":{}}`},
		{name: "nothing configured", display: DisplayConfig{}, want: ""},
		{name: "missing file", display: DisplayConfig{DescriptorPath: filepath.Join(dir, "nope.json")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Display: tt.display}
			got, err := c.DescriptorString()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigPathOverride(t *testing.T) {
	viper.Reset()
	SetConfigPath("/custom/vrkit.toml")
	defer SetConfigPath("")

	assert.Equal(t, "/custom/vrkit.toml", GetConfigPath())
}
