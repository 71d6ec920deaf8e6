// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Display descriptor source
	Display DisplayConfig `mapstructure:"display"`

	// Client context settings
	Client ClientConfig `mapstructure:"client"`

	// Plugin host settings
	Host HostConfig `mapstructure:"host"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// DisplayConfig tells the client where its display descriptor comes from
type DisplayConfig struct {
	DescriptorPath string `mapstructure:"descriptor_path"` // File holding descriptor JSON
	Descriptor     string `mapstructure:"descriptor"`      // Inline descriptor, wins over DescriptorPath
}

// ClientConfig contains client context settings
type ClientConfig struct {
	AppID string `mapstructure:"app_id"`
}

// HostConfig contains plugin host settings
type HostConfig struct {
	UpdateRateHz int  `mapstructure:"update_rate_hz"` // Sync device update loop rate
	AsyncDevices bool `mapstructure:"async_devices"`  // Start the simulated async device
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	FileLogging bool   `mapstructure:"file_logging"`
	LogLevel    string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Display: DisplayConfig{
			DescriptorPath: "",
			Descriptor:     "",
		},
		Client: ClientConfig{
			AppID: "com.bnema.vrkit",
		},
		Host: HostConfig{
			UpdateRateHz: 60,
			AsyncDevices: true,
		},
		Logging: LoggingConfig{
			FileLogging: false,
			LogLevel:    "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("vrkit")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath("/etc/vrkit")

		// If running with sudo, try the real user's config
		if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
			viper.AddConfigPath(fmt.Sprintf("/home/%s/.config/vrkit", sudoUser))
		} else if home := os.Getenv("HOME"); home != "" && home != "/root" {
			viper.AddConfigPath(filepath.Join(home, ".config", "vrkit"))
		}

		viper.AddConfigPath(".")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	return nil
}

// setDefaults needs individual keys so file values merge field by field
func setDefaults() {
	viper.SetDefault("display.descriptor_path", DefaultConfig.Display.DescriptorPath)
	viper.SetDefault("display.descriptor", DefaultConfig.Display.Descriptor)

	viper.SetDefault("client.app_id", DefaultConfig.Client.AppID)

	viper.SetDefault("host.update_rate_hz", DefaultConfig.Host.UpdateRateHz)
	viper.SetDefault("host.async_devices", DefaultConfig.Host.AsyncDevices)

	viper.SetDefault("logging.file_logging", DefaultConfig.Logging.FileLogging)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
}

// Validate checks values viper cannot type-check on its own
func (c *Config) Validate() error {
	if c.Host.UpdateRateHz <= 0 {
		return fmt.Errorf("host.update_rate_hz must be positive, got %d", c.Host.UpdateRateHz)
	}
	if strings.TrimSpace(c.Client.AppID) == "" {
		return fmt.Errorf("client.app_id must not be empty")
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// DescriptorString resolves the display descriptor text. The inline value wins
// over the file; both empty yields an empty string and no error.
func (c *Config) DescriptorString() (string, error) {
	if strings.TrimSpace(c.Display.Descriptor) != "" {
		return c.Display.Descriptor, nil
	}
	if c.Display.DescriptorPath == "" {
		return "", nil
	}
	data, err := os.ReadFile(expandHome(c.Display.DescriptorPath))
	if err != nil {
		return "", fmt.Errorf("failed to read display descriptor: %w", err)
	}
	return string(data), nil
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		if os.IsPermission(err) && strings.Contains(configPath, "/etc/") {
			return fmt.Errorf("failed to create config directory %s: permission denied. Try running with sudo", dir)
		}
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if os.Getuid() == 0 || os.Getenv("SUDO_USER") != "" {
		return "/etc/vrkit/vrkit.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "/etc/vrkit/vrkit.toml"
	}

	return filepath.Join(home, ".config", "vrkit", "vrkit.toml")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
