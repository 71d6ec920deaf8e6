package cmd

import (
	"os"
	"path/filepath"

	"github.com/bnema/vrkit/internal/config"
	"github.com/bnema/vrkit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logFile    *os.File

	rootCmd = &cobra.Command{
		Use:   "vrkit",
		Short: "vrkit - head-mounted display configuration and device host",
		Long: `vrkit derives per-eye viewports, fields of view and projections from a
display descriptor, and hosts device plugins that report tracking data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return err
			}
			logger.SetLevel(config.Get().Logging.LogLevel)
			if config.Get().Logging.FileLogging && logFile == nil {
				f, err := logger.SetupFileLogging(filepath.Dir(config.GetConfigPath()))
				if err != nil {
					return err
				}
				logFile = f
			}
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	rootCmd.Version = Version
	defer closeLogFile()
	return rootCmd.Execute()
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	logger.ResetOutput()
	_ = logFile.Close()
	logFile = nil
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search /etc/vrkit, ~/.config/vrkit, .)")
}
