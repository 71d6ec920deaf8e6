package cmd

import (
	"fmt"

	"github.com/bnema/vrkit/internal/config"
	"github.com/bnema/vrkit/internal/logger"
	"github.com/bnema/vrkit/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vrkit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, ui.FormatHeader("Configuration"))
		fmt.Fprintln(out, ui.FormatKeyValue("File", config.GetConfigPath()))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[display]"))
		fmt.Fprintln(out, ui.FormatKeyValue("Descriptor", describeDescriptorSource(cfg)))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[client]"))
		fmt.Fprintln(out, ui.FormatKeyValue("App ID", cfg.Client.AppID))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[host]"))
		fmt.Fprintln(out, ui.FormatKeyValue("Update rate", fmt.Sprintf("%d Hz", cfg.Host.UpdateRateHz)))
		fmt.Fprintln(out, ui.FormatKeyValue("Async", cfg.Host.AsyncDevices))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[logging]"))
		level := cfg.Logging.LogLevel
		if level == "" {
			level = "from LOG_LEVEL"
		}
		fmt.Fprintln(out, ui.FormatKeyValue("Level", level))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration written to %s", config.GetConfigPath())
		return nil
	},
}

func describeDescriptorSource(cfg *config.Config) string {
	switch {
	case cfg.Display.Descriptor != "":
		return "inline"
	case cfg.Display.DescriptorPath != "":
		return cfg.Display.DescriptorPath
	default:
		return ui.WarningStyle.Render("not set")
	}
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
