package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/bnema/vrkit/internal/config"
	"github.com/bnema/vrkit/internal/logger"
	"github.com/bnema/vrkit/internal/pluginkit"
	"github.com/bnema/vrkit/internal/pluginkit/sim"
	"github.com/bnema/vrkit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	hostDuration     time.Duration
	hostButtonPeriod time.Duration
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the device plugin host",
	Long: `Run the device host with the built-in simulated plugin. Synchronous devices
are updated at host.update_rate_hz; asynchronous devices report from their own
wait loops. Stops on Ctrl+C or after --duration.`,
	RunE: runHost,
}

func init() {
	hostCmd.Flags().DurationVar(&hostDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
	hostCmd.Flags().DurationVar(&hostButtonPeriod, "button-period", 500*time.Millisecond, "toggle period of the simulated button")
	rootCmd.AddCommand(hostCmd)
}

// messageCounter tallies delivered messages per type. The host never calls
// it concurrently.
type messageCounter map[string]int

func (c messageCounter) handle(m pluginkit.Message) {
	c[m.Type.Name()]++
	logger.Debug("message", "device", m.Device, "type", m.Type.Name(), "payload", string(m.Payload))
}

func runHost(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	counts := messageCounter{}
	host := pluginkit.NewHost(counts.handle)
	if err := sim.Register(host, cfg.Host.AsyncDevices, hostButtonPeriod); err != nil {
		_ = host.Stop()
		return fmt.Errorf("failed to register simulated plugin: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if hostDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hostDuration)
		defer cancel()
	}

	err := host.Run(ctx, cfg.Host.UpdateRateHz)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatHeader("Host summary"))
	for _, d := range host.Devices() {
		fmt.Fprintln(out, ui.FormatKeyValue("Device", d))
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintln(out, ui.FormatKeyValue(t, counts[t]))
	}
	fmt.Fprintln(out, ui.FormatResult(err == nil, fmt.Sprintf("%d messages delivered", host.Delivered())))
	return err
}
