package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"blinky/host/monitor"
	"blinky/host/serial"
)

var (
	monDevice string
	monBaud   int

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Follow the firmware debug output over serial",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := serial.DefaultConfig(monDevice)
			cfg.Baud = monBaud

			port, err := serial.Open(cfg)
			if err != nil {
				return err
			}
			defer port.Close()
			_ = port.Flush()

			log.Info().Str("device", cfg.Device).Int("baud", cfg.Baud).Msg("monitoring")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			m := monitor.New(port, log, true)
			m.OnLine = func(l monitor.Line) {
				fmt.Fprintln(cmd.OutOrStdout(), l.At.Format("15:04:05.000"), l.Text)
			}

			err = m.Run(ctx)
			stats := m.Stats()
			log.Info().
				Int("lines", stats.Lines).
				Int("loops", stats.Loops).
				Int("gaps", stats.Gaps).
				Int("resets", stats.Resets).
				Msg("monitor stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
)

func init() {
	monitorCmd.Flags().StringVarP(&monDevice, "device", "d", "/dev/ttyACM0", "Serial device path")
	monitorCmd.Flags().IntVarP(&monBaud, "baud", "b", 115200, "Baud rate (ignored for USB CDC)")
}
