package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"blinky/config"
	"blinky/core"
	"blinky/expander"
)

var (
	simIterations int
	simHardware   string
	simBackend    string
	simPattern    string
	simDurationMS uint32
	simSoftReset  bool

	simCmd = &cobra.Command{
		Use:   "sim",
		Short: "Run the firmware against a simulated register file",
		RunE: func(cmd *cobra.Command, args []string) error {
			hw := core.DefaultHardware()
			if simHardware != "" {
				loaded, err := config.LoadFile(simHardware)
				if err != nil {
					return err
				}
				hw = *loaded
			}

			switch simPattern {
			case "avr":
				return runAVR(cmd.OutOrStdout(), hw)
			case "two-led":
				return runTwoLED(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown pattern %q (want avr or two-led)", simPattern)
			}
		},
	}
)

func init() {
	simCmd.Flags().IntVarP(&simIterations, "iterations", "n", 2, "Loop iterations to run")
	simCmd.Flags().StringVar(&simHardware, "hardware", "", "JSON board description (defaults to the compiled-in constants)")
	simCmd.Flags().StringVar(&simBackend, "backend", "avr", "LED port backend: avr or expander")
	simCmd.Flags().StringVar(&simPattern, "pattern", "avr", "Program to run: avr or two-led")
	simCmd.Flags().Uint32Var(&simDurationMS, "duration", 8000, "Simulated time for the two-led pattern, in ms")
	simCmd.Flags().BoolVar(&simSoftReset, "soft-reset", false, "Invoke the soft reset after the loop")
}

// registerNames labels data-space addresses in the trace
var registerNames = map[uint16]string{
	core.AddrPINB:   "PINB",
	core.AddrDDRB:   "DDRB",
	core.AddrPORTB:  "PORTB",
	core.AddrPINC:   "PINC",
	core.AddrDDRC:   "DDRC",
	core.AddrPORTC:  "PORTC",
	core.AddrPIND:   "PIND",
	core.AddrDDRD:   "DDRD",
	core.AddrPORTD:  "PORTD",
	core.AddrWDTCSR: "WDTCSR",
}

func registerName(addr uint16) string {
	if name, ok := registerNames[addr]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", addr)
}

func runAVR(out io.Writer, hw core.HardwareConfig) error {
	if simIterations < 0 {
		return fmt.Errorf("iterations must not be negative")
	}

	core.SetTime(0)
	core.TimerInit()
	core.ClearSpinHooks()
	core.SetDebugWriter(func(s string) { log.Debug().Str("src", "firmware").Msg(s) })
	core.SetDebugEnabled(verbose)

	file := core.NewRegisterFile()
	ports := core.NewPorts(file.Register)
	emu := core.NewWatchdogEmulator(file)
	wd := &core.AVRWatchdog{Control: file.Register(core.AddrWDTCSR), Reset: emu.Feed}

	var bus *expander.MemBus
	var dev *expander.Device
	if simBackend == "expander" {
		bus = expander.NewMemBus(expander.DefaultAddress)
		dev = expander.New(bus, expander.DefaultAddress)
		led, _ := ports.ByID(hw.LEDPort)
		*led = dev.Port(hw.LEDPort)
		log.Info().Str("port", hw.LEDPort.String()).Msg("LED port routed through I2C expander")
	} else if simBackend != "avr" {
		return fmt.Errorf("unknown backend %q (want avr or expander)", simBackend)
	}

	delay := &core.SimDelay{}
	prog, err := core.NewProgram(&ports, hw, delay, wd)
	if err != nil {
		return fmt.Errorf("failed to build program: %w", err)
	}

	prog.Init()
	prog.RunIterations(simIterations)

	if simSoftReset {
		ev, reset := core.CatchReset(prog.SoftReset)
		if reset {
			log.Warn().Uint32("at_ms", ev.At).Msg("watchdog reset")
		}
	}

	for _, w := range file.Trace() {
		fmt.Fprintf(out, "t=%6dms %-6s <- %s\n", w.Time, registerName(w.Addr), core.FormatBinary(w.Value))
	}
	if bus != nil {
		for _, op := range bus.Ops() {
			if op.Write {
				fmt.Fprintf(out, "i2c 0x%02X reg 0x%02X <- %s\n", op.Addr, op.Reg, core.FormatBinary(op.Value))
			}
		}
		if err := dev.LastErr(); err != nil {
			return fmt.Errorf("expander bus error: %w", err)
		}
	}

	led := prog.LEDPort().PORT.Get()&prog.LEDMask() != 0
	log.Info().
		Int("iterations", int(prog.Iterations)).
		Uint32("delay_ms", delay.TotalMS).
		Bool("led_high", led).
		Msg("simulation finished")
	return nil
}

func runTwoLED(out io.Writer) error {
	core.SetTime(0)
	core.TimerInit()
	core.ResetTimers()

	file := core.NewRegisterFile()
	ports := core.NewPorts(file.Register)
	core.SetGPIODriver(core.NewPortGPIO(&ports))

	led1 := core.PortPin(core.PortB, 0)
	led2 := core.PortPin(core.PortB, 1)
	t1, t2, err := core.StartTwoLEDPattern(led1, led2)
	if err != nil {
		return fmt.Errorf("failed to start pattern: %w", err)
	}

	for now := uint32(0); now <= simDurationMS; now++ {
		core.SetTime(now)
		core.ProcessTimers()
	}

	for _, w := range file.WritesTo(core.AddrPORTB) {
		fmt.Fprintf(out, "t=%6dms LED1=%d LED2=%d\n", w.Time, w.Value&1, (w.Value>>1)&1)
	}
	log.Info().
		Uint32("led1_toggles", t1.Toggles).
		Uint32("led2_toggles", t2.Toggles).
		Msg("simulation finished")
	return nil
}
