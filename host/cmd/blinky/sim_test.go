package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"blinky/core"
)

func resetSimFlags() {
	log = zerolog.Nop()
	simIterations = 2
	simHardware = ""
	simBackend = "avr"
	simPattern = "avr"
	simDurationMS = 8000
	simSoftReset = false
	verbose = false
}

func TestRunAVRTrace(t *testing.T) {
	resetSimFlags()

	var out bytes.Buffer
	if err := runAVR(&out, core.DefaultHardware()); err != nil {
		t.Fatalf("runAVR failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// 5 init writes + 2 clears per iteration
	if len(lines) != 9 {
		t.Fatalf("Expected 9 trace lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "DDRB   <- 0b00001000") {
		t.Errorf("First write should be DDRB, got %q", lines[0])
	}
	if !strings.Contains(lines[8], "t=  2000ms PORTB  <- 0b00000000") {
		t.Errorf("Unexpected last write %q", lines[8])
	}
}

func TestRunAVRSoftReset(t *testing.T) {
	resetSimFlags()
	simIterations = 1
	simSoftReset = true

	var out bytes.Buffer
	if err := runAVR(&out, core.DefaultHardware()); err != nil {
		t.Fatalf("runAVR failed: %v", err)
	}
	if !strings.Contains(out.String(), "WDTCSR <- 0b00001001") {
		t.Errorf("Expected the watchdog armed with 30ms, got:\n%s", out.String())
	}
}

func TestRunAVRExpander(t *testing.T) {
	resetSimFlags()
	simBackend = "expander"

	var out bytes.Buffer
	if err := runAVR(&out, core.DefaultHardware()); err != nil {
		t.Fatalf("runAVR failed: %v", err)
	}
	if !strings.Contains(out.String(), "i2c 0x20 reg 0x00 <- 0b11110111") {
		t.Errorf("Expected IODIR written through the expander, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "PORTB  <-") {
		t.Errorf("PORTB should not be written on-chip with the expander backend")
	}
}

func TestRunAVRRejectsUnknownBackend(t *testing.T) {
	resetSimFlags()
	simBackend = "spi"

	if err := runAVR(&bytes.Buffer{}, core.DefaultHardware()); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestRunTwoLED(t *testing.T) {
	resetSimFlags()
	simPattern = "two-led"
	simDurationMS = 5550

	var out bytes.Buffer
	if err := runTwoLED(&out); err != nil {
		t.Fatalf("runTwoLED failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// DDR setup is not on PORTB; toggles at 5000 (x2), 5300, 5500; LED2 next at 5600
	if len(lines) != 4 {
		t.Fatalf("Expected 4 toggle lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[len(lines)-1], "t=  5500ms LED1=0 LED2=0") {
		t.Errorf("Unexpected final state %q", lines[len(lines)-1])
	}
}
