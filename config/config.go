package config

import (
	"encoding/json"
	"fmt"
	"os"

	"blinky/core"
)

// hardwareFile is the JSON shape of a board description. Pointers tell an
// explicit zero mask apart from a missing field.
type hardwareFile struct {
	DDRB  *uint8 `json:"ddrb,omitempty"`
	DDRC  *uint8 `json:"ddrc,omitempty"`
	DDRD  *uint8 `json:"ddrd,omitempty"`
	PORTB *uint8 `json:"portb,omitempty"`
	PORTD *uint8 `json:"portd,omitempty"`

	LEDPort string `json:"led_port,omitempty"`
	LEDBit  *uint8 `json:"led_bit,omitempty"`
}

// LoadConfig parses a JSON board description and returns a HardwareConfig
func LoadConfig(jsonData []byte) (*core.HardwareConfig, error) {
	var file hardwareFile

	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, err
	}

	config := core.DefaultHardware()
	if err := applyFile(&config, &file); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hardware config: %w", err)
	}

	return &config, nil
}

// LoadFile reads and parses a board description from disk
func LoadFile(path string) (*core.HardwareConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	config, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return config, nil
}

// applyFile overlays the fields present in file onto the compile-time defaults
func applyFile(config *core.HardwareConfig, file *hardwareFile) error {
	if file.DDRB != nil {
		config.DDRB = *file.DDRB
	}
	if file.DDRC != nil {
		config.DDRC = *file.DDRC
	}
	if file.DDRD != nil {
		config.DDRD = *file.DDRD
	}
	if file.PORTB != nil {
		config.PORTB = *file.PORTB
	}
	if file.PORTD != nil {
		config.PORTD = *file.PORTD
	}

	if file.LEDPort != "" {
		id, err := parsePort(file.LEDPort)
		if err != nil {
			return err
		}
		config.LEDPort = id
	}
	if file.LEDBit != nil {
		config.LEDBit = *file.LEDBit
	}
	return nil
}

// parsePort accepts "B", "b" or "PORTB"
func parsePort(s string) (core.PortID, error) {
	if len(s) == 5 && (s[:4] == "PORT" || s[:4] == "port") {
		s = s[4:]
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("led_port %q: %w", s, core.ErrUnknownPort)
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return core.PortID(c), nil
}

// DefaultJSON returns the compile-time board description as indented JSON
func DefaultJSON() ([]byte, error) {
	c := core.DefaultHardware()
	file := hardwareFile{
		DDRB:    &c.DDRB,
		DDRC:    &c.DDRC,
		DDRD:    &c.DDRD,
		PORTB:   &c.PORTB,
		PORTD:   &c.PORTD,
		LEDPort: string(rune(c.LEDPort)),
		LEDBit:  &c.LEDBit,
	}
	return json.MarshalIndent(file, "", "  ")
}
