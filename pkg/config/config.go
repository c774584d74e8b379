package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/gosmc/pkg/command"
)

// Config represents the controller configuration shared by the daemon and
// the GUI sender.
type Config struct {
	Serial    SerialConfig    `yaml:"serial"`
	CAN       CANConfig       `yaml:"can"`
	Control   ControlConfig   `yaml:"control"`
	Interlock InterlockConfig `yaml:"interlock"`
}

// SerialConfig contains the command port configuration.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// CANConfig contains the CAN side: the interface frames go out on and the
// arbitration id they start under.
type CANConfig struct {
	Interface string `yaml:"interface"`
	ID        int    `yaml:"id"`
}

// ControlConfig contains the loop parameters.
type ControlConfig struct {
	Interval time.Duration `yaml:"interval"`
	Dialect  string        `yaml:"dialect"`
}

// InterlockConfig contains the stop input wiring. The pin is BCM numbered,
// pulled up and active-low.
type InterlockConfig struct {
	Enabled bool `yaml:"enabled"`
	Pin     int  `yaml:"pin"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
			Baud: 115200,
		},
		CAN: CANConfig{
			Interface: "can0",
			ID:        1,
		},
		Control: ControlConfig{
			Interval: 10 * time.Millisecond,
			Dialect:  command.Extended.Name,
		},
		Interlock: InterlockConfig{
			Enabled: false,
			Pin:     17,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first thing wrong with the configuration. Unlike the
// wire protocol, a bad config file is a human mistake and deserves an error.
func (c *Config) Validate() error {
	if c.Serial.Port == "" {
		return fmt.Errorf("serial port must not be empty")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("baud rate %d must be positive", c.Serial.Baud)
	}
	if c.CAN.Interface == "" {
		return fmt.Errorf("can interface must not be empty")
	}
	if c.CAN.ID < command.MinBusID || c.CAN.ID > command.MaxBusID {
		return fmt.Errorf("can id %d out of range [%d, %d]", c.CAN.ID, command.MinBusID, command.MaxBusID)
	}
	if c.Control.Interval <= 0 {
		return fmt.Errorf("control interval %s must be positive", c.Control.Interval)
	}
	if _, err := command.DialectByName(c.Control.Dialect); err != nil {
		return err
	}
	if c.Interlock.Enabled && c.Interlock.Pin < 0 {
		return fmt.Errorf("interlock pin %d must not be negative", c.Interlock.Pin)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.CAN.Interface == "" {
		c.CAN.Interface = def.CAN.Interface
	}
	if c.CAN.ID == 0 {
		c.CAN.ID = def.CAN.ID
	}

	if c.Control.Interval == 0 {
		c.Control.Interval = def.Control.Interval
	}
	if c.Control.Dialect == "" {
		c.Control.Dialect = def.Control.Dialect
	}

	if c.Interlock.Pin == 0 {
		c.Interlock.Pin = def.Interlock.Pin
	}
}
