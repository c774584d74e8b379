package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, "can0", cfg.CAN.Interface)
	assert.Equal(t, 1, cfg.CAN.ID)
	assert.Equal(t, 10*time.Millisecond, cfg.Control.Interval)
	assert.Equal(t, "extended", cfg.Control.Dialect)
	assert.False(t, cfg.Interlock.Enabled)
	assert.Equal(t, 17, cfg.Interlock.Pin)

	require.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyUSB1"
  baud: 9600

can:
  interface: vcan0
  id: 3

control:
  interval: 20ms
  dialect: basic

interlock:
  enabled: true
  pin: 22
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, "vcan0", cfg.CAN.Interface)
	assert.Equal(t, 3, cfg.CAN.ID)
	assert.Equal(t, 20*time.Millisecond, cfg.Control.Interval)
	assert.Equal(t, "basic", cfg.Control.Dialect)
	assert.True(t, cfg.Interlock.Enabled)
	assert.Equal(t, 22, cfg.Interlock.Pin)

	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyUSB0"
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, "can0", cfg.CAN.Interface)
	assert.Equal(t, 1, cfg.CAN.ID)
	assert.Equal(t, 10*time.Millisecond, cfg.Control.Interval)
	assert.Equal(t, "extended", cfg.Control.Dialect)
	assert.Equal(t, 17, cfg.Interlock.Pin)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.CAN.ID = 2

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, 2, loaded.CAN.ID)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Serial.Port = "" },
			wantErr: true,
		},
		{
			name:    "zero baud",
			mutate:  func(c *Config) { c.Serial.Baud = 0 },
			wantErr: true,
		},
		{
			name:    "negative baud",
			mutate:  func(c *Config) { c.Serial.Baud = -1 },
			wantErr: true,
		},
		{
			name:    "empty can interface",
			mutate:  func(c *Config) { c.CAN.Interface = "" },
			wantErr: true,
		},
		{
			name:   "can id upper bound",
			mutate: func(c *Config) { c.CAN.ID = 4 },
		},
		{
			name:    "can id zero",
			mutate:  func(c *Config) { c.CAN.ID = 0 },
			wantErr: true,
		},
		{
			name:    "can id above range",
			mutate:  func(c *Config) { c.CAN.ID = 5 },
			wantErr: true,
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Control.Interval = 0 },
			wantErr: true,
		},
		{
			name:   "basic dialect",
			mutate: func(c *Config) { c.Control.Dialect = "basic" },
		},
		{
			name:    "unknown dialect",
			mutate:  func(c *Config) { c.Control.Dialect = "fancy" },
			wantErr: true,
		},
		{
			name:    "negative pin with interlock enabled",
			mutate:  func(c *Config) { c.Interlock.Enabled = true; c.Interlock.Pin = -1 },
			wantErr: true,
		},
		{
			name:   "negative pin with interlock disabled",
			mutate: func(c *Config) { c.Interlock.Pin = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
