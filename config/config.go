// Package config provides the configuration of the AXI4-Lite slave model and
// its test harness.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/axilite/regfile"
)

// DefaultPoisonValue is returned on the R channel for out-of-range reads.
const DefaultPoisonValue uint32 = 0xDEADBEEF

// SlaveConfig holds the parameters of a simulated slave.
type SlaveConfig struct {
	// Version is the constant the VERSION register is pinned to.
	// Default: 0x00010000.
	Version uint32 `json:"version"`

	// PoisonValue is the read data returned with SLVERR for addresses outside
	// the register window. Default: 0xDEADBEEF.
	PoisonValue uint32 `json:"poison_value"`

	// MaxTicks is the harness tick budget for a single transaction. A
	// transaction still active after this many ticks is reported as hung.
	// Default: 1000.
	MaxTicks uint64 `json:"max_ticks"`

	// FreqMHz is the clock frequency used when the model runs on an
	// event-driven engine. Default: 100 MHz.
	FreqMHz float64 `json:"freq_mhz"`
}

// DefaultSlaveConfig returns a SlaveConfig with default values.
func DefaultSlaveConfig() *SlaveConfig {
	return &SlaveConfig{
		Version:     regfile.DefaultVersion,
		PoisonValue: DefaultPoisonValue,
		MaxTicks:    1000,
		FreqMHz:     100,
	}
}

// LoadConfig loads a SlaveConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*SlaveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slave config file: %w", err)
	}

	config := DefaultSlaveConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse slave config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a SlaveConfig to a JSON file.
func (c *SlaveConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize slave config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write slave config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration values are usable.
func (c *SlaveConfig) Validate() error {
	if c.MaxTicks == 0 {
		return fmt.Errorf("max_ticks must be > 0")
	}
	if c.FreqMHz <= 0 {
		return fmt.Errorf("freq_mhz must be > 0")
	}
	if c.PoisonValue == 0 {
		return fmt.Errorf("poison_value must be non-zero")
	}
	return nil
}

// Clone returns a copy of the SlaveConfig.
func (c *SlaveConfig) Clone() *SlaveConfig {
	return &SlaveConfig{
		Version:     c.Version,
		PoisonValue: c.PoisonValue,
		MaxTicks:    c.MaxTicks,
		FreqMHz:     c.FreqMHz,
	}
}
