// internal/config/config.go

// Package config loads settings for the host tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var rawDefault []byte

var ErrInvalid = errors.New("invalid configuration")

// Config is the top-level document.
type Config struct {
	Port Port `yaml:"port"`
	Sim  Sim  `yaml:"sim"`
}

// Port selects the host serial device wired to the board's console UART.
type Port struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"readTimeout"`
}

// Sim is a register simulator scenario.
type Sim struct {
	TxComplete   bool   `yaml:"txComplete"`
	TxDrainReads int    `yaml:"txDrainReads"`
	RxLatency    int    `yaml:"rxLatency"`
	RxData       string `yaml:"rxData"`
	Global       uint32 `yaml:"global"`
}

// Default returns the embedded defaults.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(rawDefault, &c); err != nil {
		panic(err)
	}
	return c
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := Parse(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes raw into c, keeping fields raw does not mention, and
// validates the result.
func Parse(raw []byte, c *Config) error {
	if err := yaml.Unmarshal(raw, c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Port.Baud <= 0:
		return fmt.Errorf("%w: port.baud %d", ErrInvalid, c.Port.Baud)
	case c.Port.ReadTimeout < 0:
		return fmt.Errorf("%w: port.readTimeout %v", ErrInvalid, c.Port.ReadTimeout)
	case c.Sim.TxDrainReads < 0:
		return fmt.Errorf("%w: sim.txDrainReads %d", ErrInvalid, c.Sim.TxDrainReads)
	case c.Sim.RxLatency < 0:
		return fmt.Errorf("%w: sim.rxLatency %d", ErrInvalid, c.Sim.RxLatency)
	}
	return nil
}
