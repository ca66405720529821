package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/netgrep/netgrep/lib/format"
	"github.com/netgrep/netgrep/lib/log"
)

type Config struct {
	General  *GeneralConfig   `toml:"general"`
	Networks []*NetworkSource `toml:"network" validate:"dive"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	Color        string `toml:"color" validate:"omitempty,oneof=auto always never"`
	OutputFormat string `toml:"output_format" validate:"omitempty,output_format"`
}

// NetworkSource is one target-network source: either a literal spec (the
// same grammar as the -n flag) or a file with one spec per line (the same
// as -N), never both.
type NetworkSource struct {
	Spec string `toml:"spec,omitempty" validate:"required_without=File,excluded_with=File"`
	File string `toml:"file,omitempty" validate:"required_without=Spec,excluded_with=Spec"`
}

func (n NetworkSource) Type() string {
	if n.File != "" {
		return "file"
	}
	return "spec"
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		General: &GeneralConfig{
			Color:        string(format.ModeAuto),
			OutputFormat: format.DefaultTemplate,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if config.General == nil {
		config.General = &GeneralConfig{}
	}
	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

// ColorMode returns the configured color mode, defaulting to auto.
func (c *Config) ColorMode() format.Mode {
	if c.General == nil || c.General.Color == "" {
		return format.ModeAuto
	}
	return format.Mode(c.General.Color)
}

// OutputFormat returns the configured output template, defaulting to
// format.DefaultTemplate.
func (c *Config) OutputFormat() string {
	if c.General == nil || c.General.OutputFormat == "" {
		return format.DefaultTemplate
	}
	return c.General.OutputFormat
}
