// Package config loads the layout configuration.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	MarginsConfig struct {
		Top    int `yaml:"top" validate:"gte=0"`
		Right  int `yaml:"right" validate:"gte=0"`
		Bottom int `yaml:"bottom" validate:"gte=0"`
		Left   int `yaml:"left" validate:"gte=0"`
	}

	PageConfig struct {
		Width   int           `yaml:"width" validate:"gt=0"`
		Height  int           `yaml:"height" validate:"gt=0"`
		Margins MarginsConfig `yaml:"margins"`
	}

	LayoutConfig struct {
		Paginate        bool    `yaml:"paginate"`
		BreakAnywhere   bool    `yaml:"break_anywhere"`
		DefaultFontSize float64 `yaml:"default_font_size" validate:"gt=0"`
		CellAdvance     float64 `yaml:"cell_advance" validate:"gt=0"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Page    PageConfig    `yaml:"page"`
		Layout  LayoutConfig  `yaml:"layout"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// ContentSize returns the size of the page area left for the flow,
// once the margins are removed.
func (pc PageConfig) ContentSize() (width, height int) {
	return pc.Width - pc.Margins.Left - pc.Margins.Right, pc.Height - pc.Margins.Top - pc.Margins.Bottom
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only the fields defined above are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template and
// performs validation. An empty path returns the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Default returns the embedded configuration. It panics if the embedded
// template is invalid, which is a build defect.
func Default() *Config {
	cfg, err := LoadConfiguration("")
	if err != nil {
		panic(fmt.Sprintf("invalid embedded configuration: %s", err))
	}
	return cfg
}

// Parse decodes and validates [data] on top of the defaults.
func Parse(data []byte) (*Config, error) {
	return unmarshalConfig(data, Default(), true)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
