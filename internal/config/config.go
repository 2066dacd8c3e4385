// Package config loads converter settings from YAML files and fills in
// the defaults used by the glyphcast command line tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"glyphcast"
)

// Config mirrors the command line flags of the glyphcast tools. Zero
// values are replaced by defaults in Default, so a config file only
// needs to list the settings it wants to change.
type Config struct {
	Font             string  `yaml:"font"`
	Alphabet         string  `yaml:"alphabet"`
	Width            int     `yaml:"width"`
	Metric           string  `yaml:"metric"`
	Threads          int     `yaml:"threads"`
	BrightnessOffset float64 `yaml:"brightness_offset"`
	NoiseScale       float64 `yaml:"noise_scale"`
	FPS              float64 `yaml:"fps"`
	NoEdgeDetection  bool    `yaml:"no_edge_detection"`
	Color            string  `yaml:"color"`
}

// Default returns the settings used when neither a config file nor a
// flag overrides them.
func Default() Config {
	return Config{
		Font:     glyphcast.DefaultFont,
		Alphabet: glyphcast.DefaultAlphabet,
		Width:    glyphcast.DefaultWidth,
		Metric:   glyphcast.DefaultMetric,
		Threads:  1,
		FPS:      glyphcast.DefaultFPS,
		Color:    "true",
	}
}

// Load reads a YAML config file and merges it over the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
