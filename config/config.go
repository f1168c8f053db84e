/*
File    : yalc/config/config.go
Package : config
*/

// Package config holds the small set of knobs the compiler driver needs
// that aren't part of the language itself: where the external mixasm/
// mixvm binaries live, where generated .mixal files are written, and
// whether diagnostics should be colored.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the compiler's runtime configuration, loadable from a YAML
// file or used as-is via Default.
type Config struct {
	AssemblerPath string `yaml:"assembler_path"`
	VMPath        string `yaml:"vm_path"`
	OutputDir     string `yaml:"output_dir"`
	Color         bool   `yaml:"color"`
}

// Default returns the configuration used when no config file is given:
// both external tools are resolved from PATH, generated files are
// written alongside the source, and colored diagnostics are on.
func Default() Config {
	return Config{
		AssemblerPath: "mixasm",
		VMPath:        "mixvm",
		OutputDir:     "",
		Color:         true,
	}
}

// Load reads a YAML config file at path, overlaying it onto Default;
// any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
