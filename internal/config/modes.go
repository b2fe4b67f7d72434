package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Mode describes one transit pipeline variant. Bus and metro share the same
// processing path and differ only in configuration.
type Mode struct {
	Name string `yaml:"name" validate:"required"`

	// SourceCRS is the coordinate system of the raw data; records are
	// converted to WGS84 at ingest
	SourceCRS string `yaml:"source_crs" validate:"required,oneof=wgs84 gcj02 bd09"`

	// ExcludedTypes filters out route_type values that belong to a
	// different transit system
	ExcludedTypes []string `yaml:"excluded_types"`

	// AggregationKey selects the segment grouping policy
	AggregationKey string `yaml:"aggregation_key" validate:"omitempty,oneof=directional undirected"`
}

// modesFile is the on-disk shape of modes.yml
type modesFile struct {
	Modes []Mode `yaml:"modes"`
}

// LoadModes reads and validates the pipeline mode configuration. When the
// file does not exist the built-in bus/metro defaults are returned.
func LoadModes(path string) ([]Mode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultModes(), nil
		}
		return nil, fmt.Errorf("failed to read modes config: %w", err)
	}

	var file modesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse modes config: %w", err)
	}
	if len(file.Modes) == 0 {
		return DefaultModes(), nil
	}

	v := validator.New()
	for i := range file.Modes {
		if err := v.Struct(file.Modes[i]); err != nil {
			return nil, fmt.Errorf("invalid mode %q: %w", file.Modes[i].Name, err)
		}
		if file.Modes[i].AggregationKey == "" {
			file.Modes[i].AggregationKey = "directional"
		}
	}

	return file.Modes, nil
}

// DefaultModes returns the built-in bus and metro pipeline configurations
func DefaultModes() []Mode {
	return []Mode{
		{
			Name:      "bus",
			SourceCRS: "gcj02",
			// Rail systems are collected alongside bus data and must be
			// filtered out of the bus pipeline
			ExcludedTypes:  []string{"地铁", "轻轨", "有轨电车", "磁悬浮列车"},
			AggregationKey: "directional",
		},
		{
			Name:           "metro",
			SourceCRS:      "gcj02",
			AggregationKey: "directional",
		},
	}
}

// FindMode returns the mode with the given name
func FindMode(modes []Mode, name string) (Mode, bool) {
	for _, m := range modes {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}
