// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read config file")
	// ErrParseConfig is returned when the configuration file is not valid YAML for a Sorter.
	ErrParseConfig = errors.New("failed to parse config file")
	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Sorter holds the file sorter settings that may be given in a YAML file.
// A nil field was not set in the file.
//
//	output_dir: sorted
//	workers: 16
//	strict: true
//	progress: false
type Sorter struct {
	OutputDir *string `yaml:"output_dir"`
	Workers   *int    `yaml:"workers"`
	Strict    *bool   `yaml:"strict"`
	Progress  *bool   `yaml:"progress"`
}

// LoadSorter reads and validates a Sorter definition from path on fs.
// Unknown keys are rejected so that typos do not pass silently.
func LoadSorter(fs afero.Fs, path string) (*Sorter, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadConfig, err)
	}

	return ParseSorter(data)
}

// ParseSorter parses and validates a Sorter definition.
func ParseSorter(data []byte) (*Sorter, error) {
	def := &Sorter{}
	if err := yaml.UnmarshalWithOptions(data, def, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
	}

	if def.Workers != nil && *def.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, *def.Workers)
	}

	if def.OutputDir != nil && *def.OutputDir == "" {
		return nil, fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}

	return def, nil
}
