// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads inference settings from a YAML file named seqinfer.yaml or
// .seqinfer.yaml, searched for in the working directory and its parents.
package config

import (
	"os"
	"path/filepath"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/seqinfer"
	"github.com/wdamron/seqinfer/types"
)

// Config is the configuration file structure. All fields are optional.
type Config struct {
	// DefaultDType is the element type name of empty sequences without a dtype attribute, e.g. "f32".
	DefaultDType string `yaml:"defaultDType,omitempty"`

	// MaxIterations bounds inference passes and loop body iterations.
	MaxIterations int `yaml:"maxIterations,omitempty"`
}

// FileNames are the names searched for config files, in order of preference.
var FileNames = []string{
	"seqinfer.yaml",
	".seqinfer.yaml",
}

// Find searches for a config file starting from dir and walking up to parent directories.
// It returns nil and an empty path if no config file is found.
func Find(dir string) (*Config, string, error) {
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads and checks the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Check(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &cfg, nil
}

// Check reports invalid settings.
func (c *Config) Check() error {
	if c.MaxIterations < 0 {
		return errors.Errorf("maxIterations must not be negative, found %d", c.MaxIterations)
	}
	if c.DefaultDType != "" {
		if _, err := ResolveDType(c.DefaultDType); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDType parses an element type name ("f32", "i64", ...).
func ResolveDType(name string) (dtypes.DType, error) {
	dtype, ok := types.ParseDType(name)
	if !ok {
		return dtypes.InvalidDType, errors.Errorf("unknown element type %q", name)
	}
	return dtype, nil
}

// Overrides holds settings given on the command line. Zero values are unset.
type Overrides struct {
	DefaultDType  string
	MaxIterations int
}

// Options merges c with overrides and returns the matching inference options. Overrides take
// precedence. A nil config contributes no settings.
func (c *Config) Options(overrides Overrides) ([]seqinfer.Option, error) {
	var merged Config
	if c != nil {
		merged = *c
	}
	if overrides.DefaultDType != "" {
		merged.DefaultDType = overrides.DefaultDType
	}
	if overrides.MaxIterations != 0 {
		merged.MaxIterations = overrides.MaxIterations
	}
	if err := merged.Check(); err != nil {
		return nil, err
	}

	var opts []seqinfer.Option
	if merged.DefaultDType != "" {
		dtype, _ := ResolveDType(merged.DefaultDType)
		opts = append(opts, seqinfer.WithDefaultDType(dtype))
	}
	if merged.MaxIterations > 0 {
		opts = append(opts, seqinfer.WithMaxIterations(merged.MaxIterations))
	}
	return opts, nil
}
