// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"

	"github.com/walteh/csvcol/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Replacement overwrites every value of Column with Value.
type Replacement struct {
	Column string `json:"column" yaml:"column" hcl:"column,label"`
	Value  string `json:"value" yaml:"value" hcl:"value"`
}

// 📄 FileConfig is what a config file may contribute to a run.
type FileConfig struct {
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacement,block"`
	StrictHeader bool          `json:"strict_header,omitempty" yaml:"strict_header,omitempty" hcl:"strict_header,optional"`
}

// 📚 Config is the complete description of one run.
type Config struct {
	Input       string // CSV file to read
	Column      string // column named on the command line
	Replacement string // value written into Column
	Output      string // CSV file to write

	FileConfig

	location string
}

// 🏭 FromArgs builds a config from the four positional arguments:
// input, column, replacement and output.
func FromArgs(args []string) (*Config, error) {
	if len(args) != 4 {
		return nil, errors.Errorf("expected 4 arguments, got %d", len(args))
	}
	return &Config{
		Input:       args[0],
		Column:      args[1],
		Replacement: args[2],
		Output:      args[3],
	}, nil
}

// Merge appends the file's replacements after the positional one and
// adopts its header mode.
func (cfg *Config) Merge(fc *FileConfig, location string) {
	if fc == nil {
		return
	}
	cfg.Replacements = append(cfg.Replacements, fc.Replacements...)
	cfg.StrictHeader = cfg.StrictHeader || fc.StrictHeader
	cfg.location = location
}

// Location is the config file the run was merged with, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// Rules lists every replacement, positional column first.
func (cfg *Config) Rules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Replacements)+1)
	rules = append(rules, text.ReplacementRule{Column: cfg.Column, Value: cfg.Replacement})
	for _, r := range cfg.Replacements {
		rules = append(rules, text.ReplacementRule{Column: r.Column, Value: r.Value})
	}
	return rules
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Input == "" {
		return errors.Errorf("input path is required")
	}
	if cfg.Output == "" {
		return errors.Errorf("output path is required")
	}
	for i, r := range cfg.Replacements {
		if r.Column == "" {
			return errors.Errorf("replacement %d: column is required", i)
		}
	}
	if err := text.ValidateRules(cfg.Rules()); err != nil {
		return errors.Errorf("validating replacements: %w", err)
	}

	cfg.Input = filepath.Clean(cfg.Input)
	cfg.Output = filepath.Clean(cfg.Output)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s[%s=%q] -> %s", cfg.Input, cfg.Column, cfg.Replacement, cfg.Output)
	if n := len(cfg.Replacements); n > 0 {
		s += fmt.Sprintf(" (+%d from %s)", n, cfg.location)
	}
	return s
}
