// Copyright 2025 xliffkit LLC
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

// Package config loads tool configuration from YAML or HCL files. Parsers
// self-register and are selected by file extension.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/xliffkit/xliffqa/pkg/engine"
)

// DefaultFile is looked up in the working directory when no config flag is
// given.
const DefaultFile = ".xliffqa.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ⚙️ EngineArgs selects the regex backend and match defaults.
type EngineArgs struct {
	Backend         string `json:"backend" yaml:"backend"`                   // "standard" or "backtrack"
	CaseSensitive   bool   `json:"case_sensitive" yaml:"case_sensitive"`     // Default case sensitivity
	IncludeTags     bool   `json:"include_tags" yaml:"include_tags"`         // Match across inline tags instead of around them
	MaxReplacements int    `json:"max_replacements" yaml:"max_replacements"` // Total cap per target, 0 means unlimited
}

// 💾 BackupArgs controls where backups go and how many to keep.
type BackupArgs struct {
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"` // Empty means next to the original
	Keep    int    `json:"keep" yaml:"keep"`
	Disable bool   `json:"disable,omitempty" yaml:"disable,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Engine      EngineArgs `json:"engine" yaml:"engine"`
	Backup      BackupArgs `json:"backup" yaml:"backup"`
	PatternFile string     `json:"pattern_file,omitempty" yaml:"pattern_file,omitempty"`
	ProfileDir  string     `json:"profile_dir,omitempty" yaml:"profile_dir,omitempty"`
	Async       bool       `json:"async,omitempty" yaml:"async,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Engine: EngineArgs{
			Backend:       string(engine.BackendBacktrack),
			CaseSensitive: true,
		},
		Backup: BackupArgs{Keep: 10},
		Async:  true,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default
// otherwise. A missing explicit path is still an error; only the default
// lookup is allowed to be absent.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" || path == DefaultFile {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}
	return Load(ctx, path)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.Engine.Backend == "" {
		cfg.Engine.Backend = string(engine.BackendBacktrack)
	}
	if cfg.Backup.Keep <= 0 {
		cfg.Backup.Keep = 10
	}

	switch engine.Backend(cfg.Engine.Backend) {
	case engine.BackendStandard, engine.BackendBacktrack:
	default:
		return errors.Errorf("engine.backend must be %q or %q, got %q",
			engine.BackendStandard, engine.BackendBacktrack, cfg.Engine.Backend)
	}

	if cfg.Engine.MaxReplacements < 0 {
		return errors.Errorf("engine.max_replacements must not be negative")
	}

	// Clean up paths
	if cfg.Backup.Dir != "" {
		cfg.Backup.Dir = filepath.Clean(cfg.Backup.Dir)
	}
	if cfg.PatternFile != "" {
		cfg.PatternFile = filepath.Clean(cfg.PatternFile)
	}
	if cfg.ProfileDir != "" {
		cfg.ProfileDir = filepath.Clean(cfg.ProfileDir)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("engine=%s backup.keep=%d async=%t", cfg.Engine.Backend, cfg.Backup.Keep, cfg.Async)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// HCL schema with blocks for the nested sections
	type hclConfig struct {
		Engine *struct {
			Backend         string `hcl:"backend,optional"`
			CaseSensitive   bool   `hcl:"case_sensitive,optional"`
			IncludeTags     bool   `hcl:"include_tags,optional"`
			MaxReplacements int    `hcl:"max_replacements,optional"`
		} `hcl:"engine,block"`
		Backup *struct {
			Dir     string `hcl:"dir,optional"`
			Keep    int    `hcl:"keep,optional"`
			Disable bool   `hcl:"disable,optional"`
		} `hcl:"backup,block"`
		PatternFile string `hcl:"pattern_file,optional"`
		ProfileDir  string `hcl:"profile_dir,optional"`
		Async       bool   `hcl:"async,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		PatternFile: hclCfg.PatternFile,
		ProfileDir:  hclCfg.ProfileDir,
		Async:       hclCfg.Async,
	}
	if hclCfg.Engine != nil {
		cfg.Engine = EngineArgs{
			Backend:         hclCfg.Engine.Backend,
			CaseSensitive:   hclCfg.Engine.CaseSensitive,
			IncludeTags:     hclCfg.Engine.IncludeTags,
			MaxReplacements: hclCfg.Engine.MaxReplacements,
		}
	}
	if hclCfg.Backup != nil {
		cfg.Backup = BackupArgs{
			Dir:     hclCfg.Backup.Dir,
			Keep:    hclCfg.Backup.Keep,
			Disable: hclCfg.Backup.Disable,
		}
	}

	return cfg, nil
}
