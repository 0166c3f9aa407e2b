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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return zerolog.New(os.Stderr).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing config fixture should succeed")
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
engine:
  backend: standard
  case_sensitive: false
  include_tags: true
  max_replacements: 5
backup:
  dir: backups
  keep: 3
pattern_file: my/patterns.json
profile_dir: profiles
async: true
`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "Load should succeed")

	assert.Equal(t, "standard", cfg.Engine.Backend, "backend should be read")
	assert.False(t, cfg.Engine.CaseSensitive, "case sensitivity should be read")
	assert.True(t, cfg.Engine.IncludeTags, "include_tags should be read")
	assert.Equal(t, 5, cfg.Engine.MaxReplacements, "max_replacements should be read")
	assert.Equal(t, "backups", cfg.Backup.Dir, "backup dir should be read")
	assert.Equal(t, 3, cfg.Backup.Keep, "keep count should be read")
	assert.Equal(t, filepath.Join("my", "patterns.json"), cfg.PatternFile, "pattern file should be cleaned")
	assert.True(t, cfg.Async, "async should be read")
}

func TestLoadYAMLUnknownField(t *testing.T) {
	path := writeConfig(t, "config.yaml", "enginee:\n  backend: standard\n")

	_, err := Load(testContext(), path)
	require.Error(t, err, "unknown fields should be rejected")
}

func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "config.hcl", `
engine {
  backend          = "backtrack"
  case_sensitive   = true
  max_replacements = 2
}

backup {
  keep = 7
}

async = false
`)

	cfg, err := Load(testContext(), path)
	require.NoError(t, err, "Load should succeed")

	assert.Equal(t, "backtrack", cfg.Engine.Backend, "backend should be read")
	assert.True(t, cfg.Engine.CaseSensitive, "case sensitivity should be read")
	assert.Equal(t, 2, cfg.Engine.MaxReplacements, "max_replacements should be read")
	assert.Equal(t, 7, cfg.Backup.Keep, "keep count should be read")
	assert.False(t, cfg.Async, "async should be read")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(testContext(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "missing file should error")

	_, err = Load(testContext(), writeConfig(t, "config.toml", "backend = 1"))
	require.Error(t, err, "unsupported extension should error")
	assert.Contains(t, err.Error(), "no parser found", "error should say no parser matched")

	_, err = Load(testContext(), writeConfig(t, "config.yaml", "engine:\n  backend: pcre\n"))
	require.Error(t, err, "invalid backend should fail validation")
	assert.Contains(t, err.Error(), "engine.backend", "error should name the field")
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate(), "empty config should validate with defaults")

	assert.Equal(t, "backtrack", cfg.Engine.Backend, "backend defaults to backtrack")
	assert.Equal(t, 10, cfg.Backup.Keep, "keep defaults to 10")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate(), "default config should validate")
	assert.True(t, cfg.Engine.CaseSensitive, "matching is case sensitive by default")
	assert.True(t, cfg.Async, "batch runs are concurrent by default")
}

func TestGetParser(t *testing.T) {
	assert.NotNil(t, GetParser("a.yaml"), "yaml parser should be registered")
	assert.NotNil(t, GetParser("a.yml"), "yml should map to the yaml parser")
	assert.NotNil(t, GetParser("a.hcl"), "hcl parser should be registered")
	assert.Nil(t, GetParser("a.ini"), "unknown extension should have no parser")
}
