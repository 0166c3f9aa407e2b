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

package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(filepath.Join(t.TempDir(), "patterns.json"))
}

func TestBuiltins(t *testing.T) {
	lib := newTestLibrary(t)

	assert.NotEmpty(t, lib.All(), "library should ship with built-in patterns")
	assert.NotNil(t, lib.ByName("Multiple spaces"), "whitespace built-in should exist")
	assert.NotNil(t, lib.ByName("'teh' typo"), "typo built-in should exist")

	categories := lib.Categories()
	assert.Contains(t, categories, "Whitespace", "categories should include Whitespace")
	assert.Contains(t, categories, "Norwegian", "categories should include Norwegian")

	// Locale-conversion patterns ship disabled.
	quote := lib.ByName("Norwegian quotes (English style)")
	require.NotNil(t, quote, "quote pattern should exist")
	assert.False(t, quote.Enabled, "aggressive rewrites should be disabled by default")
}

func TestAddRemove(t *testing.T) {
	lib := newTestLibrary(t)

	custom := Pattern{
		Name:        "Project term",
		Pattern:     `\bcolor\b`,
		Replacement: "colour",
		Category:    "Custom",
		Enabled:     true,
		Tags:        []string{"terminology"},
	}

	require.NoError(t, lib.Add(custom), "adding a new pattern should succeed")
	assert.NotNil(t, lib.ByName("Project term"), "added pattern should be retrievable")

	err := lib.Add(custom)
	require.Error(t, err, "duplicate names should be rejected")
	assert.Contains(t, err.Error(), "already exists", "error should explain the conflict")

	assert.True(t, lib.Remove("Project term"), "removing an existing pattern should succeed")
	assert.Nil(t, lib.ByName("Project term"), "removed pattern should be gone")
	assert.False(t, lib.Remove("Project term"), "removing a missing pattern should report false")
}

func TestFilter(t *testing.T) {
	lib := newTestLibrary(t)

	whitespace := lib.Filter("Whitespace", "", false)
	require.NotEmpty(t, whitespace, "whitespace category should have patterns")
	for _, p := range whitespace {
		assert.Equal(t, "Whitespace", p.Category, "filter should restrict category")
	}

	searchOnly := lib.Filter("", "search-only", false)
	require.NotEmpty(t, searchOnly, "search-only tag should have patterns")
	for _, p := range searchOnly {
		assert.Contains(t, p.Tags, "search-only", "filter should restrict tag")
	}

	enabled := lib.Filter("", "", true)
	for _, p := range enabled {
		assert.True(t, p.Enabled, "enabled filter should exclude disabled patterns")
	}
	assert.Less(t, len(enabled), len(lib.All()), "some built-ins are disabled")
}

func TestSearch(t *testing.T) {
	lib := newTestLibrary(t)

	results := lib.Search("typo")
	require.NotEmpty(t, results, "search should find typo patterns")

	results = lib.Search("GUILLEMETS")
	require.Len(t, results, 1, "search should be case insensitive over descriptions")
	assert.Equal(t, "Norwegian quotes (English style)", results[0].Name, "description search should match")

	assert.Empty(t, lib.Search("no-such-thing-anywhere"), "unmatched query should return nothing")
}

func TestSaveLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "patterns.json")

	lib := NewLibrary(path)
	require.NoError(t, lib.Add(Pattern{
		Name:     "Custom check",
		Pattern:  `\bfoo\b`,
		Category: "Custom",
		Enabled:  true,
		Tags:     []string{"custom"},
	}), "adding custom pattern should succeed")
	require.NoError(t, lib.Save(), "Save should create directories and write")

	_, err := os.Stat(path)
	require.NoError(t, err, "library file should exist on disk")

	fresh := NewLibrary(path)
	assert.Nil(t, fresh.ByName("Custom check"), "fresh library has only built-ins before load")
	require.NoError(t, fresh.LoadCustom(), "LoadCustom should succeed")
	assert.NotNil(t, fresh.ByName("Custom check"), "custom pattern should load from disk")
}

func TestLoadCustomOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")

	require.NotNil(t, NewLibrary(path).ByName("Multiple spaces"), "built-in should exist")
	require.NoError(t, os.WriteFile(path, []byte(`{"patterns":[{"name":"Multiple spaces","pattern":"\\s{2,}","replacement":"__","category":"Whitespace","enabled":true,"tags":[]}]}`), 0o644), "writing override should succeed")

	fresh := NewLibrary(path)
	require.NoError(t, fresh.LoadCustom(), "LoadCustom should succeed")

	got := fresh.ByName("Multiple spaces")
	require.NotNil(t, got, "pattern should still exist")
	assert.Equal(t, "__", got.Replacement, "custom definition should override the built-in")
	assert.Len(t, fresh.Filter("Whitespace", "", false), len(NewLibrary(path).Filter("Whitespace", "", false)), "override should not duplicate the pattern")
}

func TestLoadCustomMissingFileIsFine(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, lib.LoadCustom(), "missing library file should not be an error")
}
