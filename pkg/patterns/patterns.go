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

// Package patterns manages a library of reusable regex patterns for
// translation QA, mixing a built-in set with custom patterns persisted as
// JSON. Built-ins mirror the checks common CAT QA tools ship with.
package patterns

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🧰 Pattern is one library entry: a regex with replacement and metadata.
type Pattern struct {
	Name          string   `json:"name"`
	Pattern       string   `json:"pattern"`
	Replacement   string   `json:"replacement"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	CaseSensitive bool     `json:"case_sensitive"`
	Enabled       bool     `json:"enabled"`
	Tags          []string `json:"tags"`
}

// 📚 Library holds built-in and custom patterns. Custom patterns loaded from
// disk override built-ins with the same name.
type Library struct {
	path     string
	patterns []Pattern
}

// libraryFile is the on-disk shape of a saved library.
type libraryFile struct {
	Patterns []Pattern `json:"patterns"`
}

// DefaultPath is the pattern library location used when the config does not
// set one.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".xliffqa", "patterns.json")
	}
	return filepath.Join(home, ".xliffqa", "patterns.json")
}

// NewLibrary creates a library seeded with the built-in patterns. path is
// where custom patterns are loaded from and saved to.
func NewLibrary(path string) *Library {
	if path == "" {
		path = DefaultPath()
	}
	return &Library{
		path:     path,
		patterns: builtinPatterns(),
	}
}

// LoadCustom merges custom patterns from the library file, replacing any
// existing pattern with the same name. A missing file is not an error.
func (l *Library) LoadCustom() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf("reading pattern library: %w", err)
	}

	var file libraryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.Errorf("parsing pattern library: %w", err)
	}

	for _, p := range file.Patterns {
		l.upsert(p)
	}
	return nil
}

// Save writes all patterns to the library file, creating the directory if
// needed.
func (l *Library) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errors.Errorf("creating library directory: %w", err)
	}

	data, err := json.MarshalIndent(libraryFile{Patterns: l.patterns}, "", "  ")
	if err != nil {
		return errors.Errorf("encoding pattern library: %w", err)
	}

	if err := os.WriteFile(l.path, append(data, '\n'), 0o644); err != nil {
		return errors.Errorf("writing pattern library: %w", err)
	}
	return nil
}

// Add appends a new pattern; names must be unique.
func (l *Library) Add(p Pattern) error {
	if l.ByName(p.Name) != nil {
		return errors.Errorf("pattern %q already exists", p.Name)
	}
	l.patterns = append(l.patterns, p)
	return nil
}

// Remove deletes the pattern with the given name. Returns false if no such
// pattern exists.
func (l *Library) Remove(name string) bool {
	for i, p := range l.patterns {
		if p.Name == name {
			l.patterns = append(l.patterns[:i], l.patterns[i+1:]...)
			return true
		}
	}
	return false
}

// ByName returns the pattern with the given name, or nil.
func (l *Library) ByName(name string) *Pattern {
	for i := range l.patterns {
		if l.patterns[i].Name == name {
			return &l.patterns[i]
		}
	}
	return nil
}

// Filter lists patterns, optionally restricted by category, tag, or enabled
// state. Empty category/tag mean no restriction.
func (l *Library) Filter(category, tag string, enabledOnly bool) []Pattern {
	var out []Pattern
	for _, p := range l.patterns {
		if category != "" && p.Category != category {
			continue
		}
		if tag != "" && !hasTag(p, tag) {
			continue
		}
		if enabledOnly && !p.Enabled {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Search matches query case-insensitively against name, description, and
// tags.
func (l *Library) Search(query string) []Pattern {
	query = strings.ToLower(query)
	var out []Pattern
	for _, p := range l.patterns {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
			continue
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Categories returns the sorted set of categories in use.
func (l *Library) Categories() []string {
	seen := map[string]bool{}
	for _, p := range l.patterns {
		seen[p.Category] = true
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Tags returns the sorted set of tags in use.
func (l *Library) Tags() []string {
	seen := map[string]bool{}
	for _, p := range l.patterns {
		for _, tag := range p.Tags {
			seen[tag] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// All returns every pattern in the library.
func (l *Library) All() []Pattern {
	return l.patterns
}

func (l *Library) upsert(p Pattern) {
	for i := range l.patterns {
		if l.patterns[i].Name == p.Name {
			l.patterns[i] = p
			return
		}
	}
	l.patterns = append(l.patterns, p)
}

func hasTag(p Pattern, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
