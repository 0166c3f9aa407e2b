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

package xbench

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChecklist = `<?xml version="1.0" encoding="UTF-8"?>
<Checklist>
  <ChecklistName>Norwegian QA</ChecklistName>
  <Items>
    <ChecklistItem id="c1">
      <Name>Double spaces</Name>
      <SearchText>\s{2,}</SearchText>
      <ReplaceText> </ReplaceText>
      <IsRegEx>true</IsRegEx>
      <CaseSensitive>false</CaseSensitive>
      <Category>Whitespace</Category>
    </ChecklistItem>
    <PowerSearchItem ID="p1" Enabled="false">
      <Description>Find TODO markers</Description>
      <Pattern>\bTODO\b</Pattern>
      <UseRegex>1</UseRegex>
    </PowerSearchItem>
    <Item>
      <Name>Literal phrase</Name>
      <Search>click here</Search>
      <MatchCase>yes</MatchCase>
    </Item>
    <QAItem id="q1">
      <Name>No pattern, skipped</Name>
    </QAItem>
  </Items>
</Checklist>`

func writeChecklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checks.xbckl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing fixture should succeed")
	return path
}

func testContext() context.Context {
	return zerolog.New(os.Stderr).WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	checklist, err := Load(testContext(), writeChecklist(t, sampleChecklist))
	require.NoError(t, err, "Load should succeed")

	assert.Equal(t, "Norwegian QA", checklist.Name, "checklist name should be read")
	require.Len(t, checklist.Items, 3, "the item without a search text is skipped")

	first := checklist.Items[0]
	assert.Equal(t, "c1", first.ID, "id attribute should be read")
	assert.Equal(t, "Double spaces", first.Name, "name should be read")
	assert.Equal(t, `\s{2,}`, first.SearchText, "search text should be read")
	assert.Equal(t, " ", first.ReplaceText, "replace text should be read")
	assert.True(t, first.IsRegex, "IsRegEx true should be honored")
	assert.False(t, first.CaseSensitive, "CaseSensitive false should be honored")
	assert.True(t, first.Enabled, "enabled defaults to true")
	assert.Equal(t, "Whitespace", first.Category, "category should be read")

	second := checklist.Items[1]
	assert.Equal(t, "p1", second.ID, "uppercase ID attribute should be read")
	assert.Equal(t, "Find TODO markers", second.Name, "description doubles as name")
	assert.True(t, second.IsRegex, "UseRegex=1 counts as true")
	assert.False(t, second.Enabled, "Enabled attribute false should be honored")

	third := checklist.Items[2]
	assert.Equal(t, "item_2", third.ID, "missing id gets a positional one")
	assert.False(t, third.IsRegex, "regex flag defaults to false")
	assert.True(t, third.CaseSensitive, "MatchCase=yes counts as true")
	assert.True(t, third.SearchInSource, "search-in-source defaults to true")
	assert.True(t, third.SearchInTarget, "search-in-target defaults to true")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(testContext(), filepath.Join(t.TempDir(), "missing.xbckl"))
	require.Error(t, err, "missing file should error")

	_, err = Load(testContext(), writeChecklist(t, "not xml at all <"))
	require.Error(t, err, "malformed XML should error")
}

func TestFilters(t *testing.T) {
	checklist, err := Load(testContext(), writeChecklist(t, sampleChecklist))
	require.NoError(t, err, "Load should succeed")

	regex := checklist.RegexItems()
	require.Len(t, regex, 2, "two items are regex")

	enabled := checklist.EnabledItems()
	require.Len(t, enabled, 2, "the disabled power search item is excluded")

	whitespace := checklist.ItemsByCategory("whitespace")
	require.Len(t, whitespace, 1, "category match is case insensitive")
	assert.Equal(t, "Double spaces", whitespace[0].Name, "category filter should match")
}

func TestExportPatterns(t *testing.T) {
	checklist, err := Load(testContext(), writeChecklist(t, sampleChecklist))
	require.NoError(t, err, "Load should succeed")

	exported := checklist.ExportPatterns()
	require.Len(t, exported, 1, "only enabled regex items are exported")

	p := exported[0]
	assert.Equal(t, "Double spaces", p.Name, "name carries over")
	assert.Equal(t, `\s{2,}`, p.Pattern, "pattern carries over")
	assert.Equal(t, " ", p.Replacement, "replacement carries over")
	assert.Equal(t, "Whitespace", p.Category, "category carries over")
	assert.Contains(t, p.Tags, "xbench", "imported patterns are tagged")
	assert.NotContains(t, p.Tags, "search-only", "items with a replacement are not search-only")
}

func TestStatistics(t *testing.T) {
	checklist, err := Load(testContext(), writeChecklist(t, sampleChecklist))
	require.NoError(t, err, "Load should succeed")

	stats := checklist.Statistics()
	assert.Equal(t, 3, stats.Total, "total items")
	assert.Equal(t, 2, stats.Regex, "regex items")
	assert.Equal(t, 2, stats.Enabled, "enabled items")
	assert.Equal(t, 1, stats.WithReplacement, "items carrying a replacement")
}
