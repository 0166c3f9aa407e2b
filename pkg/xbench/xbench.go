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

// Package xbench imports Xbench checklist files (.xbckl). Checklists are XML
// documents of QA check definitions whose regex patterns can be reused for
// find/replace runs. The element vocabulary varies between Xbench versions,
// so field lookup tries a list of known spellings.
package xbench

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/patterns"
)

// Item is one checklist entry.
type Item struct {
	ID             string
	Name           string
	SearchText     string
	ReplaceText    string
	IsRegex        bool
	CaseSensitive  bool
	SearchInSource bool
	SearchInTarget bool
	Enabled        bool
	Category       string
	Description    string
}

// Checklist is a parsed .xbckl file.
type Checklist struct {
	Name  string
	Items []Item
}

// Stats summarizes a checklist.
type Stats struct {
	Total           int `json:"total_items"`
	Regex           int `json:"regex_items"`
	Enabled         int `json:"enabled_items"`
	WithReplacement int `json:"with_replacement"`
}

var itemTags = []string{"ChecklistItem", "PowerSearchItem", "Item", "QAItem"}

var (
	nameTags        = []string{"Name", "Description", "Text"}
	searchTags      = []string{"SearchText", "Search", "Pattern", "FindText", "SourceText"}
	replaceTags     = []string{"ReplaceText", "Replace", "Replacement", "TargetText"}
	regexTags       = []string{"IsRegEx", "IsRegex", "RegEx", "UseRegex", "RegularExpression"}
	caseTags        = []string{"CaseSensitive", "MatchCase", "CaseMatching"}
	sourceTags      = []string{"SearchInSource", "CheckSource", "Source"}
	targetTags      = []string{"SearchInTarget", "CheckTarget", "Target"}
	enabledTags     = []string{"Enabled", "Active", "IsEnabled"}
	categoryTags    = []string{"Category", "Group", "Type"}
	descriptionTags = []string{"Description", "Comment", "Notes", "Help"}
)

// Load parses the checklist at path.
func Load(ctx context.Context, path string) (*Checklist, error) {
	logger := zerolog.Ctx(ctx)

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Errorf("reading checklist: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.Errorf("checklist %q has no root element", path)
	}

	checklist := &Checklist{}
	if name := findDescendant(root, "ChecklistName"); name != nil {
		checklist.Name = strings.TrimSpace(name.Text())
	}

	for _, tag := range itemTags {
		for _, el := range descendants(root, tag) {
			if item, ok := parseItem(el, len(checklist.Items)); ok {
				checklist.Items = append(checklist.Items, item)
			}
		}
	}

	logger.Debug().Str("path", path).Int("items", len(checklist.Items)).Msg("checklist parsed")
	return checklist, nil
}

// RegexItems returns the items flagged as regular expressions.
func (c *Checklist) RegexItems() []Item {
	var out []Item
	for _, item := range c.Items {
		if item.IsRegex {
			out = append(out, item)
		}
	}
	return out
}

// EnabledItems returns the items not switched off.
func (c *Checklist) EnabledItems() []Item {
	var out []Item
	for _, item := range c.Items {
		if item.Enabled {
			out = append(out, item)
		}
	}
	return out
}

// ItemsByCategory returns the items whose category matches, case insensitive.
func (c *Checklist) ItemsByCategory(category string) []Item {
	var out []Item
	for _, item := range c.Items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

// ExportPatterns converts enabled regex items into library patterns.
func (c *Checklist) ExportPatterns() []patterns.Pattern {
	var out []patterns.Pattern
	for _, item := range c.EnabledItems() {
		if !item.IsRegex {
			continue
		}
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		tags := []string{"xbench"}
		if item.ReplaceText == "" {
			tags = append(tags, "search-only")
		}
		out = append(out, patterns.Pattern{
			Name:        item.Name,
			Pattern:     item.SearchText,
			Replacement: item.ReplaceText,
			Description: item.Description,
			Category:    category,
			Enabled:     true,
			Tags:        tags,
		})
	}
	return out
}

// Statistics summarizes the checklist contents.
func (c *Checklist) Statistics() Stats {
	stats := Stats{Total: len(c.Items)}
	for _, item := range c.Items {
		if item.IsRegex {
			stats.Regex++
		}
		if item.Enabled {
			stats.Enabled++
		}
		if item.ReplaceText != "" {
			stats.WithReplacement++
		}
	}
	return stats
}

// parseItem reads one item element. Items without a search text are skipped.
func parseItem(el *etree.Element, index int) (Item, bool) {
	search := textField(el, searchTags)
	if search == "" {
		return Item{}, false
	}

	id := el.SelectAttrValue("id", el.SelectAttrValue("ID", ""))
	if id == "" {
		id = fmt.Sprintf("item_%d", index)
	}

	name := textField(el, nameTags)
	if name == "" {
		name = "Unnamed Item"
	}

	return Item{
		ID:             id,
		Name:           name,
		SearchText:     search,
		ReplaceText:    rawTextField(el, replaceTags),
		IsRegex:        boolField(el, regexTags, false),
		CaseSensitive:  boolField(el, caseTags, false),
		SearchInSource: boolField(el, sourceTags, true),
		SearchInTarget: boolField(el, targetTags, true),
		Enabled:        boolField(el, enabledTags, true),
		Category:       textField(el, categoryTags),
		Description:    textField(el, descriptionTags),
	}, true
}

// textField returns the first non-empty value among the given spellings,
// checking child elements before attributes.
func textField(el *etree.Element, tags []string) string {
	for _, tag := range tags {
		if child := findDescendant(el, tag); child != nil {
			if text := strings.TrimSpace(child.Text()); text != "" {
				return text
			}
		}
		if attr := el.SelectAttrValue(tag, ""); attr != "" {
			return strings.TrimSpace(attr)
		}
	}
	return ""
}

// rawTextField is textField without the trimming: a replacement of a single
// space is a meaningful value and must survive verbatim.
func rawTextField(el *etree.Element, tags []string) string {
	for _, tag := range tags {
		if child := findDescendant(el, tag); child != nil {
			if text := child.Text(); text != "" {
				return text
			}
		}
		if attr := el.SelectAttrValue(tag, ""); attr != "" {
			return attr
		}
	}
	return ""
}

func boolField(el *etree.Element, tags []string, defaultValue bool) bool {
	for _, tag := range tags {
		if child := findDescendant(el, tag); child != nil {
			return isTruthy(child.Text())
		}
		if attr := el.SelectAttrValue(tag, ""); attr != "" {
			return isTruthy(attr)
		}
	}
	return defaultValue
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// findDescendant returns the first descendant with the given local tag, at
// any depth.
func findDescendant(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// descendants collects every descendant with the given local tag.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
		out = append(out, descendants(child, tag)...)
	}
	return out
}
