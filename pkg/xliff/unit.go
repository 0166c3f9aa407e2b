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

package xliff

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// 🔗 TMSMetadata links a translation unit back to its segment in an online
// translation management system.
type TMSMetadata struct {
	Type string `json:"tms_type"` // "lingotek" or "phrase"
	URL  string `json:"url"`
}

// 🧩 TransUnit is one translatable segment: a source, an optional target, and
// a reference to the trans-unit element it belongs to.
type TransUnit struct {
	ID      string
	TMS     *TMSMetadata
	source  *etree.Element
	target  *etree.Element
	element *etree.Element
}

// Formatting wrappers stripped from segment text. SDLXLIFF wraps segments in
// <mrk> and groups runs in <g>; neither is content.
var (
	mrkOpenTag = regexp.MustCompile(`<mrk\s+[^>]*>`)
	gOpenTag   = regexp.MustCompile(`<g\s+[^>]*>`)
)

// SourceText returns the source segment with inline tags preserved.
func (tu *TransUnit) SourceText() string {
	return innerMarkup(tu.source)
}

// TargetText returns the target segment with inline tags preserved, or ""
// when the unit has no target.
func (tu *TransUnit) TargetText() string {
	if tu.target == nil {
		return ""
	}
	return innerMarkup(tu.target)
}

// HasTarget reports whether the unit has a target element.
func (tu *TransUnit) HasTarget() bool {
	return tu.target != nil
}

// SetTargetText replaces the target content with text, reparsing it so
// inline tags become real elements again. Text that fails to parse as a
// fragment is kept as plain character data.
func (tu *TransUnit) SetTargetText(text string) {
	if tu.target == nil {
		tu.target = tu.element.CreateElement("target")
	}

	tu.target.Child = nil

	frag := etree.NewDocument()
	if err := frag.ReadFromString("<t>" + text + "</t>"); err != nil || frag.Root() == nil {
		tu.target.SetText(text)
		return
	}

	toks := append([]etree.Token(nil), frag.Root().Child...)
	for _, tok := range toks {
		tu.target.AddChild(tok)
	}
}

// innerMarkup serializes el's content, tags included, without el's own
// open/close tags, and with formatting wrappers stripped.
func innerMarkup(el *etree.Element) string {
	if el == nil {
		return ""
	}

	tmp := etree.NewDocument()
	tmp.SetRoot(el.Copy())
	serialized, err := tmp.WriteToString()
	if err != nil {
		return ""
	}
	serialized = strings.TrimRight(serialized, "\n")

	openEnd := strings.Index(serialized, ">")
	closeStart := strings.LastIndex(serialized, "</"+el.Tag+">")
	if el.Space != "" {
		closeStart = strings.LastIndex(serialized, "</"+el.Space+":"+el.Tag+">")
	}
	if openEnd < 0 || closeStart <= openEnd {
		// Self-closed element: no content.
		return ""
	}
	inner := serialized[openEnd+1 : closeStart]

	inner = mrkOpenTag.ReplaceAllString(inner, "")
	inner = strings.ReplaceAll(inner, "</mrk>", "")
	inner = gOpenTag.ReplaceAllString(inner, "")
	inner = strings.ReplaceAll(inner, "</g>", "")

	return inner
}
