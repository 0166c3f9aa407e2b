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

// Package xliff reads and writes XLIFF translation files while preserving
// document structure. It supports XLIFF 1.2, MXLIFF (Phrase), MQXLIFF (MemoQ)
// and SDLXLIFF (Trados), including SDLXLIFF mrk sub-segment splitting. The
// package hands segment text (with inline markup intact) to callers and
// writes replacement text back into the underlying tree; everything between
// stays untouched on save.
package xliff

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// supportedExtensions are the file extensions this package will open.
var supportedExtensions = map[string]bool{
	".xliff":    true,
	".xlf":      true,
	".mxliff":   true,
	".mqxliff":  true,
	".sdlxliff": true,
}

// IsSupported reports whether path has a recognized XLIFF extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// 📊 Stats summarizes a parsed document.
type Stats struct {
	TotalUnits   int `json:"total_units"`
	Translated   int `json:"translated"`
	Untranslated int `json:"untranslated"`
}

// 📄 Document is a parsed XLIFF file plus its extracted translation units.
type Document struct {
	path         string
	doc          *etree.Document
	units        []*TransUnit
	phraseJobUID string
}

// Open parses the XLIFF file at path and extracts its translation units.
func Open(ctx context.Context, path string) (*Document, error) {
	logger := zerolog.Ctx(ctx)

	if !IsSupported(path) {
		return nil, errors.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Errorf("parsing XLIFF file: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.Errorf("parsing XLIFF file: no root element")
	}

	d := &Document{path: path, doc: doc}
	d.extractPhraseJobUID(root)

	for _, tuEl := range findAllByTag(root, "trans-unit") {
		d.units = append(d.units, d.parseTransUnit(tuEl)...)
	}

	logger.Debug().Str("path", path).Int("units", len(d.units)).Msg("parsed XLIFF document")
	return d, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Units returns the translation units in document order.
func (d *Document) Units() []*TransUnit {
	return d.units
}

// Stats returns unit counts for the document.
func (d *Document) Stats() Stats {
	s := Stats{TotalUnits: len(d.units)}
	for _, tu := range d.units {
		if tu.HasTarget() {
			s.Translated++
		} else {
			s.Untranslated++
		}
	}
	return s
}

// Save writes the (possibly modified) document back to its original path.
func (d *Document) Save() error {
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path.
func (d *Document) SaveAs(path string) error {
	if err := d.doc.WriteToFile(path); err != nil {
		return errors.Errorf("saving XLIFF file: %w", err)
	}
	return nil
}

// extractPhraseJobUID pulls the Phrase/Memsource job UID off the file
// element, used later to synthesize per-segment editor URLs.
func (d *Document) extractPhraseJobUID(root *etree.Element) {
	files := findAllByTag(root, "file")
	if len(files) == 0 {
		return
	}
	for _, attr := range files[0].Attr {
		if strings.Contains(attr.Key, "job-uid") {
			d.phraseJobUID = attr.Value
			return
		}
	}
}

// parseTransUnit turns one trans-unit element into one or more TransUnits.
// SDLXLIFF files with <mrk mtype="seg"> sub-segments yield one TransUnit per
// mrk, keyed by its mid.
func (d *Document) parseTransUnit(tuEl *etree.Element) []*TransUnit {
	tms := d.extractTMSMetadata(tuEl)
	target := childByTag(tuEl, "target")

	if segSource := childByTag(tuEl, "seg-source"); segSource != nil {
		mrks := segMrks(segSource)
		if len(mrks) > 0 {
			var units []*TransUnit
			for _, mrk := range mrks {
				mid := mrk.SelectAttrValue("mid", "")
				if mid == "" {
					continue
				}

				var targetCopy *etree.Element
				if target != nil {
					if tmrk := mrkByMid(target, mid); tmrk != nil {
						targetCopy = unwrapMrk(target, tmrk)
					}
				}

				units = append(units, &TransUnit{
					ID:      mid,
					source:  unwrapMrk(segSource, mrk),
					target:  targetCopy,
					element: tuEl,
					TMS:     tms,
				})
			}
			return units
		}

		// SDLXLIFF without sub-segments: seg-source is the single segment.
		return []*TransUnit{{
			ID:      tuEl.SelectAttrValue("id", ""),
			source:  segSource,
			target:  target,
			element: tuEl,
			TMS:     tms,
		}}
	}

	source := childByTag(tuEl, "source")
	if source == nil {
		return nil
	}

	return []*TransUnit{{
		ID:      tuEl.SelectAttrValue("id", ""),
		source:  source,
		target:  target,
		element: tuEl,
		TMS:     tms,
	}}
}

// extractTMSMetadata reads per-unit TMS integration attributes: Lingotek
// task-segment URLs, or Phrase URLs synthesized from the file job-uid and the
// unit's para-id.
func (d *Document) extractTMSMetadata(tuEl *etree.Element) *TMSMetadata {
	for _, attr := range tuEl.Attr {
		if strings.Contains(attr.Key, "task-segment-url") {
			return &TMSMetadata{Type: "lingotek", URL: attr.Value}
		}
	}

	if d.phraseJobUID != "" {
		for _, attr := range tuEl.Attr {
			if strings.Contains(attr.Key, "para-id") {
				url := "https://cloud.memsource.com/web/job/" + d.phraseJobUID + "/translate#" + attr.Value
				return &TMSMetadata{Type: "phrase", URL: url}
			}
		}
	}

	return nil
}

// segMrks returns the <mrk mtype="seg"> descendants of el.
func segMrks(el *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, mrk := range findAllByTag(el, "mrk") {
		if mrk.SelectAttrValue("mtype", "") == "seg" {
			out = append(out, mrk)
		}
	}
	return out
}

// mrkByMid finds the <mrk> descendant of el with the given mid.
func mrkByMid(el *etree.Element, mid string) *etree.Element {
	for _, mrk := range findAllByTag(el, "mrk") {
		if mrk.SelectAttrValue("mid", "") == mid {
			return mrk
		}
	}
	return nil
}

// unwrapMrk builds a detached element with container's tag holding a deep
// copy of mrk's content, so a sub-segment can be treated as a standalone
// source/target.
func unwrapMrk(container, mrk *etree.Element) *etree.Element {
	el := etree.NewElement(container.Tag)
	el.Space = container.Space

	copied := mrk.Copy()
	toks := append([]etree.Token(nil), copied.Child...)
	for _, tok := range toks {
		el.AddChild(tok)
	}
	return el
}

// childByTag returns the first direct child of el with the given local tag,
// ignoring namespace prefixes.
func childByTag(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// findAllByTag returns every descendant of el with the given local tag, in
// document order, ignoring namespace prefixes.
func findAllByTag(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
		out = append(out, findAllByTag(child, tag)...)
	}
	return out
}
