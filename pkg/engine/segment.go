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

package engine

import (
	"regexp"
	"strings"
)

// 🏷️ TagSpan is a recognized markup substring: its half-open byte range in
// the original string and the exact literal restored on reconstruction.
type TagSpan struct {
	Start   int    // byte offset of the first character of the tag
	End     int    // byte offset just past the tag
	Literal string // the tag substring, verbatim
}

// tagPattern recognizes inline markup at three escaping levels, longest
// alternative first at each position:
//  1. literal tags:        <b>, <ph id="1"/>
//  2. once-escaped tags:   &lt;b&gt; (entity references allowed inside)
//  3. twice-escaped tags:  &amp;lt;b&amp;gt; (constrained entity set inside)
//
// The recognizer is purely lexical. It never parses tag semantics, and an
// unclosed bracket simply fails to match, leaving the text as plain content.
var tagPattern = regexp.MustCompile(`<[^<>]*>|&lt;(?:[^&]|&[a-zA-Z]+;|&#\d+;)*?&gt;|&amp;lt;(?:[^&]|&(?:amp|quot|lt|gt|#\d+);)*?&amp;gt;`)

// Extract splits original into the text segments between recognized tags and
// the ordered tag spans themselves. Zero-length interior segments are
// retained so that segments[i] always immediately precedes spans[i] in the
// original string; only a trailing empty segment is dropped.
func Extract(original string) ([]string, []TagSpan) {
	locs := tagPattern.FindAllStringIndex(original, -1)
	if len(locs) == 0 {
		if original == "" {
			return nil, nil
		}
		return []string{original}, nil
	}

	segments := make([]string, 0, len(locs)+1)
	spans := make([]TagSpan, 0, len(locs))

	cur := 0
	for _, loc := range locs {
		segments = append(segments, original[cur:loc[0]])
		spans = append(spans, TagSpan{
			Start:   loc[0],
			End:     loc[1],
			Literal: original[loc[0]:loc[1]],
		})
		cur = loc[1]
	}
	if cur < len(original) {
		segments = append(segments, original[cur:])
	}

	return segments, spans
}

// PlainView concatenates the text segments, yielding the string patterns are
// actually matched against when tags are ignored.
func PlainView(segments []string) string {
	return strings.Join(segments, "")
}

// Reconstruct interleaves segments with tag-span literals in original order.
// For any input s, Reconstruct(Extract(s)) == s.
func Reconstruct(segments []string, spans []TagSpan) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(seg)
		if i < len(spans) {
			b.WriteString(spans[i].Literal)
		}
	}
	// Trailing tags with no segment after them (the trailing empty segment
	// is dropped by Extract).
	for i := len(segments); i < len(spans); i++ {
		b.WriteString(spans[i].Literal)
	}
	return b.String()
}

// MapPosition translates a plain-view offset into an original-string offset.
// Tag spans consume original-string length without consuming any plain-view
// budget. A position falling exactly on a segment boundary resolves to the
// end of the preceding segment, which is what a match end needs: the mapped
// span stops before the tag.
func MapPosition(plainPos int, segments []string, spans []TagSpan) int {
	plainCount := 0
	origPos := 0

	for i, seg := range segments {
		if plainCount+len(seg) >= plainPos {
			return origPos + (plainPos - plainCount)
		}
		plainCount += len(seg)
		origPos += len(seg)
		if i < len(spans) {
			origPos += len(spans[i].Literal)
		}
	}

	return origPos
}

// MapPositionStart translates a plain-view offset that begins a match. The
// tie-break flips: a position on a segment boundary resolves into the next
// non-empty segment, past every intervening tag, so the mapped span starts
// after the tags instead of swallowing them.
func MapPositionStart(plainPos int, segments []string, spans []TagSpan) int {
	plainCount := 0
	origPos := 0

	for i, seg := range segments {
		if plainCount+len(seg) > plainPos {
			return origPos + (plainPos - plainCount)
		}
		plainCount += len(seg)
		origPos += len(seg)
		if i < len(spans) {
			origPos += len(spans[i].Literal)
		}
	}

	return origPos
}
