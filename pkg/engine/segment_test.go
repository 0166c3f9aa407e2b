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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSegments []string
		wantLiterals []string
	}{
		{
			name:         "no_tags",
			input:        "plain text only",
			wantSegments: []string{"plain text only"},
			wantLiterals: nil,
		},
		{
			name:         "empty_string",
			input:        "",
			wantSegments: nil,
			wantLiterals: nil,
		},
		{
			name:         "simple_tags",
			input:        "Hello <b>world</b>!",
			wantSegments: []string{"Hello ", "world", "!"},
			wantLiterals: []string{"<b>", "</b>"},
		},
		{
			name:         "leading_tag_keeps_empty_segment",
			input:        "<b>bold</b>",
			wantSegments: []string{"", "bold"},
			wantLiterals: []string{"<b>", "</b>"},
		},
		{
			name:         "adjacent_tags_keep_empty_segment",
			input:        "a<b><i>x</i></b>",
			wantSegments: []string{"a", "", "x", ""},
			wantLiterals: []string{"<b>", "<i>", "</i>", "</b>"},
		},
		{
			name:         "trailing_empty_segment_dropped",
			input:        "text<br/>",
			wantSegments: []string{"text"},
			wantLiterals: []string{"<br/>"},
		},
		{
			name:         "self_closing_with_attributes",
			input:        `before <ph id="1" x="&amp;"/> after`,
			wantSegments: []string{"before ", " after"},
			wantLiterals: []string{`<ph id="1" x="&amp;"/>`},
		},
		{
			name:         "single_escaped_tag",
			input:        "a&lt;b&gt;c&lt;/b&gt;d",
			wantSegments: []string{"a", "c", "d"},
			wantLiterals: []string{"&lt;b&gt;", "&lt;/b&gt;"},
		},
		{
			name:         "single_escaped_tag_with_entities",
			input:        "x&lt;ph name=&quot;n&quot;&gt;y",
			wantSegments: []string{"x", "y"},
			wantLiterals: []string{"&lt;ph name=&quot;n&quot;&gt;"},
		},
		{
			name:         "double_escaped_tag",
			input:        "a&amp;lt;b&amp;gt;c",
			wantSegments: []string{"a", "c"},
			wantLiterals: []string{"&amp;lt;b&amp;gt;"},
		},
		{
			name:         "unclosed_bracket_is_plain_text",
			input:        "5 < 6 and no tag",
			wantSegments: []string{"5 < 6 and no tag"},
			wantLiterals: nil,
		},
		{
			name:         "stray_closing_bracket_is_plain_text",
			input:        "6 > 5",
			wantSegments: []string{"6 > 5"},
			wantLiterals: nil,
		},
		{
			name:         "stray_brackets_around_real_tag",
			input:        "a < b <i>c</i> d > e",
			wantSegments: []string{"a < b ", "c", " d > e"},
			wantLiterals: []string{"<i>", "</i>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, spans := Extract(tt.input)

			assert.Equal(t, tt.wantSegments, segments, "segments should match")

			var literals []string
			for _, span := range spans {
				assert.Equal(t, tt.input[span.Start:span.End], span.Literal, "span literal should equal the substring it covers")
				literals = append(literals, span.Literal)
			}
			assert.Equal(t, tt.wantLiterals, literals, "tag literals should match")
		})
	}
}

func TestReconstructIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"Hello <b>world</b>!",
		"<b>bold</b>",
		"a<b><i>x</i></b>",
		"text<br/>",
		"a&lt;b&gt;c&lt;/b&gt;d",
		"a&amp;lt;b&amp;gt;c",
		"x&lt;ph name=&quot;n&quot;&gt;y",
		"unclosed < bracket and <real/> tag",
		"ends with tag<x/>",
		"<only/>",
		"mixed &lt;e&gt; and <l> tags &amp;lt;d&amp;gt; here",
	}

	for _, input := range inputs {
		segments, spans := Extract(input)
		assert.Equal(t, input, Reconstruct(segments, spans), "Reconstruct(Extract(s)) must equal s for %q", input)
	}
}

func TestPlainViewLength(t *testing.T) {
	inputs := []string{
		"Hello <b>world</b>!",
		"a<b><i>x</i></b>",
		"a&lt;b&gt;c",
		"no tags at all",
	}

	for _, input := range inputs {
		segments, _ := Extract(input)
		plain := PlainView(segments)

		total := 0
		for _, seg := range segments {
			total += len(seg)
		}
		assert.Equal(t, total, len(plain), "plain view length must equal sum of segment lengths for %q", input)
	}
}

func TestMapPosition(t *testing.T) {
	// "Hello <b>world</b>!" -> plain view "Hello world!"
	segments, spans := Extract("Hello <b>world</b>!")
	require.Equal(t, "Hello world!", PlainView(segments), "plain view should strip tags")

	tests := []struct {
		name     string
		plainPos int
		want     int
	}{
		{name: "start_of_string", plainPos: 0, want: 0},
		{name: "inside_first_segment", plainPos: 4, want: 4},
		{name: "inside_second_segment", plainPos: 7, want: 10},
		{name: "end_of_second_segment", plainPos: 11, want: 14},
		{name: "final_position", plainPos: 12, want: 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPosition(tt.plainPos, segments, spans)
			assert.Equal(t, tt.want, got, "mapped position should match")
		})
	}
}

func TestMapPositionStart(t *testing.T) {
	// "Hello <b>world</b>!" -> plain view "Hello world!"
	segments, spans := Extract("Hello <b>world</b>!")

	tests := []struct {
		name     string
		plainPos int
		want     int
	}{
		{name: "start_of_string", plainPos: 0, want: 0},
		{name: "inside_first_segment", plainPos: 4, want: 4},
		{name: "boundary_resolves_past_tag", plainPos: 6, want: 9},
		{name: "inside_second_segment", plainPos: 7, want: 10},
		{name: "boundary_before_last_segment", plainPos: 11, want: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPositionStart(tt.plainPos, segments, spans)
			assert.Equal(t, tt.want, got, "mapped start position should match")
		})
	}

	t.Run("consecutive_tags", func(t *testing.T) {
		// "a<b><i>x" -> plain view "ax"; a start on the boundary skips
		// both tags, empty segment included.
		segments, spans := Extract("a<b><i>x")
		assert.Equal(t, 7, MapPositionStart(1, segments, spans), "start should land after both tags")
	})
}
