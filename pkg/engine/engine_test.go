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

// backends runs fn once per regex backend, so every behavior is pinned to
// both implementations of the Pattern interface.
func backends(t *testing.T, fn func(t *testing.T, e *Engine)) {
	t.Helper()
	for _, backend := range []Backend{BackendStandard, BackendBacktrack} {
		t.Run(string(backend), func(t *testing.T) {
			fn(t, New(backend))
		})
	}
}

func TestValidate(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		assert.NoError(t, e.Validate(`\d+`), "valid pattern should validate")
		assert.NoError(t, e.Validate(`(\w)(\w)`), "groups should validate")
		assert.Error(t, e.Validate(`[unclosed`), "unterminated class should fail")
		assert.Error(t, e.Validate(`(`), "unclosed group should fail")
	})
}

func TestFind(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		pattern       string
		caseSensitive bool
		ignoreTags    bool
		exclude       string
		want          []Match
	}{
		{
			name:       "plain_text",
			text:       "one 22 three 44",
			pattern:    `\d+`,
			ignoreTags: true,
			want: []Match{
				{Start: 4, End: 6, Text: "22"},
				{Start: 13, End: 15, Text: "44"},
			},
		},
		{
			name:       "exclude_vetoes_years",
			text:       "in 1999 there were 42 items",
			pattern:    `\d+`,
			ignoreTags: true,
			exclude:    `19\d{2}|20\d{2}`,
			want: []Match{
				{Start: 19, End: 21, Text: "42"},
			},
		},
		{
			name:       "match_inside_tagged_text",
			text:       "Hello <b>world</b>!",
			pattern:    `or`,
			ignoreTags: true,
			want: []Match{
				{Start: 10, End: 12, Text: "or"},
			},
		},
		{
			name:       "tags_invisible_to_pattern",
			text:       "Hello <b>world</b>!",
			pattern:    `<b>`,
			ignoreTags: true,
			want:       nil,
		},
		{
			name:       "tags_matchable_when_not_ignored",
			text:       "Hello <b>world</b>!",
			pattern:    `<b>`,
			ignoreTags: false,
			want: []Match{
				{Start: 6, End: 9, Text: "<b>"},
			},
		},
		{
			name:          "case_insensitive_by_default",
			text:          "Error and error",
			pattern:       `error`,
			caseSensitive: false,
			ignoreTags:    true,
			want: []Match{
				{Start: 0, End: 5, Text: "Error"},
				{Start: 10, End: 15, Text: "error"},
			},
		},
		{
			name:          "case_sensitive_flag",
			text:          "Error and error",
			pattern:       `error`,
			caseSensitive: true,
			ignoreTags:    true,
			want: []Match{
				{Start: 10, End: 15, Text: "error"},
			},
		},
		{
			name:       "exclude_is_anchored_not_searched",
			text:       "abc xbc",
			pattern:    `\w+`,
			ignoreTags: true,
			exclude:    `b`,
			// "b" does not match at the start of either word, so nothing
			// is vetoed even though both contain a "b".
			want: []Match{
				{Start: 0, End: 3, Text: "abc"},
				{Start: 4, End: 7, Text: "xbc"},
			},
		},
		{
			name:       "no_matches",
			text:       "nothing here",
			pattern:    `\d+`,
			ignoreTags: true,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends(t, func(t *testing.T, e *Engine) {
				pat, err := e.Compile(tt.pattern, tt.caseSensitive)
				require.NoError(t, err, "compiling pattern should succeed")

				var exclude Pattern
				if tt.exclude != "" {
					exclude, err = e.Compile(tt.exclude, tt.caseSensitive)
					require.NoError(t, err, "compiling exclude pattern should succeed")
				}

				got, err := e.Find(tt.text, pat, tt.ignoreTags, exclude)
				require.NoError(t, err, "Find should succeed")
				assert.Equal(t, tt.want, got, "matches should match")
			})
		})
	}
}

func TestFindMatchTextNeverContainsTags(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		pat, err := e.Compile(`\w+`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		matches, err := e.Find("foo <b>bar</b> baz&lt;i&gt;qux", pat, true, nil)
		require.NoError(t, err, "Find should succeed")

		for _, m := range matches {
			assert.NotContains(t, m.Text, "<", "match text must not contain tag characters")
			assert.NotContains(t, m.Text, "&lt;", "match text must not contain escaped tags")
		}
	})
}

func TestFindSpansAvoidTags(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		text := "Hello <b>world</b>!"
		_, spans := Extract(text)

		pat, err := e.Compile(`o`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		matches, err := e.Find(text, pat, true, nil)
		require.NoError(t, err, "Find should succeed")
		require.Len(t, matches, 2, "should match the o in Hello and in world")

		for _, m := range matches {
			for _, span := range spans {
				overlap := m.Start < span.End && span.Start < m.End
				assert.False(t, overlap, "match [%d,%d) must not intersect tag span [%d,%d)", m.Start, m.End, span.Start, span.End)
			}
		}
	})
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		pattern         string
		replacement     string
		caseSensitive   bool
		ignoreTags      bool
		maxReplacements int
		exclude         string
		wantText        string
		wantCount       int
	}{
		{
			name:        "tag_preservation",
			text:        "Hello <b>world</b>!",
			pattern:     `o`,
			replacement: "0",
			ignoreTags:  true,
			wantText:    "Hell0 <b>w0rld</b>!",
			wantCount:   2,
		},
		{
			name:            "max_replacements_cap",
			text:            "aaaa",
			pattern:         `a`,
			replacement:     "b",
			ignoreTags:      true,
			maxReplacements: 2,
			wantText:        "bbaa",
			wantCount:       2,
		},
		{
			name:        "dollar_backreferences",
			text:        "ab",
			pattern:     `(\w)(\w)`,
			replacement: "$1-$2",
			ignoreTags:  true,
			wantText:    "a-b",
			wantCount:   1,
		},
		{
			name:        "backslash_backreferences",
			text:        "12/31/2024",
			pattern:     `(\d{1,2})/(\d{1,2})/(\d{4})`,
			replacement: `\2.\1.\3`,
			ignoreTags:  true,
			wantText:    "31.12.2024",
			wantCount:   1,
		},
		{
			name:        "backreference_normalization_without_ignore_tags",
			text:        "ab",
			pattern:     `(\w)(\w)`,
			replacement: "$1-$2",
			ignoreTags:  false,
			wantText:    "a-b",
			wantCount:   1,
		},
		{
			name:        "exclude_keeps_vetoed_matches",
			text:        "1999 and 42 and 2003",
			pattern:     `\d+`,
			replacement: "N",
			ignoreTags:  true,
			exclude:     `19\d{2}|20\d{2}`,
			wantText:    "1999 and N and 2003",
			wantCount:   1,
		},
		{
			name:            "exclude_with_budget",
			text:            "1 2 3 4",
			pattern:         `\d`,
			replacement:     "x",
			ignoreTags:      true,
			maxReplacements: 2,
			exclude:         `3`,
			wantText:        "x x 3 4",
			wantCount:       2,
		},
		{
			name:            "budget_spans_segments",
			text:            "aa<b>aa</b>aa",
			pattern:         `a`,
			replacement:     "x",
			ignoreTags:      true,
			maxReplacements: 3,
			wantText:        "xx<b>xa</b>aa",
			wantCount:       3,
		},
		{
			name:        "match_cannot_cross_tag_boundary",
			text:        "wo<b>rd</b>",
			pattern:     `word`,
			replacement: "X",
			ignoreTags:  true,
			wantText:    "wo<b>rd</b>",
			wantCount:   0,
		},
		{
			name:        "replace_inside_escaped_tags_untouched",
			text:        "say &lt;b&gt;hi&lt;/b&gt; now",
			pattern:     `b`,
			replacement: "B",
			ignoreTags:  true,
			wantText:    "say &lt;b&gt;hi&lt;/b&gt; now",
			wantCount:   0,
		},
		{
			name:        "tags_replaced_when_not_ignored",
			text:        "Hello <b>world</b>!",
			pattern:     `</?b>`,
			replacement: "",
			ignoreTags:  false,
			wantText:    "Hello world!",
			wantCount:   2,
		},
		{
			name:            "zero_max_means_unlimited",
			text:            "aaaa",
			pattern:         `a`,
			replacement:     "b",
			ignoreTags:      true,
			maxReplacements: 0,
			wantText:        "bbbb",
			wantCount:       4,
		},
		{
			name:          "case_insensitive_replace",
			text:          "Foo foo FOO",
			pattern:       `foo`,
			replacement:   "bar",
			caseSensitive: false,
			ignoreTags:    true,
			wantText:      "bar bar bar",
			wantCount:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends(t, func(t *testing.T, e *Engine) {
				pat, err := e.Compile(tt.pattern, tt.caseSensitive)
				require.NoError(t, err, "compiling pattern should succeed")

				var exclude Pattern
				if tt.exclude != "" {
					exclude, err = e.Compile(tt.exclude, tt.caseSensitive)
					require.NoError(t, err, "compiling exclude pattern should succeed")
				}

				got, count, err := e.Replace(tt.text, pat, tt.replacement, tt.ignoreTags, tt.maxReplacements, exclude)
				require.NoError(t, err, "Replace should succeed")
				assert.Equal(t, tt.wantText, got, "replaced text should match")
				assert.Equal(t, tt.wantCount, count, "replacement count should match")
			})
		})
	}
}

func TestFindReplaceConsistency(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		text := "count 12 then 34 and <b>56</b> done"

		pat, err := e.Compile(`\d+`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		before, err := e.Find(text, pat, true, nil)
		require.NoError(t, err, "Find should succeed")
		require.NotEmpty(t, before, "fixture should contain matches")

		replaced, count, err := e.Replace(text, pat, "N", true, 0, nil)
		require.NoError(t, err, "Replace should succeed")
		assert.Equal(t, len(before), count, "replace count should equal find count")

		after, err := e.Find(replaced, pat, true, nil)
		require.NoError(t, err, "Find on replaced text should succeed")
		assert.Empty(t, after, "literal replacement should leave no further matches")
	})
}

func TestReplaceUnicode(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		pat, err := e.Compile(`gå`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		got, count, err := e.Replace("vi gå <b>gå</b> nå", pat, "går", true, 0, nil)
		require.NoError(t, err, "Replace should succeed")
		assert.Equal(t, "vi går <b>går</b> nå", got, "multibyte text should replace cleanly")
		assert.Equal(t, 2, count, "replacement count should match")
	})
}

func TestFindUnicodeOffsets(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		// "på" is 3 bytes; offsets are byte offsets on both backends.
		text := "på <b>1999</b>"
		pat, err := e.Compile(`\d+`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		matches, err := e.Find(text, pat, true, nil)
		require.NoError(t, err, "Find should succeed")
		require.Len(t, matches, 1, "should find the number")

		assert.Equal(t, "1999", matches[0].Text, "match text should be the number")
		assert.Equal(t, "1999", text[matches[0].Start:matches[0].End], "byte offsets should slice the original string")
	})
}

func TestFindTagBoundaryOffsets(t *testing.T) {
	backends(t, func(t *testing.T, e *Engine) {
		text := "x <b>42</b>"

		num, err := e.Compile(`\d+`, true)
		require.NoError(t, err, "compiling pattern should succeed")

		matches, err := e.Find(text, num, true, nil)
		require.NoError(t, err, "Find should succeed")
		require.Len(t, matches, 1, "should find the number")
		assert.Equal(t, "42", text[matches[0].Start:matches[0].End], "a match starting right after a tag must not swallow it")

		prefix, err := e.Compile(`x `, true)
		require.NoError(t, err, "compiling pattern should succeed")

		matches, err = e.Find(text, prefix, true, nil)
		require.NoError(t, err, "Find should succeed")
		require.Len(t, matches, 1, "should find the prefix")
		assert.Equal(t, "x ", text[matches[0].Start:matches[0].End], "a match ending right before a tag must stop short of it")
	})
}

func TestNormalizeTemplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "dollar_refs", in: "$1-$2", want: "${1}-${2}"},
		{name: "backslash_refs", in: `\2.\1`, want: "${2}.${1}"},
		{name: "mixed", in: `$1 and \2`, want: "${1} and ${2}"},
		{name: "no_refs", in: "literal text", want: "literal text"},
		{name: "multidigit", in: "$10", want: "${10}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTemplate(tt.in), "normalized template should match")
		})
	}
}

func TestBacktrackOnlyFeatures(t *testing.T) {
	// Lookahead is the reason the backtracking backend exists; the standard
	// backend must reject it at compile time with its own diagnostic.
	std := New(BackendStandard)
	assert.Error(t, std.Validate(`\d+(?= kr)`), "RE2 should reject lookahead")

	bt := New(BackendBacktrack)
	require.NoError(t, bt.Validate(`\d+(?= kr)`), "backtracking backend should accept lookahead")

	pat, err := bt.Compile(`\d+(?= kr)`, true)
	require.NoError(t, err, "compiling lookahead pattern should succeed")

	matches, err := bt.Find("pris 100 kr eller 50 øre", pat, true, nil)
	require.NoError(t, err, "Find should succeed")
	require.Len(t, matches, 1, "only the amount before kr should match")
	assert.Equal(t, "100", matches[0].Text, "lookahead should select the kr amount")
}
