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
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// 🔌 Backend selects which regex engine compiles patterns.
type Backend string

const (
	// BackendStandard is the standard library's RE2 engine: linear-time
	// matching, no backtracking constructs.
	BackendStandard Backend = "standard"

	// BackendBacktrack is dlclark/regexp2: .NET-style backtracking with
	// lookaround and fuller Unicode class support.
	BackendBacktrack Backend = "backtrack"
)

// Pattern is the compiled-pattern contract shared by both backends.
// Implementations are immutable after compilation and safe for concurrent use.
type Pattern interface {
	// String returns the pattern source text as given to Compile.
	String() string

	// FindAllIndex returns the half-open byte ranges of every
	// non-overlapping match in s, leftmost first. Zero-length matches
	// advance by one position.
	FindAllIndex(s string) ([][2]int, error)

	// MatchesPrefix reports whether the pattern matches anchored at the
	// exact start of s. It is a match attempt, not a search.
	MatchesPrefix(s string) (bool, error)

	// Replace substitutes non-overlapping matches in s with template, which
	// must already be in native ${n} backreference form. limit <= 0 means
	// unlimited. Returns the new string and the number of replacements made.
	Replace(s, template string, limit int) (string, int, error)
}

// templateRef matches $1 and \1 style backreferences in replacement templates.
var templateRef = regexp.MustCompile(`[\\$](\d+)`)

// NormalizeTemplate rewrites dollar-numeral ($1) and backslash-numeral (\1)
// backreferences into the native ${1} form understood by both backends. The
// backslash convention shows up in pattern libraries imported from other
// tools. Applied unconditionally before any substitution.
func NormalizeTemplate(template string) string {
	return templateRef.ReplaceAllStringFunc(template, func(m string) string {
		return "${" + m[1:] + "}"
	})
}

// anchorExpr wraps expr so it can only match at the start of its input.
// Both backends understand \A.
func anchorExpr(expr string) string {
	return `\A(?:` + expr + `)`
}

// ---------------------------------------------------------------------------
// standard backend (regexp)
// ---------------------------------------------------------------------------

type stdPattern struct {
	expr     string
	re       *regexp.Regexp
	anchored *regexp.Regexp
}

func compileStandard(pattern string, caseSensitive bool) (Pattern, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	anchored, err := regexp.Compile(anchorExpr(expr))
	if err != nil {
		return nil, err
	}
	return &stdPattern{expr: pattern, re: re, anchored: anchored}, nil
}

func (p *stdPattern) String() string { return p.expr }

func (p *stdPattern) FindAllIndex(s string) ([][2]int, error) {
	locs := p.re.FindAllStringIndex(s, -1)
	out := make([][2]int, len(locs))
	for i, loc := range locs {
		out[i] = [2]int{loc[0], loc[1]}
	}
	return out, nil
}

func (p *stdPattern) MatchesPrefix(s string) (bool, error) {
	return p.anchored.MatchString(s), nil
}

func (p *stdPattern) Replace(s, template string, limit int) (string, int, error) {
	matches := p.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, 0, nil
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		b.Write(p.re.ExpandString(nil, template, s, m))
		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), len(matches), nil
}

// ---------------------------------------------------------------------------
// backtracking backend (regexp2)
// ---------------------------------------------------------------------------

type backtrackPattern struct {
	expr     string
	re       *regexp2.Regexp
	anchored *regexp2.Regexp
}

func compileBacktrack(pattern string, caseSensitive bool) (Pattern, error) {
	opts := regexp2.None
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	anchored, err := regexp2.Compile(anchorExpr(pattern), opts)
	if err != nil {
		return nil, err
	}
	return &backtrackPattern{expr: pattern, re: re, anchored: anchored}, nil
}

func (p *backtrackPattern) String() string { return p.expr }

// FindAllIndex converts regexp2's rune offsets into byte offsets so both
// backends report positions in the same coordinate space.
func (p *backtrackPattern) FindAllIndex(s string) ([][2]int, error) {
	runes := []rune(s)

	// byteAt[i] is the byte offset of rune i; byteAt[len(runes)] == len(s).
	byteAt := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteAt[i] = off
		off += utf8.RuneLen(r)
	}
	byteAt[len(runes)] = off

	var out [][2]int
	m, err := p.re.FindRunesMatch(runes)
	if err != nil {
		return nil, err
	}
	for m != nil {
		out = append(out, [2]int{byteAt[m.Index], byteAt[m.Index+m.Length]})
		m, err = p.re.FindNextMatch(m)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *backtrackPattern) MatchesPrefix(s string) (bool, error) {
	return p.anchored.MatchString(s)
}

func (p *backtrackPattern) Replace(s, template string, limit int) (string, int, error) {
	locs, err := p.FindAllIndex(s)
	if err != nil {
		return "", 0, err
	}
	if len(locs) == 0 {
		return s, 0, nil
	}

	count := len(locs)
	n := -1
	if limit > 0 && count > limit {
		count = limit
		n = limit
	}

	out, err := p.re.Replace(s, template, -1, n)
	if err != nil {
		return "", 0, err
	}
	return out, count, nil
}
