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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Match is a single pattern match in original-string coordinates. Text is
// the plain-view substring of the match and never contains a tag literal.
type Match struct {
	Start int    // byte offset in the original string
	End   int    // byte offset just past the match
	Text  string // matched text from the plain view
}

// 🚂 Engine runs tag-aware find and replace with a fixed backend. The backend
// is chosen once at construction and never mutated, so an Engine is safe to
// share across goroutines.
type Engine struct {
	backend Backend
}

// New creates an engine using the given backend. An empty backend selects
// BackendStandard.
func New(backend Backend) *Engine {
	if backend == "" {
		backend = BackendStandard
	}
	return &Engine{backend: backend}
}

// Backend returns the backend this engine compiles patterns with.
func (e *Engine) Backend() Backend {
	return e.backend
}

// Compile compiles pattern with the engine's backend. Case sensitivity is a
// compile flag, not a per-call option.
func (e *Engine) Compile(pattern string, caseSensitive bool) (Pattern, error) {
	switch e.backend {
	case BackendBacktrack:
		return compileBacktrack(pattern, caseSensitive)
	default:
		return compileStandard(pattern, caseSensitive)
	}
}

// Validate attempts to compile pattern, returning the backend's diagnostic
// unmodified on failure. Callers are expected to validate before Find or
// Replace; the engine does not re-validate internally.
func (e *Engine) Validate(pattern string) error {
	_, err := e.Compile(pattern, true)
	return err
}

// Find returns every non-overlapping match of pattern in text. With
// ignoreTags set, matching runs against the tag-stripped plain view and the
// reported offsets are mapped back into original-string coordinates; without
// it, tags are ordinary characters. A match whose text anchor-matches exclude
// is dropped entirely.
func (e *Engine) Find(text string, pattern Pattern, ignoreTags bool, exclude Pattern) ([]Match, error) {
	if !ignoreTags {
		locs, err := pattern.FindAllIndex(text)
		if err != nil {
			return nil, errors.Errorf("matching pattern %q: %w", pattern.String(), err)
		}
		var out []Match
		for _, loc := range locs {
			matched := text[loc[0]:loc[1]]
			vetoed, err := vetoedByExclude(exclude, matched)
			if err != nil {
				return nil, err
			}
			if vetoed {
				continue
			}
			out = append(out, Match{Start: loc[0], End: loc[1], Text: matched})
		}
		return out, nil
	}

	segments, spans := Extract(text)
	plain := PlainView(segments)

	locs, err := pattern.FindAllIndex(plain)
	if err != nil {
		return nil, errors.Errorf("matching pattern %q: %w", pattern.String(), err)
	}

	var out []Match
	for _, loc := range locs {
		matched := plain[loc[0]:loc[1]]
		vetoed, err := vetoedByExclude(exclude, matched)
		if err != nil {
			return nil, err
		}
		if vetoed {
			continue
		}
		start := MapPositionStart(loc[0], segments, spans)
		end := MapPosition(loc[1], segments, spans)
		if end < start {
			// Zero-length match on a segment boundary.
			end = start
		}
		out = append(out, Match{Start: start, End: end, Text: matched})
	}
	return out, nil
}

// Replace substitutes matches of pattern in text with replacement.
// maxReplacements of 0 means unlimited. With ignoreTags set, segments are
// processed independently in order, so a match can never span a tag boundary
// and every tag literal survives verbatim. Returns the new text and the
// number of replacements made.
func (e *Engine) Replace(text string, pattern Pattern, replacement string, ignoreTags bool, maxReplacements int, exclude Pattern) (string, int, error) {
	template := NormalizeTemplate(replacement)

	if !ignoreTags {
		if exclude != nil {
			return replaceWithExclude(text, pattern, template, exclude, maxReplacements)
		}
		out, n, err := pattern.Replace(text, template, maxReplacements)
		if err != nil {
			return "", 0, errors.Errorf("substituting pattern %q: %w", pattern.String(), err)
		}
		return out, n, nil
	}

	segments, spans := Extract(text)

	made := 0
	for i, seg := range segments {
		if maxReplacements > 0 && made >= maxReplacements {
			break
		}
		remaining := 0
		if maxReplacements > 0 {
			remaining = maxReplacements - made
		}

		var (
			newSeg string
			n      int
			err    error
		)
		if exclude != nil {
			newSeg, n, err = replaceWithExclude(seg, pattern, template, exclude, remaining)
		} else {
			newSeg, n, err = pattern.Replace(seg, template, remaining)
		}
		if err != nil {
			return "", 0, errors.Errorf("substituting pattern %q: %w", pattern.String(), err)
		}

		segments[i] = newSeg
		made += n
	}

	return Reconstruct(segments, spans), made, nil
}

// replaceWithExclude rebuilds text left to right: each match is either copied
// through unchanged (vetoed by exclude, or over budget) or replaced by the
// substituted form of just the matched text. limit <= 0 means unlimited.
func replaceWithExclude(text string, pattern Pattern, template string, exclude Pattern, limit int) (string, int, error) {
	locs, err := pattern.FindAllIndex(text)
	if err != nil {
		return "", 0, errors.Errorf("matching pattern %q: %w", pattern.String(), err)
	}
	if len(locs) == 0 {
		return text, 0, nil
	}

	var b strings.Builder
	last := 0
	made := 0
	for _, loc := range locs {
		matched := text[loc[0]:loc[1]]

		vetoed, err := vetoedByExclude(exclude, matched)
		if err != nil {
			return "", 0, err
		}
		if vetoed || (limit > 0 && made >= limit) {
			b.WriteString(text[last:loc[1]])
			last = loc[1]
			continue
		}

		b.WriteString(text[last:loc[0]])
		sub, _, err := pattern.Replace(matched, template, 0)
		if err != nil {
			return "", 0, errors.Errorf("substituting pattern %q: %w", pattern.String(), err)
		}
		b.WriteString(sub)
		made++
		last = loc[1]
	}
	b.WriteString(text[last:])

	return b.String(), made, nil
}

func vetoedByExclude(exclude Pattern, matched string) (bool, error) {
	if exclude == nil {
		return false, nil
	}
	ok, err := exclude.MatchesPrefix(matched)
	if err != nil {
		return false, errors.Errorf("exclude pattern %q: %w", exclude.String(), err)
	}
	return ok, nil
}
