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

// Package icu validates ICU MessageFormat syntax in translated segments:
// keywords, category selectors, braces, variable names, and plural hashes
// must survive translation intact.
package icu

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// icuPattern matches well-formed ICU selectors: {var, plural ...}.
	icuPattern = regexp.MustCompile(`(?i)\{[^}]+,\s*(plural|select|selectordinal)`)

	// icuLikePattern is broader, catching ICU-shaped syntax even when the
	// keyword was (wrongly) translated: {var, word, category {.
	icuLikePattern = regexp.MustCompile(`(?i)\{[^}]+,\s*\w+,.*?\w+\s*\{`)

	varPattern = regexp.MustCompile(`\{(\w+)\s*,`)
)

var icuKeywords = []string{"plural", "select", "selectordinal"}

var categoryKeywords = []string{"zero", "one", "two", "few", "many", "other"}

// HasSyntax reports whether text contains ICU MessageFormat syntax, or
// something close enough to it that validation is worthwhile.
func HasSyntax(text string) bool {
	return icuPattern.MatchString(text) || icuLikePattern.MatchString(text)
}

// ValidateSegment checks a target against its source and returns the list of
// problems found. An empty target is skipped (no errors).
func ValidateSegment(source, target string) []string {
	if target == "" {
		return nil
	}

	var errs []string

	// ICU keywords must survive in exactly the same form.
	for _, keyword := range icuKeywords {
		re := regexp.MustCompile(`(?i)\{[^}]+,\s*` + keyword + `\b`)
		sourceN := len(re.FindAllString(source, -1))
		targetN := len(re.FindAllString(target, -1))
		switch {
		case sourceN > 0 && targetN == 0:
			errs = append(errs, fmt.Sprintf("ICU keyword %q is missing or incorrectly translated in target (must remain as %q)", keyword, keyword))
		case sourceN != targetN:
			errs = append(errs, fmt.Sprintf("ICU keyword %q count mismatch (source: %d, target: %d)", keyword, sourceN, targetN))
		}
	}

	// Category keywords before { must not be translated.
	for _, category := range categoryKeywords {
		re := regexp.MustCompile(`\b` + category + `\s*\{`)
		sourceN := len(re.FindAllString(source, -1))
		targetN := len(re.FindAllString(target, -1))
		switch {
		case sourceN > 0 && targetN == 0:
			errs = append(errs, fmt.Sprintf("category %q is missing or incorrectly translated in target (must remain as %q)", category, category))
		case sourceN != targetN:
			errs = append(errs, fmt.Sprintf("category %q count mismatch (source: %d, target: %d)", category, sourceN, targetN))
		}
	}

	// Balanced braces, and the same number of them as the source.
	sourceOpen := strings.Count(source, "{")
	sourceClose := strings.Count(source, "}")
	targetOpen := strings.Count(target, "{")
	targetClose := strings.Count(target, "}")
	switch {
	case targetOpen > targetClose:
		errs = append(errs, fmt.Sprintf("missing %d closing brace(s) } in target", targetOpen-targetClose))
	case targetClose > targetOpen:
		errs = append(errs, fmt.Sprintf("missing %d opening brace(s) { in target", targetClose-targetOpen))
	case targetOpen != sourceOpen || targetClose != sourceClose:
		errs = append(errs, fmt.Sprintf("brace count differs from source (source: %d pairs, target: %d pairs)", sourceOpen, targetOpen))
	}

	// Variable names must not be translated.
	sourceVars := varPattern.FindAllStringSubmatch(source, -1)
	targetVars := varPattern.FindAllStringSubmatch(target, -1)
	if len(sourceVars) > 0 && len(targetVars) > 0 {
		if changed := missingVars(sourceVars, targetVars); len(changed) > 0 {
			errs = append(errs, fmt.Sprintf("variable name(s) changed: %s (should not be translated)", strings.Join(changed, ", ")))
		}
	}
	if len(sourceVars) != len(targetVars) {
		errs = append(errs, "variable/comma pattern mismatch (check commas after variable names)")
	}

	// offset: must survive.
	if strings.Contains(source, "offset:") && !strings.Contains(target, "offset:") {
		errs = append(errs, `"offset:" is missing in target`)
	}

	// Plural hashes must survive.
	sourceHash := strings.Count(source, "#")
	targetHash := strings.Count(target, "#")
	if sourceHash > 0 && sourceHash != targetHash {
		errs = append(errs, fmt.Sprintf("hash (#) count mismatch (source: %d, target: %d)", sourceHash, targetHash))
	}

	return errs
}

// Suggestions generates fix hints for a failing target, or "" when there is
// nothing to suggest.
func Suggestions(source, target string) string {
	var out []string

	sourceVars := varPattern.FindAllStringSubmatch(source, -1)
	targetVars := varPattern.FindAllStringSubmatch(target, -1)
	if len(sourceVars) > 0 && len(targetVars) > 0 {
		if changed := missingVars(sourceVars, targetVars); len(changed) > 0 {
			out = append(out, "Variable names must match source: "+strings.Join(changed, ", "))
		}
	}

	for _, keyword := range icuKeywords {
		if strings.Contains(source, keyword) && !strings.Contains(target, keyword) {
			out = append(out, fmt.Sprintf("Restore ICU keyword: %q (not translated)", keyword))
		}
	}

	for _, category := range categoryKeywords {
		re := regexp.MustCompile(`\b` + category + `\s*\{`)
		if re.MatchString(source) && !re.MatchString(target) {
			out = append(out, fmt.Sprintf("Restore category keyword: %q (not translated)", category))
		}
	}

	if strings.Contains(source, "offset:") && !strings.Contains(target, "offset:") {
		out = append(out, `Restore "offset:" (not translated)`)
	}

	targetOpen := strings.Count(target, "{")
	targetClose := strings.Count(target, "}")
	switch {
	case targetOpen > targetClose:
		out = append(out, fmt.Sprintf("Add %d closing brace(s) }", targetOpen-targetClose))
	case targetClose > targetOpen:
		out = append(out, fmt.Sprintf("Add %d opening brace(s) {", targetClose-targetOpen))
	}

	sourceHash := strings.Count(source, "#")
	targetHash := strings.Count(target, "#")
	if sourceHash > targetHash {
		out = append(out, fmt.Sprintf("Restore %d hash symbol(s) #", sourceHash-targetHash))
	}

	return strings.Join(out, " • ")
}

// missingVars returns the sorted source variable names absent from the
// target.
func missingVars(sourceVars, targetVars [][]string) []string {
	targetSet := map[string]bool{}
	for _, m := range targetVars {
		targetSet[m[1]] = true
	}

	seen := map[string]bool{}
	var out []string
	for _, m := range sourceVars {
		name := m[1]
		if !targetSet[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
