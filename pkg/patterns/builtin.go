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

package patterns

// builtinPatterns returns the built-in set. Patterns that rewrite text
// aggressively (locale conversions) ship disabled; search-only patterns have
// an empty replacement.
func builtinPatterns() []Pattern {
	return []Pattern{
		// Whitespace
		{
			Name:        "Multiple spaces",
			Pattern:     `\s{2,}`,
			Replacement: " ",
			Description: "Normalize runs of whitespace to a single space",
			Category:    "Whitespace",
			Enabled:     true,
			Tags:        []string{"whitespace", "formatting", "common"},
		},
		{
			Name:        "Leading spaces",
			Pattern:     `^\s+`,
			Replacement: "",
			Description: "Remove spaces at the beginning of a segment",
			Category:    "Whitespace",
			Enabled:     true,
			Tags:        []string{"whitespace", "formatting"},
		},
		{
			Name:        "Trailing spaces",
			Pattern:     `\s+$`,
			Replacement: "",
			Description: "Remove spaces at the end of a segment",
			Category:    "Whitespace",
			Enabled:     true,
			Tags:        []string{"whitespace", "formatting"},
		},
		{
			Name:        "Space before punctuation",
			Pattern:     `\s+([.,!?;:])`,
			Replacement: "$1",
			Description: "Remove space before punctuation marks",
			Category:    "Whitespace",
			Enabled:     true,
			Tags:        []string{"whitespace", "punctuation"},
		},
		{
			Name:        "No space after punctuation",
			Pattern:     `([.,!?;:])([A-ZÆØÅ])`,
			Replacement: "$1 $2",
			Description: "Add space after punctuation before a capital letter",
			Category:    "Whitespace",
			Enabled:     true,
			Tags:        []string{"whitespace", "punctuation"},
		},

		// Punctuation
		{
			Name:        "Double periods",
			Pattern:     `\.\.`,
			Replacement: ".",
			Description: "Replace double periods with a single period",
			Category:    "Punctuation",
			Enabled:     true,
			Tags:        []string{"punctuation", "typo"},
		},
		{
			Name:        "Double commas",
			Pattern:     `,,`,
			Replacement: ",",
			Description: "Replace double commas with a single comma",
			Category:    "Punctuation",
			Enabled:     true,
			Tags:        []string{"punctuation", "typo"},
		},
		{
			Name:        "Space before comma",
			Pattern:     `\s+,`,
			Replacement: ",",
			Description: "Remove space before a comma",
			Category:    "Punctuation",
			Enabled:     true,
			Tags:        []string{"punctuation", "formatting"},
		},

		// Norwegian
		{
			Name:        "Norwegian quotes (English style)",
			Pattern:     `"([^"]+)"`,
			Replacement: "«$1»",
			Description: "Convert English quotes to Norwegian guillemets",
			Category:    "Norwegian",
			Enabled:     false,
			Tags:        []string{"norwegian", "quotes", "localization"},
		},
		{
			Name:        "Date format US to NO",
			Pattern:     `(\d{1,2})/(\d{1,2})/(\d{4})`,
			Replacement: "$2.$1.$3",
			Description: "Convert MM/DD/YYYY to DD.MM.YYYY",
			Category:    "Norwegian",
			Enabled:     false,
			Tags:        []string{"norwegian", "date", "localization"},
		},
		{
			Name:        "Norwegian double negation",
			Pattern:     `\bikke\s+ingen\b`,
			Replacement: "ingen",
			Description: "Fix double negation (ikke ingen -> ingen)",
			Category:    "Norwegian",
			Enabled:     false,
			Tags:        []string{"norwegian", "grammar"},
		},

		// Typos
		{
			Name:        "'teh' typo",
			Pattern:     `\bteh\b`,
			Replacement: "the",
			Description: "Fix the common 'teh' -> 'the' typo",
			Category:    "Typos",
			Enabled:     true,
			Tags:        []string{"typo", "english"},
		},
		{
			Name:        "'recieve' typo",
			Pattern:     `\brecieve\b`,
			Replacement: "receive",
			Description: "Fix the common 'recieve' -> 'receive' typo",
			Category:    "Typos",
			Enabled:     true,
			Tags:        []string{"typo", "english"},
		},
		{
			Name:        "'occured' typo",
			Pattern:     `\boccured\b`,
			Replacement: "occurred",
			Description: "Fix the common 'occured' -> 'occurred' typo",
			Category:    "Typos",
			Enabled:     true,
			Tags:        []string{"typo", "english"},
		},

		// Numbers
		{
			Name:        "Space in large numbers",
			Pattern:     `(\d)(\d{3})\b`,
			Replacement: "$1 $2",
			Description: "Add space as thousand separator (Norwegian standard)",
			Category:    "Numbers",
			Enabled:     false,
			Tags:        []string{"numbers", "norwegian", "formatting"},
		},
		{
			Name:        "Comma to period in decimals",
			Pattern:     `(\d),(\d)`,
			Replacement: "$1.$2",
			Description: "Convert comma decimal separator to period",
			Category:    "Numbers",
			Enabled:     false,
			Tags:        []string{"numbers", "localization"},
		},

		// URLs & Emails (search-only)
		{
			Name:        "Find email addresses",
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Replacement: "",
			Description: "Find all email addresses",
			Category:    "URLs & Emails",
			Enabled:     true,
			Tags:        []string{"email", "search-only"},
		},
		{
			Name:        "Find HTTP URLs",
			Pattern:     `https?://[^\s<>"]+`,
			Replacement: "",
			Description: "Find all HTTP/HTTPS URLs",
			Category:    "URLs & Emails",
			Enabled:     true,
			Tags:        []string{"url", "search-only"},
		},

		// Tags & Markup (search-only)
		{
			Name:        "Unmatched brackets",
			Pattern:     `\[[^\]]*$|^[^\[]*\]`,
			Replacement: "",
			Description: "Find segments with unmatched square brackets",
			Category:    "Tags & Markup",
			Enabled:     true,
			Tags:        []string{"tags", "qa", "search-only"},
		},
		{
			Name:        "Unmatched parentheses",
			Pattern:     `\([^\)]*$|^[^\(]*\)`,
			Replacement: "",
			Description: "Find segments with unmatched parentheses",
			Category:    "Tags & Markup",
			Enabled:     true,
			Tags:        []string{"tags", "qa", "search-only"},
		},

		// Consistency
		{
			Name:        "Inconsistent capitalization of 'internet'",
			Pattern:     `\binternet\b`,
			Replacement: "Internet",
			Description: "Capitalize 'Internet' where the style guide requires it",
			Category:    "Consistency",
			Enabled:     false,
			Tags:        []string{"consistency", "capitalization"},
		},
		{
			Name:        "Inconsistent capitalization of 'e-mail'",
			Pattern:     `\bemail\b`,
			Replacement: "e-mail",
			Description: "Change 'email' to 'e-mail' for consistency",
			Category:    "Consistency",
			Enabled:     false,
			Tags:        []string{"consistency", "norwegian"},
		},
	}
}
