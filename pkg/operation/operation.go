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

// Package operation runs find and replace passes over translation files,
// one file per operation, with batch helpers for glob-driven runs.
package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/engine"
	"github.com/xliffkit/xliffqa/pkg/log"
)

// 🎯 Operation is a unit of work executed by the runner
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔍 Field names the searched side of a translation unit
type Field string

const (
	FieldSource Field = "source"
	FieldTarget Field = "target"
)

// 🔧 MatchOptions describe what to search for and where
type MatchOptions struct {
	Pattern       string // Regex to search for
	Exclude       string // Anchored veto pattern, empty for none
	CaseSensitive bool
	IncludeTags   bool // Match across inline tags instead of around them
	SearchSource  bool
	SearchTarget  bool
}

// 📦 UnitMatch is the result for one translation unit and field
type UnitMatch struct {
	UnitID  string         `json:"unit_id"`
	Field   Field          `json:"field"`
	Text    string         `json:"text"`
	Matches []engine.Match `json:"matches"`
	TMSURL  string         `json:"tms_url,omitempty"`
}

// compiled holds the per-operation compiled patterns.
type compiled struct {
	pattern engine.Pattern
	exclude engine.Pattern
}

// compileOptions compiles the search and veto patterns once per operation.
func compileOptions(eng *engine.Engine, opts MatchOptions) (*compiled, error) {
	if opts.Pattern == "" {
		return nil, errors.Errorf("pattern is required")
	}
	if !opts.SearchSource && !opts.SearchTarget {
		return nil, errors.Errorf("at least one of source or target must be searched")
	}

	p, err := eng.Compile(opts.Pattern, opts.CaseSensitive)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}

	c := &compiled{pattern: p}
	if opts.Exclude != "" {
		excl, err := eng.Compile(opts.Exclude, opts.CaseSensitive)
		if err != nil {
			return nil, errors.Errorf("compiling exclude pattern: %w", err)
		}
		c.exclude = excl
	}
	return c, nil
}

// console returns the console logger from ctx, or nil when none is set.
// Operations report per-unit progress only when a console is attached.
func console(ctx context.Context) *log.Logger {
	return log.MaybeFromContext(ctx)
}
