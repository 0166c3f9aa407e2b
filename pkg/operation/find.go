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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/engine"
	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// 🔍 FindResult summarizes a find pass over one file
type FindResult struct {
	Path         string      `json:"path"`
	Units        []UnitMatch `json:"units"`
	TotalMatches int         `json:"total_matches"`
}

// 🔍 FindOperation searches one translation file
type FindOperation struct {
	Engine  *engine.Engine
	Path    string
	Options MatchOptions

	result *FindResult
}

func (op *FindOperation) Name() string {
	return fmt.Sprintf("find %q in %s", op.Options.Pattern, op.Path)
}

// Result returns the outcome after Execute has run.
func (op *FindOperation) Result() *FindResult {
	return op.result
}

func (op *FindOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	c, err := compileOptions(op.Engine, op.Options)
	if err != nil {
		return err
	}

	doc, err := xliff.Open(ctx, op.Path)
	if err != nil {
		return errors.Errorf("opening %s: %w", op.Path, err)
	}

	result := &FindResult{Path: op.Path}
	cons := console(ctx)
	if cons != nil {
		cons.StartFileRun(ctx, log.FileRun{Path: op.Path, Pattern: op.Options.Pattern, DryRun: true})
		defer cons.EndFileRun(ctx)
	}

	for _, tu := range doc.Units() {
		for _, field := range selectedFields(op.Options) {
			text, skip := unitText(tu, field)
			if skip {
				continue
			}

			matches, err := op.Engine.Find(text, c.pattern, !op.Options.IncludeTags, c.exclude)
			if err != nil {
				return errors.Errorf("searching unit %s: %w", tu.ID, err)
			}
			if len(matches) == 0 {
				continue
			}

			um := UnitMatch{
				UnitID:  tu.ID,
				Field:   field,
				Text:    text,
				Matches: matches,
			}
			if tu.TMS != nil {
				um.TMSURL = tu.TMS.URL
			}
			result.Units = append(result.Units, um)
			result.TotalMatches += len(matches)

			if cons != nil {
				cons.LogUnitOperation(ctx, log.UnitOperation{
					UnitID:  tu.ID,
					Field:   string(field),
					Status:  fmt.Sprintf("%d match(es)", len(matches)),
					IsMatch: true,
					Matches: len(matches),
				})
			}
		}
	}

	logger.Debug().
		Str("path", op.Path).
		Int("units", len(result.Units)).
		Int("matches", result.TotalMatches).
		Msg("find pass complete")

	op.result = result
	return nil
}

// selectedFields returns the fields to search, source before target.
func selectedFields(opts MatchOptions) []Field {
	var fields []Field
	if opts.SearchSource {
		fields = append(fields, FieldSource)
	}
	if opts.SearchTarget {
		fields = append(fields, FieldTarget)
	}
	return fields
}

// unitText returns the text for a field, and whether the field should be
// skipped. Untranslated units have no target to search.
func unitText(tu *xliff.TransUnit, field Field) (string, bool) {
	if field == FieldSource {
		return tu.SourceText(), false
	}
	if !tu.HasTarget() {
		return "", true
	}
	return tu.TargetText(), false
}
