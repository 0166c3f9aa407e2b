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

	"github.com/xliffkit/xliffqa/pkg/backup"
	"github.com/xliffkit/xliffqa/pkg/engine"
	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// 🔧 ReplaceOptions extend MatchOptions with rewrite behavior. Replacements
// only ever touch targets; SearchSource/SearchTarget in the embedded options
// are ignored.
type ReplaceOptions struct {
	MatchOptions
	Replacement     string // Template, $N / \N / ${N} refer to capture groups
	MaxReplacements int    // Total cap across one target's text runs, 0 means unlimited
	DryRun        bool   // Count without writing
	Output        string // Write to this path instead of in place
	NoBackup      bool   // Skip the pre-write backup
}

// 📦 UnitChange records a rewritten translation unit
type UnitChange struct {
	UnitID       string `json:"unit_id"`
	Before       string `json:"before"`
	After        string `json:"after"`
	Replacements int    `json:"replacements"`
	TMSURL       string `json:"tms_url,omitempty"`
}

// 🔄 ReplaceResult summarizes a replace pass over one file
type ReplaceResult struct {
	Path          string       `json:"path"`
	Changes       []UnitChange `json:"changes"`
	Replacements  int          `json:"replacements"`
	ModifiedUnits int          `json:"modified_units"`
	BackupPath    string       `json:"backup_path,omitempty"`
	DryRun        bool         `json:"dry_run"`
}

// 🔄 ReplaceOperation rewrites targets in one translation file
type ReplaceOperation struct {
	Engine  *engine.Engine
	Backup  *backup.Manager
	Path    string
	Options ReplaceOptions

	result *ReplaceResult
}

func (op *ReplaceOperation) Name() string {
	return fmt.Sprintf("replace %q in %s", op.Options.Pattern, op.Path)
}

// Result returns the outcome after Execute has run.
func (op *ReplaceOperation) Result() *ReplaceResult {
	return op.result
}

func (op *ReplaceOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	c, err := compileReplaceOptions(op.Engine, op.Options)
	if err != nil {
		return err
	}

	doc, err := xliff.Open(ctx, op.Path)
	if err != nil {
		return errors.Errorf("opening %s: %w", op.Path, err)
	}

	result := &ReplaceResult{Path: op.Path, DryRun: op.Options.DryRun}
	cons := console(ctx)
	if cons != nil {
		cons.StartFileRun(ctx, log.FileRun{Path: op.Path, Pattern: op.Options.Pattern, DryRun: op.Options.DryRun})
		defer cons.EndFileRun(ctx)
	}

	for _, tu := range doc.Units() {
		if !tu.HasTarget() {
			if cons != nil {
				cons.LogUnitOperation(ctx, log.UnitOperation{
					UnitID: tu.ID, Field: string(FieldTarget), Status: "SKIPPED", IsSkipped: true,
				})
			}
			continue
		}

		before := tu.TargetText()
		after, n, err := op.Engine.Replace(before, c.pattern, op.Options.Replacement,
			!op.Options.IncludeTags, op.Options.MaxReplacements, c.exclude)
		if err != nil {
			return errors.Errorf("replacing in unit %s: %w", tu.ID, err)
		}
		if n == 0 || after == before {
			continue
		}

		change := UnitChange{UnitID: tu.ID, Before: before, After: after, Replacements: n}
		if tu.TMS != nil {
			change.TMSURL = tu.TMS.URL
		}
		result.Changes = append(result.Changes, change)
		result.Replacements += n
		result.ModifiedUnits++

		if !op.Options.DryRun {
			tu.SetTargetText(after)
		}

		if cons != nil {
			cons.LogUnitOperation(ctx, log.UnitOperation{
				UnitID:       tu.ID,
				Field:        string(FieldTarget),
				Status:       "REPLACED",
				IsModified:   true,
				Matches:      n,
				Replacements: n,
			})
		}
	}

	if !op.Options.DryRun && result.ModifiedUnits > 0 {
		if err := op.write(ctx, doc, result); err != nil {
			return err
		}
	}

	logger.Debug().
		Str("path", op.Path).
		Int("units", result.ModifiedUnits).
		Int("replacements", result.Replacements).
		Bool("dry_run", op.Options.DryRun).
		Msg("replace pass complete")

	op.result = result
	return nil
}

// write persists the modified document, backing up the original first when
// writing in place.
func (op *ReplaceOperation) write(ctx context.Context, doc *xliff.Document, result *ReplaceResult) error {
	if op.Options.Output != "" {
		if err := doc.SaveAs(op.Options.Output); err != nil {
			return errors.Errorf("writing %s: %w", op.Options.Output, err)
		}
		return nil
	}

	if !op.Options.NoBackup && op.Backup != nil {
		backupPath, err := op.Backup.Create(ctx, op.Path)
		if err != nil {
			return errors.Errorf("backing up before write: %w", err)
		}
		result.BackupPath = backupPath
	}

	if err := doc.Save(); err != nil {
		return errors.Errorf("writing %s: %w", op.Path, err)
	}
	return nil
}

// compileReplaceOptions validates replace-specific fields before compiling.
// Field selection does not apply here, so it is not validated.
func compileReplaceOptions(eng *engine.Engine, opts ReplaceOptions) (*compiled, error) {
	if opts.MaxReplacements < 0 {
		return nil, errors.Errorf("max replacements must not be negative")
	}
	match := opts.MatchOptions
	match.SearchTarget = true
	return compileOptions(eng, match)
}
