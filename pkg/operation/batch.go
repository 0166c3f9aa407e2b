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
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/xliffkit/xliffqa/pkg/backup"
	"github.com/xliffkit/xliffqa/pkg/engine"
	"github.com/xliffkit/xliffqa/pkg/qa"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// defaultWorkers bounds concurrent file processing in async batches.
const defaultWorkers = 4

// 🔧 BatchOptions control how a set of files is processed
type BatchOptions struct {
	Globs    []string // Glob patterns, ** supported
	Async    bool     // Process files concurrently
	Workers  int      // Concurrent files, defaults to 4
	Progress bool     // Show a progress bar
}

// ExpandGlobs resolves the glob patterns to a sorted, deduplicated list of
// supported translation files.
func ExpandGlobs(globs []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string

	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !xliff.IsSupported(match) || seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// 📚 BatchFindOperation searches many translation files
type BatchFindOperation struct {
	Engine  *engine.Engine
	Options MatchOptions
	Batch   BatchOptions

	mu      sync.Mutex
	results []FindResult
}

func (op *BatchFindOperation) Name() string {
	return "batch find"
}

// Results returns per-file outcomes after Execute, sorted by path.
func (op *BatchFindOperation) Results() []FindResult {
	return op.results
}

func (op *BatchFindOperation) Execute(ctx context.Context) error {
	return runBatch(ctx, op.Batch, func(ctx context.Context, path string) error {
		find := &FindOperation{Engine: op.Engine, Path: path, Options: op.Options}
		if err := find.Execute(ctx); err != nil {
			return err
		}
		op.mu.Lock()
		op.results = append(op.results, *find.Result())
		op.mu.Unlock()
		return nil
	}, func() {
		sort.Slice(op.results, func(i, j int) bool { return op.results[i].Path < op.results[j].Path })
	})
}

// 📚 BatchReplaceOperation rewrites many translation files
type BatchReplaceOperation struct {
	Engine  *engine.Engine
	Backup  *backup.Manager
	Options ReplaceOptions
	Batch   BatchOptions

	mu      sync.Mutex
	results []ReplaceResult
}

func (op *BatchReplaceOperation) Name() string {
	return "batch replace"
}

// Results returns per-file outcomes after Execute, sorted by path.
func (op *BatchReplaceOperation) Results() []ReplaceResult {
	return op.results
}

func (op *BatchReplaceOperation) Execute(ctx context.Context) error {
	return runBatch(ctx, op.Batch, func(ctx context.Context, path string) error {
		replace := &ReplaceOperation{Engine: op.Engine, Backup: op.Backup, Path: path, Options: op.Options}
		if err := replace.Execute(ctx); err != nil {
			return err
		}
		op.mu.Lock()
		op.results = append(op.results, *replace.Result())
		op.mu.Unlock()
		return nil
	}, func() {
		sort.Slice(op.results, func(i, j int) bool { return op.results[i].Path < op.results[j].Path })
	})
}

// 📋 ProfileOperation applies a QA profile's enabled checks, in order, to
// many translation files. Each check is a full replace pass; a file is backed
// up at most once.
type ProfileOperation struct {
	Engine  *engine.Engine
	Backup  *backup.Manager
	Profile *qa.Profile
	Options ReplaceOptions // Pattern/Replacement/Exclude come from the checks
	Batch   BatchOptions

	mu      sync.Mutex
	results []ReplaceResult
}

func (op *ProfileOperation) Name() string {
	return "apply profile " + op.Profile.Name
}

// Results returns per-file, per-check outcomes after Execute.
func (op *ProfileOperation) Results() []ReplaceResult {
	return op.results
}

func (op *ProfileOperation) Execute(ctx context.Context) error {
	checks := op.Profile.EnabledChecks()
	if len(checks) == 0 {
		return errors.Errorf("profile %q has no enabled checks", op.Profile.Name)
	}

	return runBatch(ctx, op.Batch, func(ctx context.Context, path string) error {
		backedUp := false
		for _, check := range checks {
			opts := op.Options
			opts.Pattern = check.Pattern
			opts.Replacement = check.Replacement
			opts.Exclude = check.ExcludePattern
			opts.CaseSensitive = check.CaseSensitive
			if backedUp {
				opts.NoBackup = true
			}

			replace := &ReplaceOperation{Engine: op.Engine, Backup: op.Backup, Path: path, Options: opts}
			if err := replace.Execute(ctx); err != nil {
				return errors.Errorf("check %q: %w", check.Name, err)
			}

			result := replace.Result()
			if result.BackupPath != "" {
				backedUp = true
			}
			op.mu.Lock()
			op.results = append(op.results, *result)
			op.mu.Unlock()
		}
		return nil
	}, func() {
		sort.SliceStable(op.results, func(i, j int) bool { return op.results[i].Path < op.results[j].Path })
	})
}

// runBatch expands the globs and feeds each file to process, concurrently
// when async is set. finish runs once after all files are done.
func runBatch(ctx context.Context, opts BatchOptions, process func(context.Context, string) error, finish func()) error {
	logger := zerolog.Ctx(ctx)

	paths, err := ExpandGlobs(opts.Globs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.Errorf("no translation files match %v", opts.Globs)
	}

	var bar *pterm.ProgressbarPrinter
	if opts.Progress {
		bar, err = pterm.DefaultProgressbar.WithTotal(len(paths)).WithTitle("processing").Start()
		if err != nil {
			return errors.Errorf("starting progress bar: %w", err)
		}
		defer func() { _, _ = bar.Stop() }()
	}

	workers := 1
	if opts.Async {
		workers = opts.Workers
		if workers <= 0 {
			workers = defaultWorkers
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var barMu sync.Mutex
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := process(gctx, path); err != nil {
				return err
			}
			if bar != nil {
				barMu.Lock()
				bar.Increment()
				barMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	finish()
	logger.Debug().Int("files", len(paths)).Int("workers", workers).Msg("batch complete")
	return nil
}
