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

package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/operation"
)

// NewReplaceCmd creates the replace command
func NewReplaceCmd(opts *RootOpts) *cobra.Command {
	var (
		exclude         string
		caseSensitive   bool
		includeTags     bool
		maxReplacements int
		dryRun          bool
		output          string
		noBackup        bool
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "replace <pattern> <replacement> <files...>",
		Short: "Replace a regex pattern in translation targets",
		Long: `Replace rewrites target segments. $1, \1 and ${1} in the replacement
refer to capture groups. Inline tags are never touched: each text run
between tags is substituted on its own. Files are backed up before the
first write unless --no-backup is set.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !asJSON {
				ctx = log.NewContext(ctx, opts.Console)
			}

			if output != "" && len(args) > 3 {
				return errors.Errorf("--output only works with a single input file")
			}

			op := &operation.BatchReplaceOperation{
				Engine: opts.Engine(),
				Backup: opts.BackupManager(),
				Options: operation.ReplaceOptions{
					MatchOptions: operation.MatchOptions{
						Pattern:       args[0],
						Exclude:       exclude,
						CaseSensitive: caseSensitive,
						IncludeTags:   includeTags,
					},
					Replacement:     args[1],
					MaxReplacements: maxReplacements,
					DryRun:          dryRun,
					Output:          output,
					NoBackup:        noBackup || opts.Config.Backup.Disable,
				},
				Batch: operation.BatchOptions{
					Globs: args[2:],
					Async: opts.Config.Async,
				},
			}
			if err := opts.Runner(ctx).Run(ctx, op); err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(op.Results())
			}

			replacements, files := 0, 0
			for _, r := range op.Results() {
				replacements += r.Replacements
				if r.ModifiedUnits > 0 {
					files++
				}
			}
			if dryRun {
				opts.Console.Infof("dry run: %d replacement(s) would be made in %d file(s)", replacements, files)
			} else {
				opts.Console.Successf("%d replacement(s) made in %d file(s)", replacements, files)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "veto matches this pattern anchors at")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", true, "match case sensitively")
	cmd.Flags().BoolVar(&includeTags, "include-tags", false, "match across inline tags")
	cmd.Flags().IntVar(&maxReplacements, "max-replacements", 0, "cap total replacements per target, 0 for unlimited")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count changes without writing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of in place")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-write backup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
