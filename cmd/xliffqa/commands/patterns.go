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
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/operation"
	"github.com/xliffkit/xliffqa/pkg/patterns"
)

// NewPatternsCmd creates the patterns command group
func NewPatternsCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Browse and apply the pattern library",
	}

	cmd.AddCommand(
		newPatternsListCmd(opts),
		newPatternsSearchCmd(opts),
		newPatternsApplyCmd(opts),
	)

	return cmd
}

func newPatternsListCmd(opts *RootOpts) *cobra.Command {
	var (
		category    string
		tag         string
		enabledOnly bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.Library()
			if err != nil {
				return err
			}

			matched := lib.Filter(category, tag, enabledOnly)
			if asJSON {
				return opts.printJSON(matched)
			}
			return renderPatterns(matched)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict to one category")
	cmd.Flags().StringVar(&tag, "tag", "", "restrict to one tag")
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only enabled patterns")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func newPatternsSearchCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search patterns by name, description, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.Library()
			if err != nil {
				return err
			}

			matched := lib.Search(args[0])
			if asJSON {
				return opts.printJSON(matched)
			}
			if len(matched) == 0 {
				opts.Console.Warningf("no patterns match %q", args[0])
				return nil
			}
			return renderPatterns(matched)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func newPatternsApplyCmd(opts *RootOpts) *cobra.Command {
	var (
		dryRun   bool
		noBackup bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <name> <files...>",
		Short: "Apply a library pattern to translation files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.Library()
			if err != nil {
				return err
			}

			p := lib.ByName(args[0])
			if p == nil {
				return errors.Errorf("no pattern named %q in the library", args[0])
			}
			if p.Replacement == "" {
				return errors.Errorf("pattern %q is search-only and cannot be applied", p.Name)
			}

			ctx := cmd.Context()
			if !asJSON {
				ctx = log.NewContext(ctx, opts.Console)
			}

			op := &operation.BatchReplaceOperation{
				Engine: opts.Engine(),
				Backup: opts.BackupManager(),
				Options: operation.ReplaceOptions{
					MatchOptions: operation.MatchOptions{
						Pattern:       p.Pattern,
						CaseSensitive: opts.Config.Engine.CaseSensitive,
					},
					Replacement: p.Replacement,
					DryRun:      dryRun,
					NoBackup:    noBackup || opts.Config.Backup.Disable,
				},
				Batch: operation.BatchOptions{
					Globs: args[1:],
					Async: opts.Config.Async,
				},
			}
			if err := opts.Runner(ctx).Run(ctx, op); err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(op.Results())
			}

			replacements := 0
			for _, r := range op.Results() {
				replacements += r.Replacements
			}
			opts.Console.Successf("pattern %q: %d replacement(s)", p.Name, replacements)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count changes without writing")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-write backup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func renderPatterns(list []patterns.Pattern) error {
	data := pterm.TableData{{"Name", "Category", "Enabled", "Pattern", "Replacement"}}
	for _, p := range list {
		enabled := ""
		if p.Enabled {
			enabled = "yes"
		}
		data = append(data, []string{p.Name, p.Category, enabled, p.Pattern, p.Replacement})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
