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

	"github.com/xliffkit/xliffqa/pkg/operation"
	"github.com/xliffkit/xliffqa/pkg/qa"
)

// NewBatchCmd creates the batch command group
func NewBatchCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run QA profiles over many translation files",
	}

	cmd.AddCommand(
		newBatchApplyCmd(opts),
		newBatchListCmd(opts),
	)

	return cmd
}

func newBatchApplyCmd(opts *RootOpts) *cobra.Command {
	var (
		dryRun   bool
		noBackup bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <profile.xml> <files...>",
		Short: "Apply a QA profile's enabled checks to translation files",
		Long: `Apply runs every enabled check of a QA profile, in order, against the
targets of the given files. Each file is backed up at most once per run.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := qa.Load(args[0])
			if err != nil {
				return errors.Errorf("loading profile: %w", err)
			}

			op := &operation.ProfileOperation{
				Engine:  opts.Engine(),
				Backup:  opts.BackupManager(),
				Profile: profile,
				Options: operation.ReplaceOptions{
					DryRun:   dryRun,
					NoBackup: noBackup || opts.Config.Backup.Disable,
				},
				Batch: operation.BatchOptions{
					Globs:    args[1:],
					Async:    opts.Config.Async,
					Progress: !asJSON,
				},
			}
			if err := opts.Runner(cmd.Context()).Run(cmd.Context(), op); err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(op.Results())
			}

			replacements := 0
			for _, r := range op.Results() {
				replacements += r.Replacements
			}
			opts.Console.Successf("profile %q: %d replacement(s)", profile.Name, replacements)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count changes without writing")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-write backup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func newBatchListCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List QA profiles in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.Config.ProfileDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = "."
			}

			profiles, err := qa.ListProfiles(dir)
			if err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(profiles)
			}

			if len(profiles) == 0 {
				opts.Console.Warningf("no QA profiles found in %s", dir)
				return nil
			}

			data := pterm.TableData{{"Name", "Language", "Description", "Path"}}
			for _, p := range profiles {
				data = append(data, []string{p.Name, p.Language, p.Description, p.Path})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
