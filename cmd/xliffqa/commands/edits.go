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

	"github.com/xliffkit/xliffqa/pkg/operation"
)

// NewApplyEditsCmd creates the apply-edits command
func NewApplyEditsCmd(opts *RootOpts) *cobra.Command {
	var (
		noBackup bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "apply-edits <file> <edits.json>",
		Short: "Apply reviewed target edits from a JSON file",
		Long: `Apply-edits writes target texts from a JSON array of
{"id": ..., "target": ...} objects into the matching translation units.
The file is backed up before the write unless --no-backup is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op := &operation.ApplyEditsOperation{
				Backup:    opts.BackupManager(),
				Path:      args[0],
				EditsPath: args[1],
				NoBackup:  noBackup || opts.Config.Backup.Disable,
			}
			if err := opts.Runner(ctx).Run(ctx, op); err != nil {
				return err
			}

			result := op.Result()
			if asJSON {
				return opts.printJSON(result)
			}

			for _, id := range result.UnknownIDs {
				opts.Console.Warningf("no unit with id %q in %s", id, result.Path)
			}
			if result.BackupPath != "" {
				opts.Console.Infof("backup created: %s", result.BackupPath)
			}
			opts.Console.Successf("applied %d edit(s) to %s", result.Applied, result.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-write backup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
