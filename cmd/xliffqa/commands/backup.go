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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewBackupCmd creates the backup command group
func NewBackupCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "List, restore, and prune file backups",
	}

	cmd.AddCommand(
		newBackupListCmd(opts),
		newBackupRestoreCmd(opts),
		newBackupCleanupCmd(opts),
	)

	return cmd
}

func newBackupListCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List backups of a translation file, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := opts.BackupManager().List(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(backups)
			}

			if len(backups) == 0 {
				opts.Console.Warningf("no backups found for %s", args[0])
				return nil
			}

			data := pterm.TableData{{"Name", "Size", "Modified"}}
			for _, b := range backups {
				data = append(data, []string{
					b.Name,
					fmt.Sprintf("%d", b.Size),
					b.Modified.Format("2006-01-02 15:04:05"),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func newBackupRestoreCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup> [target]",
		Short: "Restore a backup over its original file",
		Long: `Restore copies a backup back over the original file. Without an explicit
target, the original name is derived from the backup filename. The current
file is backed up first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 2 {
				target = args[1]
			}
			if err := opts.BackupManager().Restore(cmd.Context(), args[0], target); err != nil {
				return err
			}
			opts.Console.Successf("restored %s", args[0])
			return nil
		},
	}

	return cmd
}

func newBackupCleanupCmd(opts *RootOpts) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "cleanup <file>",
		Short: "Delete all but the newest backups of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep <= 0 {
				keep = opts.Config.Backup.Keep
			}
			deleted, err := opts.BackupManager().Cleanup(cmd.Context(), args[0], keep)
			if err != nil {
				return err
			}
			opts.Console.Successf("deleted %d backup(s), kept the newest %d", deleted, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "backups to keep (defaults to the configured count)")

	return cmd
}
