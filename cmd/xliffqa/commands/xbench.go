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

	"github.com/xliffkit/xliffqa/pkg/xbench"
)

// NewXbenchCmd creates the xbench command group
func NewXbenchCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xbench",
		Short: "Inspect and import Xbench checklists",
	}

	cmd.AddCommand(
		newXbenchInspectCmd(opts),
		newXbenchImportCmd(opts),
	)

	return cmd
}

func newXbenchInspectCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.xbckl>",
		Short: "Show the contents of an Xbench checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := xbench.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return opts.printJSON(struct {
					Name  string        `json:"name"`
					Stats xbench.Stats  `json:"stats"`
					Items []xbench.Item `json:"items"`
				}{checklist.Name, checklist.Statistics(), checklist.Items})
			}

			stats := checklist.Statistics()
			opts.Console.Infof("%s: %d item(s), %d regex, %d enabled, %d with replacement",
				checklist.Name, stats.Total, stats.Regex, stats.Enabled, stats.WithReplacement)

			data := pterm.TableData{{"ID", "Name", "Regex", "Enabled", "Pattern"}}
			for _, item := range checklist.Items {
				data = append(data, []string{
					item.ID,
					item.Name,
					fmt.Sprintf("%t", item.IsRegex),
					fmt.Sprintf("%t", item.Enabled),
					item.SearchText,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}

func newXbenchImportCmd(opts *RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xbckl>",
		Short: "Import a checklist's regex items into the pattern library",
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := xbench.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			lib, err := opts.Library()
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			for _, p := range checklist.ExportPatterns() {
				if err := lib.Add(p); err != nil {
					opts.Console.Warningf("skipping %q: %v", p.Name, err)
					skipped++
					continue
				}
				imported++
			}

			if imported > 0 {
				if err := lib.Save(); err != nil {
					return err
				}
			}
			opts.Console.Successf("imported %d pattern(s), skipped %d", imported, skipped)
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	return cmd
}
