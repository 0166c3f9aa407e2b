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

	"github.com/xliffkit/xliffqa/pkg/operation"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// fileStats pairs a path with its document statistics for JSON output.
type fileStats struct {
	Path  string      `json:"path"`
	Stats xliff.Stats `json:"stats"`
}

// NewStatsCmd creates the stats command
func NewStatsCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <files...>",
		Short: "Show translation unit counts per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := operation.ExpandGlobs(args)
			if err != nil {
				return err
			}

			var all []fileStats
			for _, path := range paths {
				doc, err := xliff.Open(cmd.Context(), path)
				if err != nil {
					opts.Console.Warningf("skipping %s: %v", path, err)
					continue
				}
				all = append(all, fileStats{Path: path, Stats: doc.Stats()})
			}

			if asJSON {
				return opts.printJSON(all)
			}

			data := pterm.TableData{{"File", "Units", "Translated", "Untranslated"}}
			for _, fs := range all {
				data = append(data, []string{
					fs.Path,
					fmt.Sprintf("%d", fs.Stats.TotalUnits),
					fmt.Sprintf("%d", fs.Stats.Translated),
					fmt.Sprintf("%d", fs.Stats.Untranslated),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
