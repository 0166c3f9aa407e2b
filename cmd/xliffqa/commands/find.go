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

	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/operation"
)

// NewFindCmd creates the find command
func NewFindCmd(opts *RootOpts) *cobra.Command {
	var (
		searchSource  bool
		searchTarget  bool
		exclude       string
		caseSensitive bool
		includeTags   bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "find <pattern> <files...>",
		Short: "Search translation files for a regex pattern",
		Long: `Find searches the text of translation units for a regex pattern.
Inline tags are skipped by default, so a match never spans or contains
markup. An exclude pattern vetoes matches it anchors at.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !asJSON {
				ctx = log.NewContext(ctx, opts.Console)
			}

			if !searchSource && !searchTarget {
				searchTarget = true
			}

			op := &operation.BatchFindOperation{
				Engine: opts.Engine(),
				Options: operation.MatchOptions{
					Pattern:       args[0],
					Exclude:       exclude,
					CaseSensitive: caseSensitive,
					IncludeTags:   includeTags,
					SearchSource:  searchSource,
					SearchTarget:  searchTarget,
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

			total := 0
			for _, r := range op.Results() {
				total += r.TotalMatches
			}
			opts.Console.Successf("%d match(es) in %d file(s)", total, len(op.Results()))
			for _, r := range op.Results() {
				for _, u := range r.Units {
					if u.TMSURL != "" {
						opts.Console.Infof("unit %s: %s", u.UnitID, u.TMSURL)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&searchSource, "source", false, "search source segments")
	cmd.Flags().BoolVar(&searchTarget, "target", false, "search target segments (default)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "veto matches this pattern anchors at")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", true, "match case sensitively")
	cmd.Flags().BoolVar(&includeTags, "include-tags", false, "match across inline tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
