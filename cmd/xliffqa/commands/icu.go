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

	"github.com/xliffkit/xliffqa/pkg/icu"
	"github.com/xliffkit/xliffqa/pkg/operation"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// icuIssue is one failed ICU validation for JSON output.
type icuIssue struct {
	Path        string   `json:"path"`
	UnitID      string   `json:"unit_id"`
	Errors      []string `json:"errors"`
	Suggestions string   `json:"suggestions,omitempty"`
	TMSURL      string   `json:"tms_url,omitempty"`
}

// NewICUCmd creates the icu command
func NewICUCmd(opts *RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "icu <files...>",
		Short: "Validate ICU MessageFormat syntax in translated targets",
		Long: `ICU checks every translated unit whose source carries ICU MessageFormat
syntax: keywords, category selectors, braces, variable names, and plural
hashes must survive translation intact.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := operation.ExpandGlobs(args)
			if err != nil {
				return err
			}

			var issues []icuIssue
			checked := 0
			for _, path := range paths {
				doc, err := xliff.Open(cmd.Context(), path)
				if err != nil {
					opts.Console.Warningf("skipping %s: %v", path, err)
					continue
				}

				for _, tu := range doc.Units() {
					source := tu.SourceText()
					if !icu.HasSyntax(source) || !tu.HasTarget() {
						continue
					}
					checked++

					errs := icu.ValidateSegment(source, tu.TargetText())
					if len(errs) == 0 {
						continue
					}

					issue := icuIssue{
						Path:        path,
						UnitID:      tu.ID,
						Errors:      errs,
						Suggestions: icu.Suggestions(source, tu.TargetText()),
					}
					if tu.TMS != nil {
						issue.TMSURL = tu.TMS.URL
					}
					issues = append(issues, issue)
				}
			}

			if asJSON {
				return opts.printJSON(issues)
			}

			for _, issue := range issues {
				opts.Console.Errorf("%s unit %s:", issue.Path, issue.UnitID)
				for _, e := range issue.Errors {
					opts.Console.Infof("  %s", e)
				}
				if issue.Suggestions != "" {
					opts.Console.Infof("  fix: %s", issue.Suggestions)
				}
			}
			if len(issues) == 0 {
				opts.Console.Successf("%d ICU unit(s) checked, no problems", checked)
			} else {
				opts.Console.Warningf("%d of %d ICU unit(s) have problems", len(issues), checked)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit results as JSON")

	return cmd
}
