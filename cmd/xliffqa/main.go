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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xliffkit/xliffqa/cmd/xliffqa/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xliffqa",
		Short: "Tag-aware regex find and replace for XLIFF translation files",
		Long: `xliffqa searches and rewrites XLIFF translation files with regular
expressions that respect inline markup: matches never span or contain
tags, and replacements rewrite only the text between them.`,
		SilenceUsage: true,
	}
	addRootFlags(rootCmd)

	// Flags are parsed by Execute, so dependency setup happens in a
	// PersistentPreRunE rather than up front.
	var opts commands.RootOpts
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging()
		built, err := newRootOpts(cmd.Context())
		if err != nil {
			return err
		}
		opts = *built
		return nil
	}

	rootCmd.AddCommand(
		commands.NewFindCmd(&opts),
		commands.NewReplaceCmd(&opts),
		commands.NewApplyEditsCmd(&opts),
		commands.NewBatchCmd(&opts),
		commands.NewStatsCmd(&opts),
		commands.NewPatternsCmd(&opts),
		commands.NewBackupCmd(&opts),
		commands.NewICUCmd(&opts),
		commands.NewXbenchCmd(&opts),
	)

	ctx := log.Logger.WithContext(context.Background())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
