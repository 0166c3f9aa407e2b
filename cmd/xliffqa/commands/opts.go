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

// Package commands holds the xliffqa subcommands.
package commands

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/backup"
	"github.com/xliffkit/xliffqa/pkg/config"
	"github.com/xliffkit/xliffqa/pkg/engine"
	"github.com/xliffkit/xliffqa/pkg/log"
	"github.com/xliffkit/xliffqa/pkg/operation"
	"github.com/xliffkit/xliffqa/pkg/patterns"
)

// 🔧 RootOpts carries shared dependencies into subcommands
type RootOpts struct {
	Config  *config.Config
	Console *log.Logger
	Stdout  io.Writer
}

// Engine builds the regex engine selected by the config.
func (o *RootOpts) Engine() *engine.Engine {
	return engine.New(engine.Backend(o.Config.Engine.Backend))
}

// BackupManager builds the backup manager from the config.
func (o *RootOpts) BackupManager() *backup.Manager {
	return &backup.Manager{Dir: o.Config.Backup.Dir}
}

// Runner builds an operation runner honoring the configured async mode.
func (o *RootOpts) Runner(ctx context.Context) *operation.Runner {
	return operation.NewRunner(zerolog.Ctx(ctx), o.Config.Async)
}

// Library loads the pattern library, custom patterns included.
func (o *RootOpts) Library() (*patterns.Library, error) {
	lib := patterns.NewLibrary(o.Config.PatternFile)
	if err := lib.LoadCustom(); err != nil {
		return nil, errors.Errorf("loading pattern library: %w", err)
	}
	return lib, nil
}

// printJSON writes v as indented JSON to stdout.
func (o *RootOpts) printJSON(v any) error {
	enc := json.NewEncoder(o.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Errorf("encoding JSON: %w", err)
	}
	return nil
}
