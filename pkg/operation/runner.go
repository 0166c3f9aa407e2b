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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations. In async mode the operation runs on its own
// goroutine so a cancelled context interrupts a long batch instead of waiting
// it out.
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// NewRunner creates a runner; async typically comes from the config.
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// Run executes op and logs its outcome with timing.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	started := time.Now()

	var err error
	if r.async {
		err = r.runDetached(ctx, op)
	} else {
		err = op.Execute(ctx)
	}
	if err != nil {
		return errors.Errorf("executing %s: %w", op.Name(), err)
	}

	r.logger.Debug().
		Str("operation", op.Name()).
		Bool("async", r.async).
		Dur("elapsed", time.Since(started)).
		Msg("operation complete")
	return nil
}

// runDetached runs op on a separate goroutine and races its completion
// against ctx.
func (r *Runner) runDetached(ctx context.Context, op Operation) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-errCh:
		return err
	}
}
