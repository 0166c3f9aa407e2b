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
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/xliffkit/xliffqa/pkg/backup"
	"github.com/xliffkit/xliffqa/pkg/xliff"
)

// ✏️ UnitEdit is one reviewed target text, keyed by translation unit id.
type UnitEdit struct {
	ID     string `json:"id"`
	Target string `json:"target"`
}

// ✏️ ApplyEditsResult summarizes an edits pass over one file
type ApplyEditsResult struct {
	Path       string   `json:"path"`
	Applied    int      `json:"applied"`
	UnknownIDs []string `json:"unknown_ids,omitempty"`
	BackupPath string   `json:"backup_path,omitempty"`
}

// ✏️ ApplyEditsOperation writes reviewed target texts from a JSON edits file
// into one translation file. Edits for ids the file does not contain are
// reported, not applied; the file is backed up before the write.
type ApplyEditsOperation struct {
	Backup    *backup.Manager
	Path      string
	EditsPath string
	NoBackup  bool

	result *ApplyEditsResult
}

func (op *ApplyEditsOperation) Name() string {
	return fmt.Sprintf("apply edits from %s to %s", op.EditsPath, op.Path)
}

// Result returns the outcome after Execute has run.
func (op *ApplyEditsOperation) Result() *ApplyEditsResult {
	return op.result
}

func (op *ApplyEditsOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	edits, err := LoadEdits(op.EditsPath)
	if err != nil {
		return err
	}

	doc, err := xliff.Open(ctx, op.Path)
	if err != nil {
		return errors.Errorf("opening %s: %w", op.Path, err)
	}

	// Later edits for the same id win, matching the order of the file.
	byID := make(map[string]string, len(edits))
	for _, edit := range edits {
		byID[edit.ID] = edit.Target
	}

	result := &ApplyEditsResult{Path: op.Path}
	for _, tu := range doc.Units() {
		target, ok := byID[tu.ID]
		if !ok {
			continue
		}
		tu.SetTargetText(target)
		result.Applied++
		delete(byID, tu.ID)
	}

	for id := range byID {
		result.UnknownIDs = append(result.UnknownIDs, id)
	}
	sort.Strings(result.UnknownIDs)

	if result.Applied > 0 {
		if !op.NoBackup && op.Backup != nil {
			backupPath, err := op.Backup.Create(ctx, op.Path)
			if err != nil {
				return errors.Errorf("backing up before write: %w", err)
			}
			result.BackupPath = backupPath
		}
		if err := doc.Save(); err != nil {
			return errors.Errorf("writing %s: %w", op.Path, err)
		}
	}

	logger.Debug().
		Str("path", op.Path).
		Int("applied", result.Applied).
		Int("unknown", len(result.UnknownIDs)).
		Msg("edits applied")

	op.result = result
	return nil
}

// LoadEdits reads a JSON array of unit edits.
func LoadEdits(path string) ([]UnitEdit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading edits file %s: %w", path, err)
	}

	var edits []UnitEdit
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, errors.Errorf("parsing edits file %s: %w", path, err)
	}
	return edits, nil
}
