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

// Package backup creates and manages timestamped copies of translation
// files before they are modified.
package backup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const timestampLayout = "20060102_150405"

// 💾 Manager creates and restores backups. With an empty Dir, backups are
// placed next to the original file with a _backup_ suffix; otherwise they go
// into Dir named stem_timestamp.ext.
type Manager struct {
	Dir string
}

// Info describes one backup file.
type Info struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Create copies path to a new timestamped backup and returns the backup path.
func (m *Manager) Create(ctx context.Context, path string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(path); err != nil {
		return "", errors.Errorf("source file: %w", err)
	}

	stem, ext := splitName(path)
	timestamp := time.Now().Format(timestampLayout)

	var backupPath string
	if m.Dir != "" {
		if err := os.MkdirAll(m.Dir, 0o755); err != nil {
			return "", errors.Errorf("creating backup directory: %w", err)
		}
		backupPath = filepath.Join(m.Dir, stem+"_"+timestamp+ext)
	} else {
		backupPath = filepath.Join(filepath.Dir(path), stem+"_backup_"+timestamp+ext)
	}

	if err := copyFile(path, backupPath); err != nil {
		return "", errors.Errorf("copying to backup: %w", err)
	}

	logger.Debug().Str("source", path).Str("backup", backupPath).Msg("backup created")
	return backupPath, nil
}

// List returns the backups for path, newest first.
func (m *Manager) List(path string) ([]Info, error) {
	stem, ext := splitName(path)

	var dir, pattern string
	if m.Dir != "" {
		dir = m.Dir
		pattern = stem + "_*" + ext
	} else {
		dir = filepath.Dir(path)
		pattern = stem + "_backup_*" + ext
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Errorf("listing backups: %w", err)
	}

	var infos []Info
	for _, match := range matches {
		stat, err := os.Stat(match)
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Path:     match,
			Name:     filepath.Base(match),
			Size:     stat.Size(),
			Modified: stat.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Modified.Equal(infos[j].Modified) {
			// Timestamps in the names tie-break same-second backups.
			return infos[i].Name > infos[j].Name
		}
		return infos[i].Modified.After(infos[j].Modified)
	})

	return infos, nil
}

// Restore copies backupPath over targetPath. With an empty targetPath the
// original filename is derived from the backup name. The current file, if
// any, is backed up first.
func (m *Manager) Restore(ctx context.Context, backupPath, targetPath string) error {
	logger := zerolog.Ctx(ctx)

	if _, err := os.Stat(backupPath); err != nil {
		return errors.Errorf("backup file: %w", err)
	}

	if targetPath == "" {
		derived, err := deriveOriginal(backupPath)
		if err != nil {
			return err
		}
		targetPath = derived
	}

	if _, err := os.Stat(targetPath); err == nil {
		if _, err := m.Create(ctx, targetPath); err != nil {
			return errors.Errorf("backing up current file before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, targetPath); err != nil {
		return errors.Errorf("restoring backup: %w", err)
	}

	logger.Debug().Str("backup", backupPath).Str("target", targetPath).Msg("backup restored")
	return nil
}

// Cleanup deletes all but the keep newest backups for path, returning how
// many were removed.
func (m *Manager) Cleanup(ctx context.Context, path string, keep int) (int, error) {
	logger := zerolog.Ctx(ctx)

	backups, err := m.List(path)
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil {
			logger.Warn().Str("backup", b.Path).Err(err).Msg("failed to delete backup")
			continue
		}
		deleted++
	}

	logger.Debug().Int("deleted", deleted).Int("kept", keep).Msg("backup cleanup complete")
	return deleted, nil
}

// GetInfo returns metadata for one backup file.
func (m *Manager) GetInfo(backupPath string) (*Info, error) {
	stat, err := os.Stat(backupPath)
	if err != nil {
		return nil, errors.Errorf("backup file: %w", err)
	}
	return &Info{
		Path:     backupPath,
		Name:     filepath.Base(backupPath),
		Size:     stat.Size(),
		Modified: stat.ModTime(),
	}, nil
}

// deriveOriginal recovers the original filename from a _backup_ style name:
// name_backup_YYYYMMDD_HHMMSS.ext -> name.ext in the same directory.
func deriveOriginal(backupPath string) (string, error) {
	stem, ext := splitName(backupPath)
	idx := strings.LastIndex(stem, "_backup_")
	if idx < 0 {
		return "", errors.Errorf("cannot determine original filename from %q", filepath.Base(backupPath))
	}
	return filepath.Join(filepath.Dir(backupPath), stem[:idx]+ext), nil
}

func splitName(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	stat, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, stat.Mode().Perm())
}
