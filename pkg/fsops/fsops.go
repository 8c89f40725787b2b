// Copyright 2025 walteh LLC
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

// Package fsops performs the filesystem side effects of doctidy, relative to a
// base directory.
package fsops

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrIsDir is returned when a file operation targets a directory
	ErrIsDir = errors.Base("is a directory")
	// ErrNotDir is returned when a directory operation targets a file
	ErrNotDir = errors.Base("not a directory")
	// ErrDestinationExists is returned when a rename would overwrite a file
	ErrDestinationExists = errors.Base("destination already exists")
)

// 💾 FileManager handles all file system operations
type FileManager interface {
	// Queries
	Exists(ctx context.Context, path string) (bool, error)
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Mutations
	DeleteFile(ctx context.Context, path string) error
	RemoveDir(ctx context.Context, path string) error
	Rename(ctx context.Context, from, to string) error
	WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) error
}

// 🔧 Manager implements FileManager on the local disk
type Manager struct {
	baseDir string // Base directory for all operations
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new manager rooted at baseDir
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// 📂 BaseDir returns the directory all paths are resolved against
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 Abs returns the on-disk path for a given relative path
func (m *Manager) Abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(m.Abs(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking existence: %w", err)
}

func (m *Manager) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	info, err := os.Stat(m.Abs(path))
	if err != nil {
		return nil, errors.Errorf("stat: %w", err)
	}
	return info, nil
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.Abs(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// DeleteFile unlinks a single non-directory entry. It is not reversible.
func (m *Manager) DeleteFile(ctx context.Context, path string) error {
	absPath := m.Abs(path)

	info, err := os.Lstat(absPath)
	if err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	if info.IsDir() {
		return errors.Errorf("deleting file %s: %w", path, ErrIsDir)
	}

	if err := os.Remove(absPath); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Msg("deleted file")
	return nil
}

// RemoveDir removes a directory and everything below it.
func (m *Manager) RemoveDir(ctx context.Context, path string) error {
	absPath := m.Abs(path)

	info, err := os.Lstat(absPath)
	if err != nil {
		return errors.Errorf("removing directory: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("removing directory %s: %w", path, ErrNotDir)
	}

	if err := os.RemoveAll(absPath); err != nil {
		return errors.Errorf("removing directory: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Msg("removed directory")
	return nil
}

// Rename moves from to to without touching content. An existing destination
// is never overwritten.
func (m *Manager) Rename(ctx context.Context, from, to string) error {
	absFrom, absTo := m.Abs(from), m.Abs(to)

	exists, err := m.Exists(ctx, absTo)
	if err != nil {
		return errors.Errorf("renaming %s: %w", from, err)
	}
	if exists {
		return errors.Errorf("renaming %s to %s: %w", from, filepath.Base(to), ErrDestinationExists)
	}

	if err := os.Rename(absFrom, absTo); err != nil {
		return errors.Errorf("renaming: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("from", absFrom).Str("to", absTo).Msg("renamed file")
	return nil
}

// WriteFileAtomic writes content next to path and renames it into place,
// creating parent directories as needed.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) error {
	absPath := m.Abs(path)
	tempPath := absPath + ".tmp"

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	// Write to temp file
	if err := os.WriteFile(tempPath, content, perm); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// WriteFile honours the umask; set the bits explicitly
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
