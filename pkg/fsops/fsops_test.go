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

package fsops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExists(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "present.txt"), "x")

	mgr := New(dir)

	ok, err := mgr.Exists(ctx, "present.txt")
	require.NoError(t, err)
	assert.True(t, ok, "present file should exist")

	ok, err = mgr.Exists(ctx, "absent.txt")
	require.NoError(t, err)
	assert.False(t, ok, "absent file should not exist")
}

func TestDeleteFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		target  string
		wantErr error
		check   func(t *testing.T, dir string)
	}{
		{
			name: "deletes_regular_file",
			setup: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "report.txt"), "data")
			},
			target: "report.txt",
			check: func(t *testing.T, dir string) {
				assert.NoFileExists(t, filepath.Join(dir, "report.txt"))
			},
		},
		{
			name: "refuses_directory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Mkdir(filepath.Join(dir, "tmp"), 0755))
			},
			target:  "tmp",
			wantErr: ErrIsDir,
			check: func(t *testing.T, dir string) {
				assert.DirExists(t, filepath.Join(dir, "tmp"))
			},
		},
		{
			name:    "missing_file",
			setup:   func(t *testing.T, dir string) {},
			target:  "nope.txt",
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			err := New(dir).DeleteFile(testContext(t), tt.target)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			if tt.check != nil {
				tt.check(t, dir)
			}
		})
	}
}

func TestRemoveDir(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tmp", "nested", "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "file.txt"), "b")

	mgr := New(dir)

	require.NoError(t, mgr.RemoveDir(ctx, "tmp"))
	assert.NoDirExists(t, filepath.Join(dir, "tmp"))

	err := mgr.RemoveDir(ctx, "file.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotDir))
	assert.FileExists(t, filepath.Join(dir, "file.txt"))
}

func TestRename(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "GUIDE.md"), "# guide\n")
	writeFile(t, filepath.Join(dir, "OTHER.md"), "# other\n")
	writeFile(t, filepath.Join(dir, "OTHER.md.backup"), "# older\n")

	mgr := New(dir)

	require.NoError(t, mgr.Rename(ctx, "GUIDE.md", "GUIDE.md.backup"))
	content, err := os.ReadFile(filepath.Join(dir, "GUIDE.md.backup"))
	require.NoError(t, err)
	assert.Equal(t, "# guide\n", string(content), "rename should keep content")

	err = mgr.Rename(ctx, "OTHER.md", "OTHER.md.backup")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))
	content, err = os.ReadFile(filepath.Join(dir, "OTHER.md.backup"))
	require.NoError(t, err)
	assert.Equal(t, "# older\n", string(content), "existing backup must not be overwritten")
}

func TestWriteFileAtomic(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	mgr := New(dir)

	require.NoError(t, mgr.WriteFileAtomic(ctx, "out/script.sh", []byte("#!/bin/sh\n"), 0755))

	path := filepath.Join(dir, "out", "script.sh")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "permissions should be applied")
	assert.NoFileExists(t, path+".tmp", "temp file should be gone")

	// overwrite
	require.NoError(t, mgr.WriteFileAtomic(ctx, "out/script.sh", []byte("echo\n"), 0644))
	content, err := mgr.ReadFile(ctx, "out/script.sh")
	require.NoError(t, err)
	assert.Equal(t, "echo\n", string(content))
}

func TestBaseDirAndAbs(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		wantDir string
		wantAbs string
	}{
		{name: "relative_path", base: "/work/docs/", path: "a/b.md", wantDir: "/work/docs", wantAbs: "/work/docs/a/b.md"},
		{name: "dot_segments", base: "/work/./docs/../docs", path: "x.md", wantDir: "/work/docs", wantAbs: "/work/docs/x.md"},
		{name: "absolute_passthrough", base: "/work", path: "/elsewhere/y.md", wantDir: "/work", wantAbs: "/elsewhere/y.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(filepath.FromSlash(tt.base))
			assert.Equal(t, filepath.FromSlash(tt.wantDir), m.BaseDir())
			assert.Equal(t, filepath.FromSlash(tt.wantAbs), m.Abs(filepath.FromSlash(tt.path)))
		})
	}
}
