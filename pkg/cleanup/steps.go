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

package cleanup

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧮 Tally splits the names of one step by what happened to them
type Tally struct {
	Deleted  []string
	NotFound []string
	Failed   []string
}

// 🗑️ CleanupFiles deletes every TempReports entry and then every TempScripts
// entry. Missing scripts are not printed one by one.
func (r *Runner) CleanupFiles(ctx context.Context) Tally {
	logger := log.FromContext(ctx)
	var t Tally

	logger.Section("Cleaning temporary reports")
	for _, name := range r.manifest.TempReports {
		r.deleteFile(ctx, name, &t, true)
	}

	logger.Section("Cleaning temporary scripts")
	before := len(t.NotFound)
	for _, name := range r.manifest.TempScripts {
		r.deleteFile(ctx, name, &t, false)
	}
	if skipped := len(t.NotFound) - before; skipped > 0 {
		logger.Printf("  %d listed script(s) already absent\n", skipped)
	}

	return t
}

func (r *Runner) deleteFile(ctx context.Context, name string, t *Tally, showMissing bool) {
	logger := log.FromContext(ctx)
	op := log.FileOperation{Path: name, Action: "delete"}

	exists, err := r.files.Exists(ctx, name)
	switch {
	case err != nil:
		op.Outcome, op.Err = log.OutcomeFailed, err
		t.Failed = append(t.Failed, name)
	case !exists:
		t.NotFound = append(t.NotFound, name)
		if !showMissing {
			zerolog.Ctx(ctx).Debug().Str("path", name).Msg("file not found")
			return
		}
		op.Outcome = log.OutcomeMissing
	default:
		if err := r.files.DeleteFile(ctx, name); err != nil {
			op.Outcome, op.Err = log.OutcomeFailed, err
			t.Failed = append(t.Failed, name)
		} else {
			op.Outcome = log.OutcomeDone
			t.Deleted = append(t.Deleted, name)
		}
	}
	logger.LogFileOperation(ctx, op)
}

// 📁 CleanupDirs recursively removes every TempDirs entry that is a directory.
// A regular file with a listed name counts as not found and is left alone.
func (r *Runner) CleanupDirs(ctx context.Context) Tally {
	logger := log.FromContext(ctx)
	var t Tally

	logger.Section("Cleaning temporary directories")
	for _, name := range r.manifest.TempDirs {
		op := log.FileOperation{Path: name, Action: "remove"}

		info, err := r.files.Stat(ctx, name)
		switch {
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			op.Outcome, op.Err = log.OutcomeFailed, err
			t.Failed = append(t.Failed, name)
		case err != nil || !info.IsDir():
			op.Outcome = log.OutcomeMissing
			t.NotFound = append(t.NotFound, name)
		default:
			if err := r.files.RemoveDir(ctx, name); err != nil {
				op.Outcome, op.Err = log.OutcomeFailed, err
				t.Failed = append(t.Failed, name)
			} else {
				op.Outcome = log.OutcomeDone
				t.Deleted = append(t.Deleted, name)
			}
		}
		logger.LogFileOperation(ctx, op)
	}

	return t
}

// 📌 ListImportant returns the ImportantFiles entries that still exist.
// Absent entries are only reported.
func (r *Runner) ListImportant(ctx context.Context) []string {
	logger := log.FromContext(ctx)
	var remaining []string

	logger.Section("Important files")
	for _, name := range r.manifest.ImportantFiles {
		op := log.FileOperation{Path: name, Action: "keep"}

		info, err := r.files.Stat(ctx, name)
		if err != nil {
			op.Outcome = log.OutcomeMissing
			if !errors.Is(err, fs.ErrNotExist) {
				op.Err = err
			}
			logger.LogFileOperation(ctx, op)
			continue
		}

		var size int64
		if !info.IsDir() {
			size = info.Size()
		}
		op.Outcome = log.OutcomeKept
		op.Detail = fmt.Sprintf("(%s bytes)", humanize.Comma(size))
		logger.LogFileOperation(ctx, op)
		remaining = append(remaining, name)
	}

	return remaining
}
