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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/doctidy/pkg/config"
	"github.com/walteh/doctidy/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// 📋 Manifest is the allow-list of paths a run may touch
type Manifest struct {
	TempReports    []string // Report files to delete
	TempScripts    []string // Script files to delete
	TempDirs       []string // Directories to remove recursively
	ImportantFiles []string // Paths expected to survive, advisory only
}

// ManifestFrom copies the cleanup lists out of a loaded config
func ManifestFrom(args config.CleanupArgs) Manifest {
	return Manifest{
		TempReports:    append([]string(nil), args.TempReports...),
		TempScripts:    append([]string(nil), args.TempScripts...),
		TempDirs:       append([]string(nil), args.TempDirs...),
		ImportantFiles: append([]string(nil), args.ImportantFiles...),
	}
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// Manifest lists what to delete and what to keep
	Manifest Manifest
	// Artifact is the notebook verified after cleanup
	Artifact string
	// SummaryPath is where the Markdown summary is written
	SummaryPath string
	// Files performs every filesystem operation
	Files fsops.FileManager
	// Now stamps the summary; defaults to time.Now
	Now func() time.Time
}

// 🏃 Runner executes a cleanup
type Runner struct {
	manifest    Manifest
	artifact    string
	summaryPath string
	files       fsops.FileManager
	now         func() time.Time
}

// 🏭 New creates a new runner with the given options
func New(opts Options) (*Runner, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Artifact == "" {
		return nil, errors.Errorf("artifact path is required")
	}
	if opts.SummaryPath == "" {
		return nil, errors.Errorf("summary path is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		manifest:    opts.Manifest,
		artifact:    opts.Artifact,
		summaryPath: opts.SummaryPath,
		files:       opts.Files,
		now:         opts.Now,
	}, nil
}

// 📊 Outcome collects every counter of a run
type Outcome struct {
	DeletedFiles  []string
	NotFoundFiles []string
	FailedFiles   []string
	DeletedDirs   []string
	NotFoundDirs  []string
	FailedDirs    []string

	TranslationOK     bool
	CellCount         int
	ArtifactSizeBytes int64

	RemainingImportant []string
	SummaryWritten     bool
	FinishedAt         time.Time
}

// 🏃 Run performs every step in order and returns what happened. It never
// fails: per-item problems are logged and show up in the counters.
func (r *Runner) Run(ctx context.Context) *Outcome {
	zlog := zerolog.Ctx(ctx)
	zlog.Debug().
		Int("reports", len(r.manifest.TempReports)).
		Int("scripts", len(r.manifest.TempScripts)).
		Int("dirs", len(r.manifest.TempDirs)).
		Msg("starting cleanup")

	out := &Outcome{}

	files := r.CleanupFiles(ctx)
	out.DeletedFiles, out.NotFoundFiles, out.FailedFiles = files.Deleted, files.NotFound, files.Failed

	dirs := r.CleanupDirs(ctx)
	out.DeletedDirs, out.NotFoundDirs, out.FailedDirs = dirs.Deleted, dirs.NotFound, dirs.Failed

	art := r.VerifyArtifact(ctx)
	out.TranslationOK, out.CellCount, out.ArtifactSizeBytes = art.OK, art.Cells, art.SizeBytes

	out.RemainingImportant = r.ListImportant(ctx)
	out.FinishedAt = r.now()

	if err := r.WriteSummary(ctx, out); err != nil {
		zlog.Error().Err(err).Msg("summary not written")
	} else {
		out.SummaryWritten = true
	}

	r.Report(ctx, out)
	return out
}
