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

package inventory

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPattern selects every markdown file below the root
const DefaultPattern = "**/*.md"

// 🔧 ScanOptions controls which files Scan reports
type ScanOptions struct {
	Root             string   // Directory to walk
	Pattern          string   // doublestar glob, DefaultPattern when empty
	Exclude          []string // doublestar globs matched against relative paths
	RespectGitignore bool     // Skip paths matched by Root/.gitignore
	PreviewLines     int      // Lines kept per record
}

// ⚠️ Skipped is a file that matched but could not be read
type Skipped struct {
	Path string
	Err  error
}

// 📦 ScanResult holds every readable record, sorted by path
type ScanResult struct {
	Root    string
	Records []FileRecord
	Skipped []Skipped
}

// 🔍 Scan walks opts.Root and reads a FileRecord for every matching file.
// A file that cannot be read is listed in Skipped and does not stop the walk.
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	logger := zerolog.Ctx(ctx)

	root := filepath.Clean(opts.Root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("opening scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("scan root %s is not a directory", root)
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	var ignored func(rel string) bool
	if opts.RespectGitignore {
		ignored, err = gitignoreFilter(root)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring unreadable .gitignore")
		}
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(rel string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if excluded(rel, opts.Exclude) {
			logger.Debug().Str("path", rel).Msg("excluded by pattern")
			return nil
		}
		if ignored != nil && ignored(rel) {
			logger.Debug().Str("path", rel).Msg("excluded by .gitignore")
			return nil
		}
		matches = append(matches, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	slices.Sort(matches)

	result := &ScanResult{Root: root}
	for _, rel := range matches {
		rec, err := ReadRecord(root, rel, opts.PreviewLines)
		if err != nil {
			logger.Warn().Err(err).Str("path", rel).Msg("skipping unreadable file")
			result.Skipped = append(result.Skipped, Skipped{Path: rel, Err: err})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	logger.Debug().
		Str("root", root).
		Int("records", len(result.Records)).
		Int("skipped", len(result.Skipped)).
		Msg("scan complete")

	return result, nil
}

// excluded reports whether rel matches any exclude glob
func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// gitignoreFilter builds a predicate from root/.gitignore. A missing file
// yields a nil predicate and no error.
func gitignoreFilter(root string) (func(rel string) bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	ignorePath := filepath.Join(absRoot, ".gitignore")
	if _, err := os.Stat(ignorePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Errorf("checking .gitignore: %w", err)
	}

	matcher, err := gitignore.NewGitIgnore(ignorePath, absRoot)
	if err != nil {
		return nil, errors.Errorf("parsing .gitignore: %w", err)
	}

	return func(rel string) bool {
		// a file is ignored when it or any parent directory is
		parts := strings.Split(rel, "/")
		for i := 1; i < len(parts); i++ {
			dir := path.Join(parts[:i]...)
			if matcher.Match(filepath.Join(absRoot, filepath.FromSlash(dir)), true) {
				return true
			}
		}
		return matcher.Match(filepath.Join(absRoot, filepath.FromSlash(rel)), false)
	}, nil
}
