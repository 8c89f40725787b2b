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

package softdelete

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/walteh/doctidy/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// ScriptMode is the permission set on a generated script
const ScriptMode = 0o755

var scriptTemplate = template.Must(template.New("script").Funcs(template.FuncMap{
	"quote":   shellQuote,
	"comment": oneLine,
}).Parse(`#!/bin/sh
# Generated by doctidy on {{.Generated}}.
# Renames each listed markdown file to {{.Extension}}; nothing is deleted.
# Restore a file by renaming it back to .md. Delete the backups by hand to make it permanent.
set -u

ROOT={{quote .Root}}
processed=0
failed=0

backup() {
	src="$ROOT/$1"
	dst="$ROOT/$2"
	if [ ! -e "$src" ]; then
		echo "⚠ not found: $1"
		return 0
	fi
	if [ -e "$dst" ]; then
		echo "✗ failed: $1 - $2 already exists"
		failed=$((failed + 1))
		return 0
	fi
	if mv -- "$src" "$dst"; then
		echo "✓ backed up: $1 -> ${dst##*/}"
		processed=$((processed + 1))
	else
		echo "✗ failed: $1"
		failed=$((failed + 1))
	fi
}

echo "Cleaning up markdown files..."
{{- range .Targets}}
backup {{quote .Path}} {{quote .Backup}}{{with comment .Reason}} # {{.}}{{end}}
{{- end}}

echo
echo "Processed: $processed file(s)"
echo "Failed:    $failed file(s)"
echo "Backups end in {{.Extension}}; rename them back to .md to restore."
`))

// 📜 Script renders plan as a standalone POSIX shell script that performs the
// rename mode of Apply. Paths are resolved against the absolute plan root.
func Script(plan *Plan, generated time.Time) ([]byte, error) {
	root, err := filepath.Abs(plan.Root)
	if err != nil {
		return nil, errors.Errorf("resolving plan root: %w", err)
	}

	var buf bytes.Buffer
	err = scriptTemplate.Execute(&buf, struct {
		Root      string
		Generated string
		Extension string
		Targets   []Target
	}{
		Root:      filepath.ToSlash(root),
		Generated: generated.Format(time.DateTime),
		Extension: BackupExtension,
		Targets:   plan.Targets,
	})
	if err != nil {
		return nil, errors.Errorf("rendering script: %w", err)
	}
	return buf.Bytes(), nil
}

// 💾 WriteScript renders plan and writes it executable to path (relative to fm's base)
func WriteScript(ctx context.Context, fm fsops.FileManager, path string, plan *Plan, generated time.Time) error {
	content, err := Script(plan, generated)
	if err != nil {
		return err
	}
	if err := fm.WriteFileAtomic(ctx, path, content, ScriptMode); err != nil {
		return errors.Errorf("writing script %s: %w", path, err)
	}
	return nil
}

// shellQuote wraps s in single quotes for /bin/sh
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// oneLine flattens s so it is safe inside a trailing shell comment
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
