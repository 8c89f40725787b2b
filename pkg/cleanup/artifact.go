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
	"bytes"
	"context"
	"encoding/json"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrNotNotebook is returned when the artifact parses but has no usable cell list
var ErrNotNotebook = errors.Base("not a notebook document")

// 📓 ArtifactStatus is the result of verifying the translated notebook
type ArtifactStatus struct {
	Path      string
	OK        bool
	Cells     int
	SizeBytes int64
	Err       error // Why OK is false, nil when the file is simply missing
}

// 🔍 VerifyArtifact checks that the artifact exists and is a notebook. It
// never returns an error: a missing or broken artifact is reported as not OK
// with zero cells and size.
func (r *Runner) VerifyArtifact(ctx context.Context) ArtifactStatus {
	logger := log.FromContext(ctx)
	status := ArtifactStatus{Path: r.artifact}

	logger.Section("Verifying translation artifact")

	content, err := r.files.ReadFile(ctx, r.artifact)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Errorf("artifact not found: %s", r.artifact)
			return status
		}
		status.Err = err
		logger.Errorf("reading artifact %s: %v", r.artifact, err)
		return status
	}

	cells, err := CountCells(content)
	if err != nil {
		status.Err = err
		logger.Errorf("verifying artifact %s: %v", r.artifact, err)
		return status
	}

	status.OK = true
	status.Cells = cells
	status.SizeBytes = int64(len(content))

	logger.Success("artifact present and complete")
	logger.Printf("  - path:  %s\n", r.artifact)
	logger.Printf("  - size:  %s bytes\n", humanize.Comma(status.SizeBytes))
	logger.Printf("  - cells: %d\n", status.Cells)

	return status
}

// CountCells returns the length of the top-level "cells" list of a notebook
// document. A document without a "cells" key has zero cells.
func CountCells(content []byte) (int, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return 0, errors.Errorf("parsing notebook: %w", err)
	}
	if doc == nil {
		return 0, errors.Errorf("top level is null: %w", ErrNotNotebook)
	}

	raw, ok := doc["cells"]
	if !ok {
		return 0, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, errors.Errorf("cells is null: %w", ErrNotNotebook)
	}

	var cells []json.RawMessage
	if err := json.Unmarshal(raw, &cells); err != nil {
		return 0, errors.Errorf("cells is not a list: %w", ErrNotNotebook)
	}
	return len(cells), nil
}
