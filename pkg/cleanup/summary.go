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
	"text/template"

	"github.com/dustin/go-humanize"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`# Translation Project Summary

## Project Information
- **Completed**: {{.Date}}
- **Translated artifact**: ` + "`{{.Artifact}}`" + `

## Translation Statistics
- **Notebook cells**: {{.Cells}}
- **File size**: {{.Size}} bytes
- **Verification**: {{if .OK}}passed{{else}}failed{{end}}

## Cleanup Record
- **Temporary files deleted**: {{.DeletedFiles}}
- **Temporary directories deleted**: {{.DeletedDirs}}
- **Cleaned at**: {{.CleanedAt}}

## Project Status
{{if .OK}}✅ Translation complete and verified{{else}}❌ Translation artifact could not be verified{{end}}
✅ Temporary files cleaned up
{{- if .Failed}}
⚠️ {{.Failed}} item(s) could not be removed
{{- end}}
`))

// 📝 Summary renders the Markdown summary document for an outcome
func (r *Runner) Summary(o *Outcome) ([]byte, error) {
	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, struct {
		Date         string
		CleanedAt    string
		Artifact     string
		Cells        int
		Size         string
		OK           bool
		DeletedFiles int
		DeletedDirs  int
		Failed       int
	}{
		Date:         o.FinishedAt.Format(dateLayout),
		CleanedAt:    o.FinishedAt.Format(dateTimeLayout),
		Artifact:     r.artifact,
		Cells:        o.CellCount,
		Size:         humanize.Comma(o.ArtifactSizeBytes),
		OK:           o.TranslationOK,
		DeletedFiles: len(o.DeletedFiles),
		DeletedDirs:  len(o.DeletedDirs),
		Failed:       len(o.FailedFiles) + len(o.FailedDirs),
	})
	if err != nil {
		return nil, errors.Errorf("rendering summary: %w", err)
	}
	return buf.Bytes(), nil
}

// 💾 WriteSummary renders the summary and overwrites SummaryPath with it
func (r *Runner) WriteSummary(ctx context.Context, o *Outcome) error {
	logger := log.FromContext(ctx)
	logger.Section("Writing summary")

	content, err := r.Summary(o)
	if err != nil {
		logger.Errorf("rendering summary: %v", err)
		return err
	}

	if err := r.files.WriteFileAtomic(ctx, r.summaryPath, content, 0644); err != nil {
		logger.Errorf("writing summary %s: %v", r.summaryPath, err)
		return errors.Errorf("writing summary: %w", err)
	}

	logger.Successf("wrote summary: %s", r.summaryPath)
	return nil
}
