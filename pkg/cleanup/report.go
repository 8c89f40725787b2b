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
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/doctidy/pkg/log"
)

// 📊 Report prints every counter of o and a closing banner. It only writes
// to the console.
func (r *Runner) Report(ctx context.Context, o *Outcome) {
	logger := log.FromContext(ctx)
	logger.Section("Final cleanup report")

	rows := [][2]string{
		{"Deleted files", strconv.Itoa(len(o.DeletedFiles))},
		{"Deleted directories", strconv.Itoa(len(o.DeletedDirs))},
		{"Files not found", strconv.Itoa(len(o.NotFoundFiles))},
		{"Directories not found", strconv.Itoa(len(o.NotFoundDirs))},
		{"Failed removals", strconv.Itoa(len(o.FailedFiles) + len(o.FailedDirs))},
		{"Important files kept", strconv.Itoa(len(o.RemainingImportant))},
	}

	data := pterm.TableData{{"📊 Cleanup", "Count"}}
	for _, row := range rows {
		data = append(data, []string{row[0], row[1]})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// plain fallback, the report itself must not fail
		table = ""
		for _, row := range rows {
			table += fmt.Sprintf("  - %s: %s\n", row[0], row[1])
		}
	}
	logger.Printf("\n%s\n", table)

	if o.TranslationOK {
		logger.Print(pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintln("artifact verification: passed"))
	} else {
		logger.Print(pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Sprintln("artifact verification: failed"))
	}

	logger.Printf("\n%s\n", pterm.DefaultBox.WithTitle("doctidy").Sprint("🎯 Project cleanup finished"))

	zerolog.Ctx(ctx).Info().
		Int("deleted_files", len(o.DeletedFiles)).
		Int("deleted_dirs", len(o.DeletedDirs)).
		Int("not_found_files", len(o.NotFoundFiles)).
		Int("not_found_dirs", len(o.NotFoundDirs)).
		Int("failed", len(o.FailedFiles)+len(o.FailedDirs)).
		Int("important_kept", len(o.RemainingImportant)).
		Bool("translation_ok", o.TranslationOK).
		Msg("cleanup finished")
}
