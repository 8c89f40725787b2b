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

// Package report renders a classified markdown inventory for people.
package report

import (
	"io"
	"strings"

	"github.com/walteh/doctidy/pkg/inventory"
	"gitlab.com/tozd/go/errors"
)

// 🖨️ Render returns the full inventory report
func Render(inv *inventory.Inventory, f Formatter) string {
	if f == nil {
		f = NewDefaultFormatter()
	}

	var b strings.Builder
	b.WriteString(f.FormatHeader(inv))
	for _, d := range inventory.Dispositions {
		group := inv.Group(d)
		b.WriteString(f.FormatGroupHeader(d, len(group)))
		for _, c := range group {
			b.WriteString(f.FormatRecord(c))
		}
	}
	if len(inv.Skipped) > 0 {
		b.WriteString("\n")
		for _, s := range inv.Skipped {
			b.WriteString("! skipped " + s.Path + ": " + s.Err.Error() + "\n")
		}
	}
	b.WriteString(f.FormatTotals(inv))
	return b.String()
}

// 🖨️ Write renders the report to w
func Write(w io.Writer, inv *inventory.Inventory, f Formatter) error {
	if _, err := io.WriteString(w, Render(inv, f)); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}
