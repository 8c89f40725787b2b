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

package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/walteh/doctidy/pkg/inventory"
)

// 🎨 Display configuration
const (
	ruleWidth    = 80 // width of report rules
	recordIndent = 3  // spaces before a record's detail lines
)

// Formatter defines how an inventory report is laid out
type Formatter interface {
	// FormatHeader formats the lines shown before any group
	FormatHeader(inv *inventory.Inventory) string

	// FormatGroupHeader formats the heading of one disposition group
	FormatGroupHeader(d inventory.Disposition, count int) string

	// FormatRecord formats one classified file
	FormatRecord(c inventory.Classification) string

	// FormatTotals formats the closing counts
	FormatTotals(inv *inventory.Inventory) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// Symbol returns the marker printed next to a disposition
func Symbol(d inventory.Disposition) string {
	switch d {
	case inventory.Keep:
		return color.GreenString("✓")
	case inventory.Delete:
		return color.RedString("✗")
	case inventory.Optional:
		return color.YellowString("?")
	default:
		return color.BlueString("?")
	}
}

// Title returns the human heading of a disposition group
func Title(d inventory.Disposition) string {
	switch d {
	case inventory.Keep:
		return "Required, keep"
	case inventory.Delete:
		return "Suggested for deletion"
	case inventory.Optional:
		return "Optional, may keep"
	default:
		return "Needs inspection"
	}
}

// FormatHeader formats the scan summary
func (f *DefaultFormatter) FormatHeader(inv *inventory.Inventory) string {
	rule := strings.Repeat("=", ruleWidth)
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, color.New(color.Bold).Sprint("Markdown inventory report"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Scanned directory: %s\n", inv.Root)
	fmt.Fprintf(&b, "Files found:       %d\n", inv.Total()+len(inv.Skipped))
	fmt.Fprintf(&b, "Analyzed at:       %s\n", inv.ScannedAt.Format(inventory.TimestampLayout))
	fmt.Fprintln(&b, rule)
	return b.String()
}

// FormatGroupHeader formats a group heading with its symbol and size
func (f *DefaultFormatter) FormatGroupHeader(d inventory.Disposition, count int) string {
	return fmt.Sprintf("\n%s %s (%s, %d)\n%s\n",
		Symbol(d),
		color.New(color.Bold).Sprint(Title(d)),
		strings.ToUpper(d.String()),
		count,
		strings.Repeat("-", ruleWidth))
}

// FormatRecord formats one file with its metadata and reason
func (f *DefaultFormatter) FormatRecord(c inventory.Classification) string {
	indent := strings.Repeat(" ", recordIndent)
	r := c.Record
	return fmt.Sprintf("\n📄 %s\n%ssize: %s bytes | lines: %d | modified: %s\n%sreason: %s\n",
		color.New(color.Bold).Sprint(r.RelativePath),
		indent, humanize.Comma(r.SizeBytes), r.LineCount, r.Timestamp(),
		indent, c.Reason)
}

// FormatTotals formats the per-disposition counts and the grand total
func (f *DefaultFormatter) FormatTotals(inv *inventory.Inventory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n📊 Summary\n%s\n", strings.Repeat("=", ruleWidth), strings.Repeat("-", ruleWidth))
	fmt.Fprintf(&b, "Total files: %d\n", inv.Total())
	counts := inv.Counts()
	for _, d := range inventory.Dispositions {
		fmt.Fprintf(&b, "  %s %-9s %d\n", Symbol(d), d.String()+":", counts[d])
	}
	if len(inv.Skipped) > 0 {
		fmt.Fprintf(&b, "  %s %-9s %d\n", color.RedString("!"), "skipped:", len(inv.Skipped))
	}
	return b.String()
}
