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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📊 Disposition is what should happen to a scanned file
type Disposition int

const (
	Keep     Disposition = iota // required, never touched
	Delete                      // candidate for soft deletion
	Optional                    // may be kept as a record
	Unknown                     // needs a human to look at it
)

// Dispositions lists every disposition in report order
var Dispositions = []Disposition{Keep, Delete, Optional, Unknown}

// String returns a string representation of Disposition
func (d Disposition) String() string {
	switch d {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Optional:
		return "optional"
	default:
		return "unknown"
	}
}

// ParseDisposition is the inverse of Disposition.String
func ParseDisposition(s string) (Disposition, error) {
	for _, d := range Dispositions {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Unknown, errors.Errorf("unknown disposition %q", s)
}

// 📏 Rule is one row of the classification decision table
type Rule struct {
	Name        string                  // Shown in debug logs
	Match       func(r FileRecord) bool // Predicate over filename and preview
	Disposition Disposition             // Assigned when Match is true
	Reason      func(r FileRecord) string
}

// 🏷️ Classification is a record with its assigned disposition
type Classification struct {
	Record      FileRecord
	Disposition Disposition
	Reason      string
	Rule        string // Name of the rule that matched
}

const fallbackRule = "fallback"

// DefaultRules is the decision table doctidy ships with. markers are the
// strings that identify the top-level README; they only change the reason.
func DefaultRules(markers []string) []Rule {
	return []Rule{
		{
			Name:        "root-readme",
			Match:       func(r FileRecord) bool { return r.Filename == "README.md" && containsAny(r.ContentPreview, markers) },
			Disposition: Keep,
			Reason:      fixed("project overview document"),
		},
		{
			Name:        "readme",
			Match:       filenameIs("README.md"),
			Disposition: Keep,
			Reason: func(r FileRecord) string {
				return fmt.Sprintf("sub-project readme (%s)", r.Dir())
			},
		},
		{
			Name:        "translation-guide",
			Match:       filenameIs("TRANSLATION_GUIDE.md"),
			Disposition: Delete,
			Reason:      fixed("translation tooling guide; the translation is finished and its tools were removed"),
		},
		{
			Name:        "translation-summary",
			Match:       filenameIs("TRANSLATION_SUMMARY.md"),
			Disposition: Optional,
			Reason:      fixed("translation summary; useful as a work record but not required"),
		},
	}
}

// 🎯 Classify evaluates rules top-down; the first match wins. A record no
// rule matches is Unknown.
func Classify(r FileRecord, rules []Rule) Classification {
	for _, rule := range rules {
		if rule.Match(r) {
			return Classification{
				Record:      r,
				Disposition: rule.Disposition,
				Reason:      rule.Reason(r),
				Rule:        rule.Name,
			}
		}
	}
	return Classification{
		Record:      r,
		Disposition: Unknown,
		Reason:      "unknown purpose, needs inspection",
		Rule:        fallbackRule,
	}
}

func filenameIs(name string) func(FileRecord) bool {
	return func(r FileRecord) bool { return r.Filename == name }
}

func fixed(reason string) func(FileRecord) string {
	return func(FileRecord) string { return reason }
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
