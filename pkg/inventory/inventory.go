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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ Inventory is a classified scan
type Inventory struct {
	Root      string
	ScannedAt time.Time
	Results   []Classification // Sorted by path
	Skipped   []Skipped
}

// 🏗️ Build classifies every record of a scan
func Build(ctx context.Context, scan *ScanResult, rules []Rule) *Inventory {
	logger := zerolog.Ctx(ctx)

	inv := &Inventory{
		Root:      scan.Root,
		ScannedAt: time.Now(),
		Results:   make([]Classification, 0, len(scan.Records)),
		Skipped:   scan.Skipped,
	}
	for _, rec := range scan.Records {
		c := Classify(rec, rules)
		logger.Debug().
			Str("path", rec.RelativePath).
			Str("rule", c.Rule).
			Stringer("disposition", c.Disposition).
			Msg("classified")
		inv.Results = append(inv.Results, c)
	}
	return inv
}

// 🔎 Analyze scans opts.Root and classifies what it finds
func Analyze(ctx context.Context, opts ScanOptions, rules []Rule) (*Inventory, error) {
	scan, err := Scan(ctx, opts)
	if err != nil {
		return nil, errors.Errorf("scanning: %w", err)
	}
	return Build(ctx, scan, rules), nil
}

// Group returns the results with disposition d, in path order
func (inv *Inventory) Group(d Disposition) []Classification {
	var out []Classification
	for _, c := range inv.Results {
		if c.Disposition == d {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the number of results per disposition; every disposition is present
func (inv *Inventory) Counts() map[Disposition]int {
	counts := make(map[Disposition]int, len(Dispositions))
	for _, d := range Dispositions {
		counts[d] = 0
	}
	for _, c := range inv.Results {
		counts[c.Disposition]++
	}
	return counts
}

// Total is the number of classified files
func (inv *Inventory) Total() int {
	return len(inv.Results)
}
