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
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/doctidy/pkg/fsops"
	"github.com/walteh/doctidy/pkg/inventory"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// BackupExtension replaces the extension of a soft-deleted file
const BackupExtension = ".md.backup"

// 🎛️ Mode is what Apply does to each target
type Mode int

const (
	ModeDryRun Mode = iota // report only
	ModeRename             // rename to the backup path
	ModeRemove             // unlink, not reversible
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeRename:
		return "rename"
	case ModeRemove:
		return "remove"
	default:
		return "dry-run"
	}
}

// ParseMode is the inverse of Mode.String
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeDryRun, ModeRename, ModeRemove} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return ModeDryRun, errors.Errorf("unknown mode %q (want dry-run, rename or remove)", s)
}

// 🎯 Target is one file selected for soft deletion
type Target struct {
	Path   string // Relative to the plan root
	Reason string
}

// Backup returns where the target is renamed to
func (t Target) Backup() string {
	return BackupPath(t.Path)
}

// BackupPath swaps the extension of path for BackupExtension
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + BackupExtension
}

// 🧲 Policy picks the targets of a plan out of an inventory
type Policy interface {
	Select(inv *inventory.Inventory) []Target
}

// DispositionPolicy selects every file with one of the listed dispositions
type DispositionPolicy []inventory.Disposition

func (p DispositionPolicy) Select(inv *inventory.Inventory) []Target {
	var out []Target
	for _, c := range inv.Results {
		if slices.Contains(p, c.Disposition) {
			out = append(out, Target{Path: c.Record.RelativePath, Reason: c.Reason})
		}
	}
	return out
}

// PathPolicy selects exactly the listed paths, whether or not they were scanned
type PathPolicy []string

func (p PathPolicy) Select(inv *inventory.Inventory) []Target {
	reasons := map[string]string{}
	if inv != nil {
		for _, c := range inv.Results {
			reasons[c.Record.RelativePath] = c.Reason
		}
	}
	out := make([]Target, 0, len(p))
	for _, path := range p {
		out = append(out, Target{Path: path, Reason: reasons[path]})
	}
	return out
}

// 📋 Plan is the audit trail of a soft delete: what would be touched and how
type Plan struct {
	Root    string
	Mode    Mode
	Targets []Target
}

// NewPlan selects targets from inv with policy
func NewPlan(inv *inventory.Inventory, policy Policy, mode Mode) *Plan {
	return &Plan{
		Root:    inv.Root,
		Mode:    mode,
		Targets: policy.Select(inv),
	}
}

// Paths lists the target paths in plan order
func (p *Plan) Paths() []string {
	out := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		out = append(out, t.Path)
	}
	return out
}

// 🚦 Status is what happened to one target
type Status int

const (
	StatusPlanned Status = iota // dry run
	StatusApplied               // renamed or removed
	StatusMissing               // target did not exist
	StatusFailed                // operation failed
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return "planned"
	}
}

// 📄 Result is the outcome for one target
type Result struct {
	Target      Target
	Status      Status
	Destination string // Backup path in rename mode
	Err         error
}

// 📊 Summary aggregates the results of Apply
type Summary struct {
	Mode      Mode
	Results   []Result
	Processed int
	Missing   int
	Failed    int
}

// 🏃 Apply carries out plan through fm. Every target is handled on its own;
// a failure is recorded and the next target still runs. Applying the same
// rename plan twice reports every target missing the second time.
func Apply(ctx context.Context, fm fsops.FileManager, plan *Plan) *Summary {
	logger := log.FromContext(ctx)
	zlog := zerolog.Ctx(ctx)

	summary := &Summary{Mode: plan.Mode}
	for _, target := range plan.Targets {
		res := applyOne(ctx, fm, plan.Mode, target)
		summary.Results = append(summary.Results, res)

		op := log.FileOperation{Path: target.Path, Action: plan.Mode.String(), Err: res.Err}
		switch res.Status {
		case StatusApplied:
			summary.Processed++
			op.Outcome = log.OutcomeDone
			if res.Destination != "" {
				op.Detail = "-> " + filepath.Base(res.Destination)
			}
		case StatusMissing:
			summary.Missing++
			op.Outcome = log.OutcomeMissing
		case StatusFailed:
			summary.Failed++
			op.Outcome = log.OutcomeFailed
		default:
			op.Outcome = log.OutcomePlanned
			op.Action = "rename"
			op.Detail = "-> " + filepath.Base(target.Backup())
		}
		logger.LogFileOperation(ctx, op)
	}

	zlog.Debug().
		Stringer("mode", plan.Mode).
		Int("processed", summary.Processed).
		Int("missing", summary.Missing).
		Int("failed", summary.Failed).
		Msg("soft delete finished")

	return summary
}

func applyOne(ctx context.Context, fm fsops.FileManager, mode Mode, target Target) Result {
	res := Result{Target: target}

	exists, err := fm.Exists(ctx, target.Path)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	if !exists {
		res.Status = StatusMissing
		return res
	}

	switch mode {
	case ModeRename:
		res.Destination = target.Backup()
		if err := fm.Rename(ctx, target.Path, res.Destination); err != nil {
			res.Status, res.Err = StatusFailed, errors.Errorf("backing up %s: %w", target.Path, err)
			return res
		}
		res.Status = StatusApplied
	case ModeRemove:
		if err := fm.DeleteFile(ctx, target.Path); err != nil {
			res.Status, res.Err = StatusFailed, errors.Errorf("removing %s: %w", target.Path, err)
			return res
		}
		res.Status = StatusApplied
	default:
		res.Status = StatusPlanned
	}
	return res
}
