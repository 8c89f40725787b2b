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

package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/doctidy/cmd/doctidy/opts"
	"github.com/walteh/doctidy/pkg/fsops"
	"github.com/walteh/doctidy/pkg/inventory"
	"github.com/walteh/doctidy/pkg/log"
	"github.com/walteh/doctidy/pkg/softdelete"
	"gitlab.com/tozd/go/errors"
)

// NewBackupCmd creates a new backup command
func NewBackupCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		root   string
		mode   string
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Soft-delete the markdown files suggested for deletion",
		Long: `Backup classifies the markdown files like analyze does and then acts on
the ones suggested for deletion directly, without a script.

Modes:
  dry-run  list what would happen, touch nothing
  rename   rename each file to .md.backup (default)
  remove   delete each file, not reversible

Use --select to act on other groups, for example --select delete,optional.
Running rename twice is safe: the second run finds nothing to rename.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			m, err := softdelete.ParseMode(mode)
			if err != nil {
				return errors.Errorf("parsing --mode: %w", err)
			}

			policy, err := selectPolicy(groups)
			if err != nil {
				return errors.Errorf("parsing --select: %w", err)
			}

			cfg := opts.Config.Analyze
			if root != "" {
				cfg.Root = root
			}

			logger.Header("soft-deleting markdown files (" + m.String() + ")")

			inv, err := inventory.Analyze(ctx, scanOptions(cfg), inventory.DefaultRules(cfg.RootMarkers))
			if err != nil {
				return errors.Errorf("analyzing %s: %w", cfg.Root, err)
			}

			plan := softdelete.NewPlan(inv, policy, m)
			if len(plan.Targets) == 0 {
				logger.Info("nothing suggested for deletion")
				return nil
			}

			summary := softdelete.Apply(ctx, fsops.New(inv.Root), plan)
			if m == softdelete.ModeDryRun {
				logger.LogNewline()
				logger.Infof("dry run, nothing changed; would rename: %s", strings.Join(plan.Paths(), ", "))
				return nil
			}

			logger.LogNewline()
			logger.Printf("Processed: %d file(s)\n", summary.Processed)
			logger.Printf("Missing:   %d file(s)\n", summary.Missing)
			logger.Printf("Failed:    %d file(s)\n", summary.Failed)
			if m == softdelete.ModeRename && summary.Processed > 0 {
				logger.Infof("backups end in %s; rename them back to .md to restore", softdelete.BackupExtension)
			}
			if summary.Failed > 0 {
				logger.Warningf("%d file(s) could not be processed", summary.Failed)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to scan (default from config)")
	cmd.Flags().StringVar(&mode, "mode", softdelete.ModeRename.String(), "dry-run, rename or remove")
	cmd.Flags().StringSliceVar(&groups, "select", []string{inventory.Delete.String()}, "dispositions to act on (keep, delete, optional, unknown)")

	return cmd
}

// selectPolicy turns disposition names into a target selection policy
func selectPolicy(names []string) (softdelete.DispositionPolicy, error) {
	if len(names) == 0 {
		return nil, errors.Errorf("at least one disposition is required")
	}
	policy := make(softdelete.DispositionPolicy, 0, len(names))
	for _, name := range names {
		d, err := inventory.ParseDisposition(name)
		if err != nil {
			return nil, err
		}
		policy = append(policy, d)
	}
	return policy, nil
}
