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
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/doctidy/cmd/doctidy/opts"
	"github.com/walteh/doctidy/pkg/fsops"
	"github.com/walteh/doctidy/pkg/inventory"
	"github.com/walteh/doctidy/pkg/log"
	"github.com/walteh/doctidy/pkg/report"
	"github.com/walteh/doctidy/pkg/softdelete"
	"gitlab.com/tozd/go/errors"
)

// NewAnalyzeCmd creates a new analyze command
func NewAnalyzeCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		root     string
		script   string
		noScript bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify markdown files and write a soft-delete script",
		Long: `Analyze scans the project for markdown files and sorts each one into
keep, delete, optional or inspect. It will:
1. Print a grouped report with size, line count and reason per file
2. Write a shell script that renames every file suggested for deletion
   to .md.backup (unless --no-script is set)

Nothing is renamed until the script is run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg := opts.Config.Analyze
			if root != "" {
				cfg.Root = root
			}
			if script != "" {
				cfg.ScriptPath = script
			}

			logger.Header("analyzing markdown files")

			inv, err := inventory.Analyze(ctx, scanOptions(cfg), inventory.DefaultRules(cfg.RootMarkers))
			if err != nil {
				return errors.Errorf("analyzing %s: %w", cfg.Root, err)
			}

			if err := report.Write(logger.Console(), inv, nil); err != nil {
				logger.Errorf("printing report: %v", err)
			}
			logger.Rule("=")

			plan := softdelete.NewPlan(inv, softdelete.DispositionPolicy{inventory.Delete}, softdelete.ModeRename)
			zerolog.Ctx(ctx).Debug().Strs("targets", plan.Paths()).Msg("soft-delete plan")
			switch {
			case len(plan.Targets) == 0:
				logger.Info("nothing suggested for deletion, no script written")
			case noScript:
				logger.Infof("%d file(s) suggested for deletion, script not written", len(plan.Targets))
			default:
				fm := fsops.New(inv.Root)
				if err := softdelete.WriteScript(ctx, fm, cfg.ScriptPath, plan, time.Now()); err != nil {
					logger.Errorf("writing cleanup script: %v", err)
					break
				}
				logger.Successf("wrote cleanup script: %s", fm.Abs(cfg.ScriptPath))
				logger.Infof("review it, then run: sh %s", filepath.Join(inv.Root, cfg.ScriptPath))
			}

			logger.Success("analysis complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to scan (default from config)")
	cmd.Flags().StringVar(&script, "script", "", "script path, relative to the scan root (default from config)")
	cmd.Flags().BoolVar(&noScript, "no-script", false, "only print the report")

	return cmd
}
