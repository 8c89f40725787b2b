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
	"github.com/spf13/cobra"
	"github.com/walteh/doctidy/cmd/doctidy/opts"
	"github.com/walteh/doctidy/pkg/cleanup"
	"github.com/walteh/doctidy/pkg/fsops"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCleanupCmd creates a new cleanup command
func NewCleanupCmd(opts *opts.RootOpts) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete temporary files and verify the translated notebook",
		Long: `Cleanup removes the temporary reports, scripts and directories listed in
the configuration. It will:
1. Delete listed files and directories that exist (not reversible)
2. Verify the translated notebook exists and parses
3. List the important files that remain
4. Write the translation summary document
5. Print a final report

Failures of single items are reported and never stop the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			cfg := opts.Config.Cleanup
			fm := fsops.New(dir)
			runner, err := cleanup.New(cleanup.Options{
				Manifest:    cleanup.ManifestFrom(cfg),
				Artifact:    cfg.Artifact,
				SummaryPath: cfg.SummaryPath,
				Files:       fm,
			})
			if err != nil {
				return errors.Errorf("creating cleanup runner: %w", err)
			}

			logger.Header("cleaning up project in " + fm.BaseDir())
			runner.Run(ctx)

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")

	return cmd
}
