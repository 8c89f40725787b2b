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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/doctidy/cmd/doctidy/commands"
	"github.com/walteh/doctidy/cmd/doctidy/opts"
	"github.com/walteh/doctidy/pkg/config"
	"github.com/walteh/doctidy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd builds the command tree writing human output to stdout
func newRootCmd(stdout io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "doctidy",
		Short: "Inventory and tidy up the documentation of a finished translation project",
		Long: `doctidy classifies the markdown files of a project, soft-deletes the ones
that are no longer needed, and cleans up leftover reports, scripts and
temporary directories.

Every command runs without flags using compiled-in defaults. Pass --config
with a .yaml, .json or .hcl file to override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stdout)
			cmd.SetContext(ctx)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			rootOpts.Config = cfg

			zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration ready")
			return nil
		},
	}

	// Add shared flags
	addRootFlags(cmd)

	// Add commands
	cmd.AddCommand(
		commands.NewAnalyzeCmd(rootOpts),
		commands.NewBackupCmd(rootOpts),
		commands.NewCleanupCmd(rootOpts),
		newVersionCmd(stdout),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and attaches both loggers to ctx
func setupLogging(ctx context.Context, console io.Writer) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog

	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(console, zlog))
}

// loadConfig returns the compiled-in defaults, overlaid with --config when given
func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating defaults: %w", err)
		}
		return cfg, nil
	}
	return config.Load(ctx, configFile)
}
