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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_config",
			config: `
analyze:
  root: docs
  exclude:
    - "node_modules/**"
  respect_gitignore: true
  preview_lines: 3
cleanup:
  temp_reports:
    - a.txt
    - b.txt
  temp_dirs:
    - scratch
  artifact: out/book.ipynb
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "docs", cfg.Analyze.Root, "root should match")
				assert.Equal(t, "**/*.md", cfg.Analyze.Pattern, "pattern should keep default")
				assert.Equal(t, []string{"node_modules/**"}, cfg.Analyze.Exclude, "exclude should match")
				assert.True(t, cfg.Analyze.RespectGitignore, "respect_gitignore should be true")
				assert.Equal(t, 3, cfg.Analyze.PreviewLines, "preview lines should match")
				assert.Equal(t, "cleanup_markdown.sh", cfg.Analyze.ScriptPath, "script path should keep default")
				assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Cleanup.TempReports, "temp reports should be replaced")
				assert.Equal(t, []string{"scratch"}, cfg.Cleanup.TempDirs, "temp dirs should be replaced")
				assert.Len(t, cfg.Cleanup.TempScripts, len(Default().Cleanup.TempScripts), "temp scripts should keep default")
				assert.Equal(t, "out/book.ipynb", cfg.Cleanup.Artifact, "artifact should match")
			},
		},
		{
			name:   "empty_config_uses_defaults",
			config: ``,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg, "empty file should produce the defaults")
			},
		},
		{
			name: "unknown_field",
			config: `
analyze:
  rooot: docs
`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name: "invalid_preview_lines",
			config: `
analyze:
  preview_lines: -2
`,
			wantErr:     true,
			errContains: "analyze.preview_lines must be positive",
		},
		{
			name: "escaping_temp_dir",
			config: `
cleanup:
  temp_dirs:
    - ../outside
`,
			wantErr:     true,
			errContains: "cleanup.temp_dirs entry",
		},
		{
			name: "invalid_exclude_glob",
			config: `
analyze:
  exclude:
    - "[abc"
`,
			wantErr:     true,
			errContains: "not a valid glob",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "doctidy.yaml")
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	path := filepath.Join(t.TempDir(), "doctidy.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0644))

	_, err := Load(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate(), "compiled-in defaults must validate")

	assert.Len(t, cfg.Cleanup.TempReports, 4)
	assert.Len(t, cfg.Cleanup.TempScripts, 31)
	assert.Equal(t, []string{"tmp"}, cfg.Cleanup.TempDirs)
	assert.Contains(t, cfg.Cleanup.ImportantFiles, cfg.Cleanup.Artifact, "artifact should be listed as important")
}

func TestDefaultReturnsCopies(t *testing.T) {
	a := Default()
	a.Cleanup.TempDirs[0] = "changed"

	b := Default()
	assert.Equal(t, "tmp", b.Cleanup.TempDirs[0], "mutating one default must not affect another")
}

func TestConfigString(t *testing.T) {
	cfg := Default()
	assert.Equal(t,
		"analyze . (**/*.md) | cleanup 4 reports, 31 scripts, 1 dirs -> TRANSLATION_SUMMARY.md",
		cfg.String(),
		"String() should match")
}
