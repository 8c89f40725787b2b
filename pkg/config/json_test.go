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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_minimal_json",
			config: `{
				"analyze": {
					"root": "site"
				}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "site", cfg.Analyze.Root)
				assert.Empty(t, cfg.Cleanup.TempReports, "parser output is not merged with defaults")
			},
		},
		{
			name: "valid_full_json",
			config: `{
				"analyze": {
					"root": "site",
					"pattern": "**/*.markdown",
					"exclude": ["vendor/**"],
					"respect_gitignore": true,
					"root_markers": ["My Project"],
					"preview_lines": 10,
					"script_path": "backup.sh"
				},
				"cleanup": {
					"temp_reports": ["r.txt"],
					"temp_scripts": ["s.py"],
					"temp_dirs": ["build"],
					"important_files": ["LICENSE"],
					"artifact": "book.ipynb",
					"summary_path": "SUMMARY.md"
				}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "**/*.markdown", cfg.Analyze.Pattern)
				assert.Equal(t, []string{"vendor/**"}, cfg.Analyze.Exclude)
				assert.True(t, cfg.Analyze.RespectGitignore)
				assert.Equal(t, []string{"My Project"}, cfg.Analyze.RootMarkers)
				assert.Equal(t, 10, cfg.Analyze.PreviewLines)
				assert.Equal(t, "backup.sh", cfg.Analyze.ScriptPath)
				assert.Equal(t, []string{"r.txt"}, cfg.Cleanup.TempReports)
				assert.Equal(t, []string{"s.py"}, cfg.Cleanup.TempScripts)
				assert.Equal(t, []string{"build"}, cfg.Cleanup.TempDirs)
				assert.Equal(t, []string{"LICENSE"}, cfg.Cleanup.ImportantFiles)
				assert.Equal(t, "book.ipynb", cfg.Cleanup.Artifact)
				assert.Equal(t, "SUMMARY.md", cfg.Cleanup.SummaryPath)
			},
		},
		{
			name:        "invalid_json",
			config:      `{"analyze": }`,
			wantErr:     true,
			errContains: "decoding doctidy JSON config",
		},
		{
			name:        "trailing_object",
			config:      `{"analyze": {"root": "a"}} {"analyze": {"root": "b"}}`,
			wantErr:     true,
			errContains: "trailing data",
		},
		{
			name:   "trailing_whitespace_ok",
			config: "{\"cleanup\": {\"temp_dirs\": [\"build\"]}}\n\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"build"}, cfg.Cleanup.TempDirs)
			},
		},
		{
			name:        "unknown_field",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			cfg, err := parser.Parse(context.Background(), []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestJSONLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctidy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cleanup": {"temp_dirs": ["cache"]}}`), 0644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cache"}, cfg.Cleanup.TempDirs)
	assert.Equal(t, Default().Cleanup.TempReports, cfg.Cleanup.TempReports)
}

func TestParserSelection(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{"doctidy.json", &JSONParser{}},
		{"doctidy.yaml", &YAMLParser{}},
		{"doctidy.yml", &YAMLParser{}},
		{"doctidy.hcl", &HCLParser{}},
		{"doctidy.toml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}
