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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔎 AnalyzeArgs configures the markdown inventory analyzer
type AnalyzeArgs struct {
	Root             string   `json:"root" yaml:"root"`                           // Directory to scan
	Pattern          string   `json:"pattern" yaml:"pattern"`                     // Glob selecting markdown files
	Exclude          []string `json:"exclude" yaml:"exclude"`                     // Glob patterns skipped during the scan
	RespectGitignore bool     `json:"respect_gitignore" yaml:"respect_gitignore"` // Skip files matched by the root .gitignore
	RootMarkers      []string `json:"root_markers" yaml:"root_markers"`           // Strings identifying the top-level README
	PreviewLines     int      `json:"preview_lines" yaml:"preview_lines"`         // Lines kept in a record's preview
	ScriptPath       string   `json:"script_path" yaml:"script_path"`             // Where the soft-delete script is written, relative to Root
}

// 🧹 CleanupArgs configures the project cleanup runner
type CleanupArgs struct {
	TempReports    []string `json:"temp_reports" yaml:"temp_reports"`       // Report files to delete
	TempScripts    []string `json:"temp_scripts" yaml:"temp_scripts"`       // Script files to delete
	TempDirs       []string `json:"temp_dirs" yaml:"temp_dirs"`             // Directories to remove recursively
	ImportantFiles []string `json:"important_files" yaml:"important_files"` // Paths expected to survive
	Artifact       string   `json:"artifact" yaml:"artifact"`               // Notebook verified after cleanup
	SummaryPath    string   `json:"summary_path" yaml:"summary_path"`       // Generated summary document
}

// 📚 Config represents the complete configuration
type Config struct {
	Analyze AnalyzeArgs `json:"analyze" yaml:"analyze"`
	Cleanup CleanupArgs `json:"cleanup" yaml:"cleanup"`
}

// 🎯 Load reads a config file and layers it over the compiled-in defaults
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	override, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	cfg.Merge(override)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔀 Merge overlays every non-empty value of other onto cfg
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	a, o := &cfg.Analyze, other.Analyze
	mergeString(&a.Root, o.Root)
	mergeString(&a.Pattern, o.Pattern)
	mergeString(&a.ScriptPath, o.ScriptPath)
	mergeList(&a.Exclude, o.Exclude)
	mergeList(&a.RootMarkers, o.RootMarkers)
	if o.PreviewLines != 0 {
		a.PreviewLines = o.PreviewLines
	}
	if o.RespectGitignore {
		a.RespectGitignore = true
	}

	c, oc := &cfg.Cleanup, other.Cleanup
	mergeList(&c.TempReports, oc.TempReports)
	mergeList(&c.TempScripts, oc.TempScripts)
	mergeList(&c.TempDirs, oc.TempDirs)
	mergeList(&c.ImportantFiles, oc.ImportantFiles)
	mergeString(&c.Artifact, oc.Artifact)
	mergeString(&c.SummaryPath, oc.SummaryPath)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeList(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = append([]string(nil), v...)
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Check required fields
	if cfg.Analyze.Root == "" {
		return errors.Errorf("analyze.root is required")
	}
	if cfg.Analyze.ScriptPath == "" {
		return errors.Errorf("analyze.script_path is required")
	}
	if cfg.Analyze.PreviewLines <= 0 {
		return errors.Errorf("analyze.preview_lines must be positive, got %d", cfg.Analyze.PreviewLines)
	}
	if !doublestar.ValidatePattern(cfg.Analyze.Pattern) {
		return errors.Errorf("analyze.pattern %q is not a valid glob", cfg.Analyze.Pattern)
	}
	for _, pattern := range cfg.Analyze.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("analyze.exclude pattern %q is not a valid glob", pattern)
		}
	}
	if cfg.Cleanup.Artifact == "" {
		return errors.Errorf("cleanup.artifact is required")
	}
	if cfg.Cleanup.SummaryPath == "" {
		return errors.Errorf("cleanup.summary_path is required")
	}

	// The cleanup lists are an allow-list: nothing may point outside the working tree
	lists := map[string][]string{
		"cleanup.temp_reports":    cfg.Cleanup.TempReports,
		"cleanup.temp_scripts":    cfg.Cleanup.TempScripts,
		"cleanup.temp_dirs":       cfg.Cleanup.TempDirs,
		"cleanup.important_files": cfg.Cleanup.ImportantFiles,
	}
	for field, names := range lists {
		for _, name := range names {
			if !filepath.IsLocal(name) {
				return errors.Errorf("%s entry %q must be a local relative path", field, name)
			}
		}
	}
	if !filepath.IsLocal(cfg.Cleanup.Artifact) {
		return errors.Errorf("cleanup.artifact %q must be a local relative path", cfg.Cleanup.Artifact)
	}

	// Clean up paths
	cfg.Analyze.Root = filepath.Clean(cfg.Analyze.Root)
	cfg.Cleanup.Artifact = filepath.Clean(cfg.Cleanup.Artifact)
	cfg.Cleanup.SummaryPath = filepath.Clean(cfg.Cleanup.SummaryPath)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("analyze %s (%s) | cleanup %d reports, %d scripts, %d dirs -> %s",
		cfg.Analyze.Root,
		cfg.Analyze.Pattern,
		len(cfg.Cleanup.TempReports),
		len(cfg.Cleanup.TempScripts),
		len(cfg.Cleanup.TempDirs),
		cfg.Cleanup.SummaryPath)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
