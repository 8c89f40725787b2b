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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "doctidy.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environment(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Analyze *struct {
			Root             string   `hcl:"root,optional"`
			Pattern          string   `hcl:"pattern,optional"`
			Exclude          []string `hcl:"exclude,optional"`
			RespectGitignore bool     `hcl:"respect_gitignore,optional"`
			RootMarkers      []string `hcl:"root_markers,optional"`
			PreviewLines     int      `hcl:"preview_lines,optional"`
			ScriptPath       string   `hcl:"script_path,optional"`
		} `hcl:"analyze,block"`
		Cleanup *struct {
			TempReports    []string `hcl:"temp_reports,optional"`
			TempScripts    []string `hcl:"temp_scripts,optional"`
			TempDirs       []string `hcl:"temp_dirs,optional"`
			ImportantFiles []string `hcl:"important_files,optional"`
			Artifact       string   `hcl:"artifact,optional"`
			SummaryPath    string   `hcl:"summary_path,optional"`
		} `hcl:"cleanup,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if a := hclCfg.Analyze; a != nil {
		cfg.Analyze = AnalyzeArgs{
			Root:             a.Root,
			Pattern:          a.Pattern,
			Exclude:          a.Exclude,
			RespectGitignore: a.RespectGitignore,
			RootMarkers:      a.RootMarkers,
			PreviewLines:     a.PreviewLines,
			ScriptPath:       a.ScriptPath,
		}
	}
	if c := hclCfg.Cleanup; c != nil {
		cfg.Cleanup = CleanupArgs{
			TempReports:    c.TempReports,
			TempScripts:    c.TempScripts,
			TempDirs:       c.TempDirs,
			ImportantFiles: c.ImportantFiles,
			Artifact:       c.Artifact,
			SummaryPath:    c.SummaryPath,
		}
	}

	return cfg, nil
}

// 🌍 environment exposes the process environment as env.NAME inside HCL files
func environment() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
