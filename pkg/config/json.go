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
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser reads a doctidy config written as JSON. Top-level keys are
// "analyze" and "cleanup"; unknown keys are rejected.
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse accepts any path ending in .json, in any case
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

// 📝 Parse decodes the analyze and cleanup overrides. Missing sections stay
// zero and are filled from the defaults by Load.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("decoding doctidy JSON config (analyze/cleanup sections): %w", err)
	}
	if decoder.More() {
		return nil, errors.Errorf("decoding doctidy JSON config: trailing data after the config object")
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", cfg.Analyze.Root).
		Int("temp_reports", len(cfg.Cleanup.TempReports)).
		Int("temp_scripts", len(cfg.Cleanup.TempScripts)).
		Msg("decoded JSON config")

	return &cfg, nil
}
