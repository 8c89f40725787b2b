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

/*
Package config holds the policy doctidy runs with.

	+-----------+     +---------+     +-----------+
	|  Default  | <-- |  Merge  | <-- |  Parser   |
	| (compiled)|     |         |     | yaml/json |
	+-----------+     +---------+     |    hcl    |
	                                  +-----------+

🎯 Purpose:
- Carries the compiled-in defaults: the root to scan, the README root markers
  and the four cleanup lists (temp reports, temp scripts, temp dirs,
  important files)
- Optionally layers a config file over those defaults
- Validates that every cleanup entry stays inside the working tree

🔄 Flow:
1. Default() builds a fresh copy of the compiled-in policy
2. Load() picks a parser by file extension and parses the file
3. Non-empty values from the file replace the defaults (lists are replaced, not appended)
4. Validate() rejects bad globs and non-local cleanup paths

🔍 Example:

	cfg := config.Default()
	if path != "" {
		cfg, err = config.Load(ctx, path)
		if err != nil {
			return err
		}
	}

HCL files may read the environment:

	analyze {
	  root = env.DOCS_ROOT
	}
*/
package config
