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
Package cleanup removes the leftovers of a finished translation project and
records what it did.

	+-----------+     +---------+     +--------+     +--------+
	|  Delete   | --> | Verify  | --> | Report | --> |  Done  |
	| files/dirs|     | artifact|     | summary|     |        |
	+-----------+     +---------+     +--------+     +--------+

🎯 Purpose:
- Delete the temporary reports and scripts named in a Manifest
- Recursively remove the temporary directories named in a Manifest
- Check that the translated notebook still exists and parses
- List the important files that survived
- Write a Markdown summary and print a final report

🔄 Flow:
Every step always runs. A failing step lowers the counters in the Outcome
and the run moves on; there is no failed end state.

🛡️ Safety:
Only paths listed in the Manifest are ever deleted. Deletion here is a real
unlink, not a rename. Use pkg/softdelete for reversible removal.

🔍 Example:

	runner, err := cleanup.New(cleanup.Options{
		Manifest:    cleanup.ManifestFrom(cfg.Cleanup),
		Artifact:    cfg.Cleanup.Artifact,
		SummaryPath: cfg.Cleanup.SummaryPath,
		Files:       fsops.New(dir),
	})
	if err != nil {
		return err
	}
	outcome := runner.Run(ctx)
*/
package cleanup
