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

// 🏠 Default returns the policy compiled into doctidy. Every call returns a
// fresh copy so callers may modify it freely.
func Default() *Config {
	return &Config{
		Analyze: AnalyzeArgs{
			Root:         ".",
			Pattern:      "**/*.md",
			RootMarkers:  []string{"qgss-2025", "Qiskit Global Summer School"},
			PreviewLines: 5,
			ScriptPath:   "cleanup_markdown.sh",
		},
		Cleanup: CleanupArgs{
			TempReports: []string{
				"untranslated_cells_report.txt",
				"translation_final_report.txt",
				"translation_completion_report.txt",
				"final_translation_report.txt",
			},
			TempScripts: []string{
				"ai_translate_helper.py",
				"analyze_final_quality.py",
				"analyze_translation.py",
				"apply_ai_translation.py",
				"auto_translate_lab3.py",
				"batch_translate_cells.py",
				"cell_extractor.py",
				"check_translation.py",
				"complete_merge_all_translations.py",
				"complete_remaining_translation.py",
				"direct_ai_translator.py",
				"extract_cells_26_35.py",
				"extract_cells_tw.py",
				"final_quality_report.py",
				"final_verification_report.py",
				"final_verification.py",
				"fix_and_merge_translations.py",
				"full_translator.py",
				"llm_translate_cells.py",
				"merge_partial_translation.py",
				"merge_translated_cells.py",
				"prepare_segments.py",
				"show_full_cells.py",
				"smart_batch_translator.py",
				"translate_cells_batch.py",
				"translate_lab3.py",
				"translate_remaining_cells.py",
				"translate_single_cell.py",
				"verify_lab3_tw.py",
				"verify_translation_completion.py",
				"write_translations.py",
			},
			TempDirs: []string{"tmp"},
			ImportantFiles: []string{
				"lab-3/lab3_tw.ipynb",
				"TRANSLATION_GUIDE.md",
				"README.md",
				"LICENSE",
				".gitignore",
			},
			Artifact:    "lab-3/lab3_tw.ipynb",
			SummaryPath: "TRANSLATION_SUMMARY.md",
		},
	}
}
