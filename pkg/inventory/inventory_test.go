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

package inventory

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = []string{"qgss-2025", "Qiskit Global Summer School"}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func paths(cs []Classification) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Record.RelativePath)
	}
	return out
}

func TestAnalyzeScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":              "# qgss-2025\n\nQiskit Global Summer School notebooks\n",
		"sub/README.md":          "# Lab 3\n\nexercises\n",
		"TRANSLATION_GUIDE.md":   "# guide\n",
		"TRANSLATION_SUMMARY.md": "# summary\n",
		"NOTES.md":               "scratch\n",
		"lab.ipynb":              "{}",
	})

	inv, err := Analyze(testContext(t), ScanOptions{Root: root, PreviewLines: 5}, DefaultRules(testMarkers))
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "sub/README.md"}, paths(inv.Group(Keep)))
	assert.Equal(t, []string{"TRANSLATION_GUIDE.md"}, paths(inv.Group(Delete)))
	assert.Equal(t, []string{"TRANSLATION_SUMMARY.md"}, paths(inv.Group(Optional)))
	assert.Equal(t, []string{"NOTES.md"}, paths(inv.Group(Unknown)))

	keep := inv.Group(Keep)
	assert.Equal(t, "root-readme", keep[0].Rule)
	assert.Equal(t, "readme", keep[1].Rule)
	assert.Equal(t, "sub-project readme (sub)", keep[1].Reason)

	counts := inv.Counts()
	sum := 0
	for _, d := range Dispositions {
		sum += counts[d]
	}
	assert.Equal(t, inv.Total(), sum, "total should equal the sum of groups")
	assert.Equal(t, 5, inv.Total())
	assert.Empty(t, inv.Skipped)
}

func TestScanOrderingAndFilters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.md":                  "b",
		"a.md":                  "a",
		"docs/z.md":             "z",
		"docs/drafts/d.md":      "d",
		"node_modules/pkg/x.md": "x",
		"build/out.md":          "o",
		"notes.txt":             "not markdown",
		".gitignore":            "build/\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.md"), 0755))

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "everything_sorted",
			opts: ScanOptions{Root: root, PreviewLines: 5},
			want: []string{"a.md", "b.md", "build/out.md", "docs/drafts/d.md", "docs/z.md", "node_modules/pkg/x.md"},
		},
		{
			name: "exclude_patterns",
			opts: ScanOptions{Root: root, PreviewLines: 5, Exclude: []string{"node_modules/**", "docs/drafts/**"}},
			want: []string{"a.md", "b.md", "build/out.md", "docs/z.md"},
		},
		{
			name: "respect_gitignore",
			opts: ScanOptions{Root: root, PreviewLines: 5, RespectGitignore: true},
			want: []string{"a.md", "b.md", "docs/drafts/d.md", "docs/z.md", "node_modules/pkg/x.md"},
		},
		{
			name: "custom_pattern",
			opts: ScanOptions{Root: root, PreviewLines: 5, Pattern: "docs/**/*.md"},
			want: []string{"docs/drafts/d.md", "docs/z.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(testContext(t), tt.opts)
			require.NoError(t, err)

			got := make([]string, 0, len(res.Records))
			for _, r := range res.Records {
				got = append(got, r.RelativePath)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(testContext(t), ScanOptions{Root: filepath.Join(t.TempDir(), "absent"), PreviewLines: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening scan root")
}

func TestScanSkipsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.md":     "fine\n",
		"locked.md": "secret\n",
	})
	locked := filepath.Join(root, "locked.md")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0644) })

	res, err := Scan(testContext(t), ScanOptions{Root: root, PreviewLines: 5})
	require.NoError(t, err, "one unreadable file must not fail the scan")

	require.Len(t, res.Records, 1)
	assert.Equal(t, "ok.md", res.Records[0].RelativePath)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "locked.md", res.Skipped[0].Path)
}

func TestScanSkipsDanglingSymlink(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.md":       "first\n",
		"docs/z.md":  "last\n",
		"docs/y.txt": "not markdown\n",
	})
	if err := os.Symlink(filepath.Join(root, "nowhere.md"), filepath.Join(root, "broken.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	res, err := Scan(testContext(t), ScanOptions{Root: root, PreviewLines: 5})
	require.NoError(t, err, "a broken link must not fail the scan")

	paths := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		paths = append(paths, rec.RelativePath)
	}
	assert.Equal(t, []string{"a.md", "docs/z.md"}, paths, "records on both sides of the broken link are still read")

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "broken.md", res.Skipped[0].Path)
	assert.ErrorIs(t, res.Skipped[0].Err, fs.ErrNotExist)

	inv := Build(testContext(t), res, DefaultRules(nil))
	assert.Equal(t, 2, inv.Total())
	assert.Len(t, inv.Skipped, 1)
}

func TestReadRecord(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantLines   int
		wantPreview string
	}{
		{
			name:        "empty_file",
			content:     "",
			wantLines:   0,
			wantPreview: "",
		},
		{
			name:        "short_file",
			content:     "  # Title  \nbody\n",
			wantLines:   2,
			wantPreview: "# Title\nbody",
		},
		{
			name:        "unterminated_last_line",
			content:     "one\ntwo",
			wantLines:   2,
			wantPreview: "one\ntwo",
		},
		{
			name:        "long_file_truncates_preview",
			content:     "1\n2\n3\n4\n5\n6\n7\n",
			wantLines:   7,
			wantPreview: "1\n2\n3\n4\n5",
		},
		{
			name:        "crlf_line_endings",
			content:     "a\r\nb\r\n",
			wantLines:   2,
			wantPreview: "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{"dir/file.md": tt.content})

			rec, err := ReadRecord(root, "dir/file.md", 5)
			require.NoError(t, err)

			assert.Equal(t, "dir/file.md", rec.RelativePath)
			assert.Equal(t, "file.md", rec.Filename)
			assert.Equal(t, "dir", rec.Dir())
			assert.Equal(t, int64(len(tt.content)), rec.SizeBytes)
			assert.Equal(t, tt.wantLines, rec.LineCount)
			assert.Equal(t, tt.wantPreview, rec.ContentPreview)
			assert.Len(t, rec.Timestamp(), len(TimestampLayout))
		})
	}
}
