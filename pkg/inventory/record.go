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
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// TimestampLayout is how modification times are printed
const TimestampLayout = "2006-01-02 15:04:05"

// 📄 FileRecord is the metadata gathered for one markdown file
type FileRecord struct {
	RelativePath   string    // Slash-separated path below the scan root
	Filename       string    // Base name
	SizeBytes      int64     // Size from stat
	Modified       time.Time // Modification time from stat
	LineCount      int       // Number of lines, a trailing unterminated line included
	ContentPreview string    // First lines, trimmed, joined by "\n"
}

// Timestamp returns the modification time in TimestampLayout, local time
func (r FileRecord) Timestamp() string {
	return r.Modified.Local().Format(TimestampLayout)
}

// Dir returns the slash-separated directory holding the file, "." for the root
func (r FileRecord) Dir() string {
	return path.Dir(r.RelativePath)
}

// 🔍 ReadRecord stats and reads root/rel. previewLines bounds ContentPreview.
func ReadRecord(root, rel string, previewLines int) (FileRecord, error) {
	absPath := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(absPath)
	if err != nil {
		return FileRecord{}, errors.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return FileRecord{}, errors.Errorf("reading %s: is a directory", rel)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return FileRecord{}, errors.Errorf("opening %s: %w", rel, err)
	}
	defer f.Close()

	lines, preview, err := scanLines(f, previewLines)
	if err != nil {
		return FileRecord{}, errors.Errorf("reading %s: %w", rel, err)
	}

	return FileRecord{
		RelativePath:   rel,
		Filename:       path.Base(rel),
		SizeBytes:      info.Size(),
		Modified:       info.ModTime(),
		LineCount:      lines,
		ContentPreview: strings.Join(preview, "\n"),
	}, nil
}

// scanLines counts every line of r and keeps the first keep of them trimmed
func scanLines(r io.Reader, keep int) (int, []string, error) {
	reader := bufio.NewReader(r)

	count := 0
	var preview []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			count++
			if len(preview) < keep {
				preview = append(preview, strings.ToValidUTF8(strings.TrimSpace(line), "�"))
			}
		}
		if errors.Is(err, io.EOF) {
			return count, preview, nil
		}
		if err != nil {
			return 0, nil, err
		}
	}
}
