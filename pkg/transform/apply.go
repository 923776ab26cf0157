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

package transform

import (
	"github.com/walteh/syncy/pkg/tree"
)

// Report describes what Apply changed.
type Report struct {
	Moved        int      // Entries whose path was rewritten
	Unmoved      []string // Entries no Move matched, while at least one Move exists
	Rewritten    int      // Entries whose content changed
	Replacements int      // Total regex matches substituted
}

// Apply rewrites t with ts and returns the new tree. See ApplyReport.
func Apply(t *tree.Tree, ts []Transformation) (*tree.Tree, error) {
	out, _, err := ApplyReport(t, ts)
	return out, err
}

// ApplyReport rewrites every entry of t with ts, in key order.
//
// For each entry the whole list is scanned: each matching Move replaces the
// computed path (the last match wins) and each Replace rewrites the content.
// Entries matched by no Move keep their original path. Two entries landing
// on the same path fail with a *tree.DuplicatePathError.
func ApplyReport(t *tree.Tree, ts []Transformation) (*tree.Tree, Report, error) {
	var report Report
	if len(ts) == 0 {
		return t, report, nil
	}

	hasMove := false
	for _, tr := range ts {
		if _, ok := tr.(Move); ok {
			hasMove = true
			break
		}
	}

	b := tree.NewBuilder(t.Len())
	for key, node := range t.All() {
		path, moved := key, false
		content, replaced := node.Content, 0

		for _, tr := range ts {
			switch tr := tr.(type) {
			case Move:
				if next, ok := tr.Rewrite(key); ok {
					path, moved = next, true
				}
			case Replace:
				var n int
				content, n = tr.ReplaceContent(content)
				replaced += n
			}
		}

		switch {
		case moved:
			report.Moved++
		case hasMove:
			report.Unmoved = append(report.Unmoved, key)
		}
		if replaced > 0 {
			report.Rewritten++
			report.Replacements += replaced
		}

		if err := b.AddFrom(key, node.WithPath(path).WithContent(content)); err != nil {
			return nil, Report{}, err
		}
	}

	return b.Tree(), report, nil
}
