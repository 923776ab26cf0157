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

package tree

import (
	"cmp"
	"slices"
)

// Diff compares source against destination by key and returns the events
// that make destination look like source, sorted by path.
//
// Only key presence is compared. A path present in both trees is always an
// Update carrying the source content and the destination revision, even if
// the bodies are identical.
func Diff(source, destination *Tree) []Event {
	events := make([]Event, 0, source.Len()+destination.Len())

	for path, node := range source.All() {
		if dest, ok := destination.Get(path); ok {
			events = append(events, Update(path, node.Content, dest.Revision))
			continue
		}
		events = append(events, Create(path, node.Content))
	}

	for path, node := range destination.All() {
		if source.Has(path) {
			continue
		}
		events = append(events, Delete(path, node.Revision))
	}

	slices.SortFunc(events, func(a, b Event) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return events
}
