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

import "fmt"

// DuplicatePathError reports two distinct entries that ended up under the
// same key, either at construction or after a rewrite.
type DuplicatePathError struct {
	Path   string // The colliding key
	First  string // Key the first entry was derived from
	Second string // Key the second entry was derived from
}

func (e *DuplicatePathError) Error() string {
	if e.First == e.Path && e.Second == e.Path {
		return fmt.Sprintf("duplicate path %q", e.Path)
	}
	return fmt.Sprintf("duplicate path %q: both %q and %q map to it", e.Path, e.First, e.Second)
}
