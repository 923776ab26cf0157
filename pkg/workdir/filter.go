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

package workdir

import (
	"strings"

	"github.com/walteh/syncy/pkg/tree"
)

// Filter returns the entries of t selected by expr, with a leading
// rootPrefix + "/" stripped from every retained key that has it.
//
// A Path expression (or nil) selects everything and returns t itself,
// without stripping. Stripping that makes two keys collide fails with a
// *tree.DuplicatePathError.
func Filter(t *tree.Tree, expr Expression, rootPrefix string) (*tree.Tree, error) {
	g, ok := expr.(GlobFilter)
	if !ok {
		return t, nil
	}

	prefix := strings.TrimSuffix(rootPrefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	b := tree.NewBuilder(t.Len())
	for key, node := range t.All() {
		if !g.Match(key) {
			continue
		}
		if err := b.AddFrom(key, node.WithPath(strings.TrimPrefix(key, prefix))); err != nil {
			return nil, err
		}
	}
	return b.Tree(), nil
}
