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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func ptr(s string) *string { return &s }

func TestNew(t *testing.T) {
	t.Run("sorted_iteration", func(t *testing.T) {
		tr, err := New(
			Node{Path: "b/c"},
			Node{Path: "a"},
			Node{Path: "b/a"},
		)
		require.NoError(t, err)
		assert.Equal(t, 3, tr.Len())
		assert.Equal(t, []string{"a", "b/a", "b/c"}, tr.Paths())

		var seen []string
		for p, n := range tr.All() {
			assert.Equal(t, p, n.Path, "key should match node path")
			seen = append(seen, p)
		}
		assert.Equal(t, tr.Paths(), seen)
	})

	t.Run("duplicate_path", func(t *testing.T) {
		_, err := New(Node{Path: "a"}, Node{Path: "a"})
		require.Error(t, err)

		var dup *DuplicatePathError
		require.True(t, errors.As(err, &dup), "error should be a DuplicatePathError")
		assert.Equal(t, "a", dup.Path)
		assert.Contains(t, err.Error(), `duplicate path "a"`)
	})

	t.Run("nil_tree", func(t *testing.T) {
		var tr *Tree
		assert.Equal(t, 0, tr.Len())
		assert.False(t, tr.Has("a"))
		assert.Empty(t, tr.Paths())
	})
}

func TestBuilderAddFrom(t *testing.T) {
	b := NewBuilder(2)
	require.NoError(t, b.AddFrom("x/a", Node{Path: "a"}))
	err := b.AddFrom("y/a", Node{Path: "a"})
	require.Error(t, err)

	var dup *DuplicatePathError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "x/a", dup.First)
	assert.Equal(t, "y/a", dup.Second)
	assert.Contains(t, err.Error(), `both "x/a" and "y/a"`)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b", "a/b"},
		{"/a/b/", "a/b"},
		{"./a", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNodeCopies(t *testing.T) {
	n := Node{Path: "a", Content: ptr("x"), Revision: "r1"}
	moved := n.WithPath("b").WithContent(ptr("y"))

	assert.Equal(t, "a", n.Path, "original should be untouched")
	assert.Equal(t, "x", *n.Content)
	assert.Equal(t, "b", moved.Path)
	assert.Equal(t, "y", *moved.Content)
	assert.Equal(t, "r1", moved.Revision)
}
