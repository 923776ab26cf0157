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
)

func mustTree(t *testing.T, nodes ...Node) *Tree {
	t.Helper()
	tr, err := New(nodes...)
	require.NoError(t, err)
	return tr
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		source      []Node
		destination []Node
		want        []Event
	}{
		{
			name: "create_update_delete",
			source: []Node{
				{Path: "repo_one_folder/folder/test2", Content: ptr("c2")},
				{Path: "repo_one_folder/folder/test3", Content: ptr("c3")},
			},
			destination: []Node{
				{Path: "repo_one_folder/test1", Content: ptr("d1"), Revision: "r1"},
				{Path: "repo_one_folder/folder/test2", Content: ptr("d2"), Revision: "r2"},
				{Path: "repo_one_folder/folder/test4", Content: ptr("d3"), Revision: "r3"},
			},
			want: []Event{
				Update("repo_one_folder/folder/test2", ptr("c2"), "r2"),
				Create("repo_one_folder/folder/test3", ptr("c3")),
				Delete("repo_one_folder/folder/test4", "r3"),
				Delete("repo_one_folder/test1", "r1"),
			},
		},
		{
			name:        "empty_destination",
			source:      []Node{{Path: "b", Content: ptr("2")}, {Path: "a", Content: ptr("1")}},
			destination: nil,
			want: []Event{
				Create("a", ptr("1")),
				Create("b", ptr("2")),
			},
		},
		{
			name:        "empty_source",
			source:      nil,
			destination: []Node{{Path: "a", Revision: "r"}},
			want:        []Event{Delete("a", "r")},
		},
		{
			name:        "identical_content_still_updates",
			source:      []Node{{Path: "a", Content: ptr("same"), Revision: "src"}},
			destination: []Node{{Path: "a", Content: ptr("same"), Revision: "dst"}},
			want:        []Event{Update("a", ptr("same"), "dst")},
		},
		{
			name:        "absent_content",
			source:      []Node{{Path: "a"}},
			destination: nil,
			want:        []Event{Create("a", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(mustTree(t, tt.source...), mustTree(t, tt.destination...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiffSelf(t *testing.T) {
	tr := mustTree(t,
		Node{Path: "a", Content: ptr("1"), Revision: "r1"},
		Node{Path: "b/c", Content: ptr("2"), Revision: "r2"},
		Node{Path: "b/d", Revision: "r3"},
	)

	events := Diff(tr, tr)
	sum := Summarize(events)
	assert.Equal(t, Summary{Updates: 3}, sum, "diffing a tree with itself should only update")
	for _, e := range events {
		n, ok := tr.Get(e.Path)
		require.True(t, ok)
		assert.Equal(t, n.Revision, e.Revision, "update should carry the destination revision")
	}
}

func TestDiffDoesNotMutateInputs(t *testing.T) {
	src := mustTree(t, Node{Path: "a", Content: ptr("1")})
	dst := mustTree(t, Node{Path: "b", Revision: "r"})

	first := Diff(src, dst)
	second := Diff(src, dst)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a"}, src.Paths())
	assert.Equal(t, []string{"b"}, dst.Paths())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "create a", Create("a", nil).String())
	assert.Equal(t, "update a@r", Update("a", nil, "r").String())
	assert.Equal(t, "delete a@r", Delete("a", "r").String())
	assert.Equal(t, "", Delete("a", "r").ContentString())
	assert.Equal(t, "x", Create("a", ptr("x")).ContentString())
	assert.Equal(t, "1 to create, 0 to update, 2 to delete", Summary{Creates: 1, Deletes: 2}.String())
}
