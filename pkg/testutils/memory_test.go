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

package testutils

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/syncy/pkg/remote"
)

func TestMemoryProviderLifecycle(t *testing.T) {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	repo := remote.RepoRef{Owner: "o", Name: "r"}
	m := NewMemoryProvider()
	m.AddFile(repo, "main", "docs/a.md", "A")
	m.AddFile(repo, "main", "docs/b.md", "B")
	m.AddFile(repo, "main", "README", "R")

	listed, err := m.ListTree(ctx, repo, "main", "docs/")
	require.NoError(t, err, "listing tree")
	assert.Equal(t, []string{"a.md", "b.md"}, listed.Paths(), "keys should be re-rooted below the path")
	node, ok := listed.Get("a.md")
	require.True(t, ok)
	assert.Equal(t, BlobSHA("A"), node.Revision)
	assert.Equal(t, "A", *node.Content)

	head, err := m.BranchHead(ctx, repo, "main")
	require.NoError(t, err)
	require.NoError(t, m.CreateBranch(ctx, repo, "feature", head))
	assert.Equal(t, []string{"feature", "main"}, m.Branches(repo))

	c := "C"
	require.NoError(t, m.CreateFile(ctx, repo, "feature", "docs/c.md", &c))
	require.NoError(t, m.UpdateFile(ctx, repo, "feature", "docs/a.md", &c, BlobSHA("A")))
	require.NoError(t, m.DeleteFile(ctx, repo, "feature", "README", BlobSHA("R")))

	assert.Equal(t, map[string]string{"docs/a.md": "C", "docs/b.md": "B", "docs/c.md": "C"}, m.Files(repo, "feature"))
	assert.Len(t, m.Files(repo, "main"), 3, "base branch should be untouched")

	url, err := m.CreatePullRequest(ctx, repo, remote.PullRequest{Title: "t", Head: "feature", Base: "main"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/o/r/pull/1", url)
	require.Len(t, m.PullRequests(repo), 1)
}

func TestMemoryProviderErrors(t *testing.T) {
	ctx := context.Background()
	repo := remote.RepoRef{Owner: "o", Name: "r"}
	m := NewMemoryProvider()
	m.AddFile(repo, "main", "a", "A")

	_, err := m.ListTree(ctx, remote.RepoRef{Owner: "x", Name: "y"}, "main", "")
	assert.True(t, remote.IsKind(err, remote.KindNotFound), "unknown repo should be not found")

	c := "new"
	err = m.CreateFile(ctx, repo, "main", "a", &c)
	assert.True(t, remote.IsKind(err, remote.KindConflict), "existing file should conflict")

	err = m.UpdateFile(ctx, repo, "main", "a", &c, "stale")
	assert.True(t, remote.IsKind(err, remote.KindConflict), "stale revision should conflict")

	err = m.DeleteFile(ctx, repo, "main", "missing", "x")
	assert.True(t, remote.IsKind(err, remote.KindNotFound), "missing file should be not found")

	err = m.CreateBranch(ctx, repo, "main", "whatever")
	assert.True(t, remote.IsKind(err, remote.KindConflict), "existing branch should conflict")

	err = m.CreateBranch(ctx, repo, "other", "no-such-commit")
	assert.True(t, remote.IsKind(err, remote.KindNotFound), "unknown commit should be not found")
}
