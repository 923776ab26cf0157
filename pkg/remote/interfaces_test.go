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

package remote_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/testutils"
	"github.com/walteh/syncy/pkg/tree"
)

func strPtr(s string) *string { return &s }

func TestApplyEvent(t *testing.T) {
	ctx := context.Background()
	repo := remote.RepoRef{Owner: "o", Name: "r"}

	t.Run("create", func(t *testing.T) {
		p := testutils.NewMockProvider(t)
		content := strPtr("hello")
		p.On("CreateFile", ctx, repo, "b", "a.txt", content).Return(nil).Once()

		require.NoError(t, remote.ApplyEvent(ctx, p, repo, "b", tree.Create("a.txt", content)))
	})

	t.Run("update", func(t *testing.T) {
		p := testutils.NewMockProvider(t)
		content := strPtr("hello")
		p.On("UpdateFile", ctx, repo, "b", "a.txt", content, "sha1").Return(nil).Once()

		require.NoError(t, remote.ApplyEvent(ctx, p, repo, "b", tree.Update("a.txt", content, "sha1")))
	})

	t.Run("delete", func(t *testing.T) {
		p := testutils.NewMockProvider(t)
		p.On("DeleteFile", ctx, repo, "b", "a.txt", "sha1").Return(errors.New("boom")).Once()

		err := remote.ApplyEvent(ctx, p, repo, "b", tree.Delete("a.txt", "sha1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unknown_kind", func(t *testing.T) {
		p := testutils.NewMockProvider(t)

		err := remote.ApplyEvent(ctx, p, repo, "b", tree.Event{Path: "a.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event kind")
	})
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()
	mem := testutils.NewMemoryProvider()

	remote.RegisterProvider("memory-test", func(ctx context.Context, opts remote.Options) (remote.Provider, error) {
		return mem, nil
	})

	got, err := remote.NewProvider(ctx, "memory-test", remote.Options{})
	require.NoError(t, err)
	assert.Same(t, mem, got)

	_, err = remote.NewProvider(ctx, "gitlab-nope", remote.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider gitlab-nope not found")
	assert.Contains(t, err.Error(), "memory-test")
}

func TestProviderError(t *testing.T) {
	inner := errors.New("404 Not Found")
	err := errors.Errorf("listing source: %w", &remote.ProviderError{
		Op:   "list tree",
		Kind: remote.KindNotFound,
		Err:  inner,
	})

	assert.Equal(t, "listing source: list tree: not found: 404 Not Found", err.Error())
	assert.True(t, remote.IsKind(err, remote.KindNotFound))
	assert.False(t, remote.IsKind(err, remote.KindConflict))
	assert.False(t, remote.IsRetryable(err))
	assert.True(t, errors.Is(err, inner))

	limited := &remote.ProviderError{Op: "get branch head", Kind: remote.KindRateLimited, Retryable: true, Err: inner}
	assert.True(t, remote.IsRetryable(limited))
	assert.False(t, remote.IsKind(inner, remote.KindNotFound))
}

func TestRepoRefString(t *testing.T) {
	assert.Equal(t, "walteh/syncy", remote.RepoRef{Owner: "walteh", Name: "syncy"}.String())
}
