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

	"github.com/stretchr/testify/mock"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/tree"
)

var _ remote.Provider = (*MockProvider)(nil)

// MockProvider is a testify mock of remote.Provider
type MockProvider struct {
	mock.Mock
}

// NewMockProvider returns a mock whose expectations are asserted on cleanup
func NewMockProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProvider {
	m := &MockProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) ListTree(ctx context.Context, repo remote.RepoRef, ref, path string) (*tree.Tree, error) {
	args := m.Called(ctx, repo, ref, path)
	t, _ := args.Get(0).(*tree.Tree)
	return t, args.Error(1)
}

func (m *MockProvider) BranchHead(ctx context.Context, repo remote.RepoRef, branch string) (string, error) {
	args := m.Called(ctx, repo, branch)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreateBranch(ctx context.Context, repo remote.RepoRef, branchName, baseSHA string) error {
	args := m.Called(ctx, repo, branchName, baseSHA)
	return args.Error(0)
}

func (m *MockProvider) CreateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string) error {
	args := m.Called(ctx, repo, branch, path, content)
	return args.Error(0)
}

func (m *MockProvider) UpdateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string, revision string) error {
	args := m.Called(ctx, repo, branch, path, content, revision)
	return args.Error(0)
}

func (m *MockProvider) DeleteFile(ctx context.Context, repo remote.RepoRef, branch, path, revision string) error {
	args := m.Called(ctx, repo, branch, path, revision)
	return args.Error(0)
}

func (m *MockProvider) CreatePullRequest(ctx context.Context, repo remote.RepoRef, pr remote.PullRequest) (string, error) {
	args := m.Called(ctx, repo, pr)
	return args.String(0), args.Error(1)
}
