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

// Package testutils holds remote.Provider doubles shared by package tests.
package testutils

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

var _ remote.Provider = (*MemoryProvider)(nil)

// MemoryProvider is an in-memory remote.Provider. Every branch is a flat
// path to content map and every mutation moves the branch head.
type MemoryProvider struct {
	mu     sync.Mutex
	repos  map[string]*memoryRepo
	commit int
}

type memoryRepo struct {
	branches map[string]*memoryBranch
	pulls    []remote.PullRequest
}

type memoryBranch struct {
	head  string
	files map[string]string
}

// NewMemoryProvider returns an empty provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{repos: map[string]*memoryRepo{}}
}

// BlobSHA is the revision the provider assigns to content
func BlobSHA(content string) string {
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// AddFile seeds a file, creating the repo and branch when needed
func (m *MemoryProvider) AddFile(repo remote.RepoRef, branch, path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.branchLocked(repo, branch)
	b.files[path] = content
	b.head = m.nextCommitLocked()
}

// AddBranch seeds an empty branch
func (m *MemoryProvider) AddBranch(repo remote.RepoRef, branch string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branchLocked(repo, branch)
}

// Files returns a copy of the branch contents, nil when the branch is unknown
func (m *MemoryProvider) Files(repo remote.RepoRef, branch string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.lookupLocked(repo, branch)
	if b == nil {
		return nil
	}
	out := make(map[string]string, len(b.files))
	for k, v := range b.files {
		out[k] = v
	}
	return out
}

// Branches returns the sorted branch names of repo
func (m *MemoryProvider) Branches(repo remote.RepoRef) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.repos[repo.String()]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.branches))
	for name := range r.branches {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PullRequests returns the pull requests opened against repo
func (m *MemoryProvider) PullRequests(repo remote.RepoRef) []remote.PullRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.repos[repo.String()]
	if !ok {
		return nil
	}
	return append([]remote.PullRequest(nil), r.pulls...)
}

// ListTree implements remote.Provider
func (m *MemoryProvider) ListTree(ctx context.Context, repo remote.RepoRef, ref, path string) (*tree.Tree, error) {
	zerolog.Ctx(ctx).Debug().Str("repo", repo.String()).Str("ref", ref).Str("path", path).Msg("listing memory tree")

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.lookupLocked(repo, ref)
	if b == nil {
		return nil, notFound("list tree", repo, ref)
	}

	prefix := tree.Normalize(path)
	if prefix != "" {
		prefix += "/"
	}

	builder := tree.NewBuilder(len(b.files))
	for p, content := range b.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		c := content
		node := tree.Node{
			Path:      strings.TrimPrefix(p, prefix),
			Content:   &c,
			RemoteRef: fmt.Sprintf("memory://%s/%s/%s", repo, ref, p),
			Revision:  BlobSHA(content),
		}
		if err := builder.Add(node); err != nil {
			return nil, err
		}
	}
	return builder.Tree(), nil
}

// BranchHead implements remote.Provider
func (m *MemoryProvider) BranchHead(ctx context.Context, repo remote.RepoRef, branch string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.lookupLocked(repo, branch)
	if b == nil {
		return "", notFound("get branch head", repo, branch)
	}
	return b.head, nil
}

// CreateBranch implements remote.Provider
func (m *MemoryProvider) CreateBranch(ctx context.Context, repo remote.RepoRef, branchName, baseSHA string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.repos[repo.String()]
	if !ok {
		return notFound("create branch", repo, branchName)
	}
	if _, exists := r.branches[branchName]; exists {
		return &remote.ProviderError{Op: "create branch " + branchName, Kind: remote.KindConflict, Err: errors.New("reference already exists")}
	}

	var base *memoryBranch
	for _, b := range r.branches {
		if b.head == baseSHA {
			base = b
			break
		}
	}
	if base == nil {
		return &remote.ProviderError{Op: "create branch " + branchName, Kind: remote.KindNotFound, Err: errors.Errorf("commit %s not found", baseSHA)}
	}

	files := make(map[string]string, len(base.files))
	for k, v := range base.files {
		files[k] = v
	}
	r.branches[branchName] = &memoryBranch{head: base.head, files: files}
	return nil
}

// CreateFile implements remote.Provider
func (m *MemoryProvider) CreateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "create file " + path
	b := m.lookupLocked(repo, branch)
	if b == nil {
		return notFound(op, repo, branch)
	}
	if _, exists := b.files[path]; exists {
		return &remote.ProviderError{Op: op, Kind: remote.KindConflict, Err: errors.New("file already exists")}
	}
	b.files[path] = deref(content)
	b.head = m.nextCommitLocked()
	return nil
}

// UpdateFile implements remote.Provider
func (m *MemoryProvider) UpdateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string, revision string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "update file " + path
	b := m.lookupLocked(repo, branch)
	if b == nil {
		return notFound(op, repo, branch)
	}
	if err := checkRevision(op, b, path, revision); err != nil {
		return err
	}
	b.files[path] = deref(content)
	b.head = m.nextCommitLocked()
	return nil
}

// DeleteFile implements remote.Provider
func (m *MemoryProvider) DeleteFile(ctx context.Context, repo remote.RepoRef, branch, path, revision string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "delete file " + path
	b := m.lookupLocked(repo, branch)
	if b == nil {
		return notFound(op, repo, branch)
	}
	if err := checkRevision(op, b, path, revision); err != nil {
		return err
	}
	delete(b.files, path)
	b.head = m.nextCommitLocked()
	return nil
}

// CreatePullRequest implements remote.Provider
func (m *MemoryProvider) CreatePullRequest(ctx context.Context, repo remote.RepoRef, pr remote.PullRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.repos[repo.String()]
	if !ok {
		return "", notFound("create pull request", repo, pr.Head)
	}
	for _, name := range []string{pr.Head, pr.Base} {
		if _, ok := r.branches[name]; !ok {
			return "", notFound("create pull request", repo, name)
		}
	}
	r.pulls = append(r.pulls, pr)
	return fmt.Sprintf("https://example.test/%s/pull/%d", repo, len(r.pulls)), nil
}

func (m *MemoryProvider) branchLocked(repo remote.RepoRef, branch string) *memoryBranch {
	r, ok := m.repos[repo.String()]
	if !ok {
		r = &memoryRepo{branches: map[string]*memoryBranch{}}
		m.repos[repo.String()] = r
	}
	b, ok := r.branches[branch]
	if !ok {
		b = &memoryBranch{head: m.nextCommitLocked(), files: map[string]string{}}
		r.branches[branch] = b
	}
	return b
}

func (m *MemoryProvider) lookupLocked(repo remote.RepoRef, branch string) *memoryBranch {
	r, ok := m.repos[repo.String()]
	if !ok {
		return nil
	}
	return r.branches[branch]
}

func (m *MemoryProvider) nextCommitLocked() string {
	m.commit++
	return fmt.Sprintf("commit-%04d", m.commit)
}

func checkRevision(op string, b *memoryBranch, path, revision string) error {
	current, ok := b.files[path]
	if !ok {
		return &remote.ProviderError{Op: op, Kind: remote.KindNotFound, Err: errors.New("file not found")}
	}
	if BlobSHA(current) != revision {
		return &remote.ProviderError{Op: op, Kind: remote.KindConflict, Err: errors.Errorf("revision %s does not match", revision)}
	}
	return nil
}

func notFound(op string, repo remote.RepoRef, ref string) error {
	return &remote.ProviderError{Op: op, Kind: remote.KindNotFound, Err: errors.Errorf("%s@%s not found", repo, ref)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
