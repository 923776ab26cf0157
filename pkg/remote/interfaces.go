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

package remote

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/syncy/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// Factory builds a Provider from connection options
type Factory func(ctx context.Context, opts Options) (Provider, error)

// Options configure a Provider at construction time
type Options struct {
	// Token authenticates API calls. Empty means the provider's own fallback.
	Token string
	// BaseURL overrides the API endpoint, e.g. for an enterprise host
	BaseURL string
}

var registry = map[string]Factory{}

// RegisterProvider makes a provider available under name
func RegisterProvider(name string, factory Factory) {
	registry[name] = factory
}

// NewProvider builds the provider registered under name
func NewProvider(ctx context.Context, name string, opts Options) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("provider %s not found, options: %s", name, strings.Join(options, ", "))
	}
	return factory(ctx, opts)
}

// RepoRef names a hosted repository
type RepoRef struct {
	Owner string
	Name  string
}

// String returns owner/name
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// PullRequest describes a pull request to open
type PullRequest struct {
	Title string
	Body  string
	Head  string // branch holding the changes
	Base  string // branch the changes merge into
}

// Provider is the primary interface for interacting with remote repository hosts (e.g. GitHub)
type Provider interface {
	// ListTree returns every file under path at ref, keyed relative to path.
	// Revisions are populated for every node.
	ListTree(ctx context.Context, repo RepoRef, ref, path string) (*tree.Tree, error)
	// BranchHead returns the commit the branch points at
	BranchHead(ctx context.Context, repo RepoRef, branch string) (string, error)
	// CreateBranch creates branchName pointing at baseSHA
	CreateBranch(ctx context.Context, repo RepoRef, branchName, baseSHA string) error
	// CreateFile adds a new file on branch
	CreateFile(ctx context.Context, repo RepoRef, branch, path string, content *string) error
	// UpdateFile overwrites the file at revision on branch
	UpdateFile(ctx context.Context, repo RepoRef, branch, path string, content *string, revision string) error
	// DeleteFile removes the file at revision from branch
	DeleteFile(ctx context.Context, repo RepoRef, branch, path, revision string) error
	// CreatePullRequest opens a pull request and returns its web URL
	CreatePullRequest(ctx context.Context, repo RepoRef, pr PullRequest) (string, error)
}

// ApplyEvent performs the provider call matching one event on branch
func ApplyEvent(ctx context.Context, p Provider, repo RepoRef, branch string, ev tree.Event) error {
	switch ev.Kind {
	case tree.EventCreate:
		return p.CreateFile(ctx, repo, branch, ev.Path, ev.Content)
	case tree.EventUpdate:
		return p.UpdateFile(ctx, repo, branch, ev.Path, ev.Content, ev.Revision)
	case tree.EventDelete:
		return p.DeleteFile(ctx, repo, branch, ev.Path, ev.Revision)
	default:
		return errors.Errorf("unknown event kind %d for %s", ev.Kind, ev.Path)
	}
}
