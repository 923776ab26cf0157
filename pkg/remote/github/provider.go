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

// Package github implements remote.Provider on top of the GitHub REST API.
package github

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/tree"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchLimit bounds concurrent blob downloads during ListTree
const DefaultFetchLimit = 8

var _ remote.Provider = (*Provider)(nil)

func init() {
	remote.RegisterProvider("github", func(ctx context.Context, opts remote.Options) (remote.Provider, error) {
		return NewFromOptions(ctx, opts)
	})
}

// Provider implements the remote.Provider interface for GitHub
type Provider struct {
	client     GitHubClient
	fetchLimit int
}

// NewProvider creates a new GitHub provider. An empty token falls back to GITHUB_TOKEN.
func NewProvider(token string) *Provider {
	p, _ := newProvider(token, "")
	return p
}

// NewFromOptions creates a provider honouring a custom API base URL
func NewFromOptions(ctx context.Context, opts remote.Options) (*Provider, error) {
	zerolog.Ctx(ctx).Debug().Str("base_url", opts.BaseURL).Bool("token", opts.Token != "").Msg("creating github provider")
	return newProvider(opts.Token, opts.BaseURL)
}

// NewProviderWithClient creates a provider around an existing client
func NewProviderWithClient(client GitHubClient) *Provider {
	return &Provider{client: client, fetchLimit: DefaultFetchLimit}
}

func newProvider(token, baseURL string) (*Provider, error) {
	client := github.NewClient(nil)
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Errorf("parsing base url %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return NewProviderWithClient(&githubClientWrapper{client: client}), nil
}

// WithFetchLimit sets how many blobs ListTree downloads at once
func (p *Provider) WithFetchLimit(n int) *Provider {
	if n > 0 {
		p.fetchLimit = n
	}
	return p
}

// ListTree implements remote.Provider using the recursive git trees API
func (p *Provider) ListTree(ctx context.Context, repo remote.RepoRef, ref, path string) (*tree.Tree, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("repo", repo.String()).Str("ref", ref).Str("path", path).Msg("listing tree")

	op := "list tree " + repo.String() + "@" + ref
	gt, resp, err := p.client.GetTree(ctx, repo.Owner, repo.Name, ref, true)
	if err != nil {
		return nil, classify(ctx, op, resp, err)
	}
	// A partial listing would turn every missing entry into a delete.
	if gt.GetTruncated() {
		logger.Warn().Str("repo", repo.String()).Str("ref", ref).Msg("tree listing was truncated by GitHub")
		return nil, &remote.ProviderError{
			Op:   op,
			Kind: remote.KindUnavailable,
			Err:  errors.Errorf("listing was truncated after %d entries", len(gt.Entries)),
		}
	}

	prefix := tree.Normalize(path)
	if prefix != "" {
		prefix += "/"
	}

	var entries []*github.TreeEntry
	for _, entry := range gt.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if !strings.HasPrefix(entry.GetPath(), prefix) {
			continue
		}
		entries = append(entries, entry)
	}

	contents := make([]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fetchLimit)
	for i, entry := range entries {
		g.Go(func() error {
			raw, resp, err := p.client.GetBlobRaw(gctx, repo.Owner, repo.Name, entry.GetSHA())
			if err != nil {
				return classify(gctx, "get blob "+entry.GetPath(), resp, err)
			}
			contents[i] = string(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := tree.NewBuilder(len(entries))
	for i, entry := range entries {
		content := contents[i]
		node := tree.Node{
			Path:      strings.TrimPrefix(entry.GetPath(), prefix),
			Content:   &content,
			RemoteRef: entry.GetURL(),
			Revision:  entry.GetSHA(),
		}
		if err := b.Add(node); err != nil {
			return nil, err
		}
	}

	logger.Debug().Str("repo", repo.String()).Int("files", len(entries)).Msg("listed tree")
	return b.Tree(), nil
}

// BranchHead implements remote.Provider
func (p *Provider) BranchHead(ctx context.Context, repo remote.RepoRef, branch string) (string, error) {
	ref, resp, err := p.client.GetRef(ctx, repo.Owner, repo.Name, "refs/heads/"+branch)
	if err != nil {
		return "", classify(ctx, "get branch "+branch, resp, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateBranch implements remote.Provider
func (p *Provider) CreateBranch(ctx context.Context, repo remote.RepoRef, branchName, baseSHA string) error {
	zerolog.Ctx(ctx).Debug().Str("repo", repo.String()).Str("branch", branchName).Str("base", baseSHA).Msg("creating branch")

	_, resp, err := p.client.CreateRef(ctx, repo.Owner, repo.Name, &github.Reference{
		Ref:    github.String("refs/heads/" + branchName),
		Object: &github.GitObject{SHA: github.String(baseSHA)},
	})
	if err != nil {
		return classify(ctx, "create branch "+branchName, resp, err)
	}
	return nil
}

// CreateFile implements remote.Provider
func (p *Provider) CreateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string) error {
	_, resp, err := p.client.CreateFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(path),
		Content: contentBytes(content),
		Branch:  github.String(branch),
	})
	if err != nil {
		return classify(ctx, "create file "+path, resp, err)
	}
	return nil
}

// UpdateFile implements remote.Provider
func (p *Provider) UpdateFile(ctx context.Context, repo remote.RepoRef, branch, path string, content *string, revision string) error {
	_, resp, err := p.client.UpdateFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(path),
		Content: contentBytes(content),
		SHA:     github.String(revision),
		Branch:  github.String(branch),
	})
	if err != nil {
		return classify(ctx, "update file "+path, resp, err)
	}
	return nil
}

// DeleteFile implements remote.Provider
func (p *Provider) DeleteFile(ctx context.Context, repo remote.RepoRef, branch, path, revision string) error {
	_, resp, err := p.client.DeleteFile(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(path),
		SHA:     github.String(revision),
		Branch:  github.String(branch),
	})
	if err != nil {
		return classify(ctx, "delete file "+path, resp, err)
	}
	return nil
}

// CreatePullRequest implements remote.Provider
func (p *Provider) CreatePullRequest(ctx context.Context, repo remote.RepoRef, pr remote.PullRequest) (string, error) {
	created, resp, err := p.client.CreatePullRequest(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
		Body:  github.String(pr.Body),
	})
	if err != nil {
		return "", classify(ctx, "create pull request", resp, err)
	}
	return created.GetHTMLURL(), nil
}

func contentBytes(content *string) []byte {
	if content == nil {
		return []byte{}
	}
	return []byte(*content)
}
