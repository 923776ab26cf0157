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

package operation

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/config"
	"github.com/walteh/syncy/pkg/remote"
	"github.com/walteh/syncy/pkg/tree"
)

// BranchName is the branch a sync pushes to: syncy/{owner}/{name}/{unix ms}
func BranchName(src config.Source, now time.Time) string {
	return fmt.Sprintf("syncy/%s/%s/%d", src.Owner, src.Name, now.UnixMilli())
}

// DefaultTitle is the pull request title used when none is configured
func DefaultTitle(src config.Source) string {
	return fmt.Sprintf("Update from %s/%s branch: %s", src.Owner, src.Name, src.GitRef)
}

// DefaultBody is the pull request body used when none is configured
func DefaultBody(src config.Source) string {
	link := fmt.Sprintf("https://github.com/%s/%s/%s", src.Owner, src.Name, src.GitRef)
	return DefaultTitle(src) + "\n\nlink to the original repo: " + link
}

// templateData is what pull_request title and body templates can reference
type templateData struct {
	Source      config.Source
	Destination config.Destination
	Branch      string
	Summary     tree.Summary
}

func (o *Operator) pullRequest(d config.Destination, branch string, p DestinationPlan) (remote.PullRequest, error) {
	pr := remote.PullRequest{
		Title: DefaultTitle(o.config.Source),
		Body:  DefaultBody(o.config.Source),
		Head:  branch,
		Base:  d.Base,
	}

	custom := o.config.PullRequest
	if custom == nil {
		return pr, nil
	}

	data := templateData{Source: o.config.Source, Destination: d, Branch: branch, Summary: p.Summary()}
	if custom.Title != "" {
		title, err := render("pull_request.title", custom.Title, data)
		if err != nil {
			return remote.PullRequest{}, err
		}
		pr.Title = title
	}
	if custom.Body != "" {
		body, err := render("pull_request.body", custom.Body, data)
		if err != nil {
			return remote.PullRequest{}, err
		}
		pr.Body = body
	}
	return pr, nil
}

// checkTemplates parses the configured pull request templates so that
// mistakes surface before any remote call
func checkTemplates(custom *config.PullRequest) error {
	if custom == nil {
		return nil
	}
	if _, err := parseTemplate("pull_request.title", custom.Title); err != nil {
		return err
	}
	_, err := parseTemplate("pull_request.body", custom.Body)
	return err
}

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, &config.ConfigError{Field: name, Err: err}
	}
	return tmpl, nil
}

func render(name, text string, data templateData) (string, error) {
	tmpl, err := parseTemplate(name, text)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", errors.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}
