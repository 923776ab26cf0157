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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/syncy/pkg/transform"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
//	version           = "0.0.1"
//	origin_files      = "glob(\"**\")"
//	destination_files = "glob(\"my_folder/**\")"
//
//	source {
//	  owner   = "my_name"
//	  name    = "test1"
//	  git_ref = "main"
//	}
//
//	destination {
//	  owner = "my_name"
//	  name  = "test2"
//	}
//
//	transformation "builtin.move" {
//	  args = { before = "", after = "my_folder" }
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Version          string  `hcl:"version"`
		Token            *string `hcl:"token,optional"`
		OriginFiles      *string `hcl:"origin_files,optional"`
		DestinationFiles *string `hcl:"destination_files,optional"`
		Source           struct {
			Owner  string  `hcl:"owner"`
			Name   string  `hcl:"name"`
			GitRef *string `hcl:"git_ref,optional"`
		} `hcl:"source,block"`
		Destinations []struct {
			Owner string  `hcl:"owner"`
			Name  string  `hcl:"name"`
			Base  *string `hcl:"base,optional"`
		} `hcl:"destination,block"`
		Transformations []struct {
			Fn   string            `hcl:"fn,label"`
			Args map[string]string `hcl:"args"`
		} `hcl:"transformation,block"`
		PullRequest *struct {
			Title *string `hcl:"title,optional"`
			Body  *string `hcl:"body,optional"`
		} `hcl:"pull_request,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Version:          hclCfg.Version,
		Token:            deref(hclCfg.Token),
		OriginFiles:      deref(hclCfg.OriginFiles),
		DestinationFiles: deref(hclCfg.DestinationFiles),
		Source: Source{
			Owner:  hclCfg.Source.Owner,
			Name:   hclCfg.Source.Name,
			GitRef: deref(hclCfg.Source.GitRef),
		},
	}

	for _, d := range hclCfg.Destinations {
		cfg.Destinations = append(cfg.Destinations, Destination{
			Owner: d.Owner,
			Name:  d.Name,
			Base:  deref(d.Base),
		})
	}

	for _, t := range hclCfg.Transformations {
		args := make(map[string]any, len(t.Args))
		for k, v := range t.Args {
			args[k] = v
		}
		cfg.Transformations = append(cfg.Transformations, transform.Descriptor{Fn: t.Fn, Args: args})
	}

	if hclCfg.PullRequest != nil {
		cfg.PullRequest = &PullRequest{
			Title: deref(hclCfg.PullRequest.Title),
			Body:  deref(hclCfg.PullRequest.Body),
		}
	}

	return cfg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
