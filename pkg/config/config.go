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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/syncy/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRef is used for the source git_ref and destination base when unset
	DefaultRef = "main"

	// SupportedVersions is the constraint the schema version must satisfy
	SupportedVersions = ">= 0.0.1, < 1.0.0"

	// bareName is the config file name that is sniffed for its format
	bareName = ".syncy"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 Source is the repository files are mirrored from
type Source struct {
	Owner  string `json:"owner" yaml:"owner"`
	Name   string `json:"name" yaml:"name"`
	GitRef string `json:"git_ref,omitempty" yaml:"git_ref,omitempty"`
}

// FullName returns owner/name
func (s Source) FullName() string {
	return s.Owner + "/" + s.Name
}

// 🎯 Destination is a repository receiving the mirrored files
type Destination struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
	Base  string `json:"base,omitempty" yaml:"base,omitempty"` // Branch the sync branch starts from and merges into
}

// FullName returns owner/name
func (d Destination) FullName() string {
	return d.Owner + "/" + d.Name
}

// 📝 PullRequest overrides the generated pull request text
type PullRequest struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Version          string                 `json:"version" yaml:"version"`
	Source           Source                 `json:"source" yaml:"source"`
	Destinations     []Destination          `json:"destinations" yaml:"destinations"`
	Token            string                 `json:"token,omitempty" yaml:"token,omitempty"`
	OriginFiles      string                 `json:"origin_files,omitempty" yaml:"origin_files,omitempty"`
	DestinationFiles string                 `json:"destination_files,omitempty" yaml:"destination_files,omitempty"`
	Transformations  []transform.Descriptor `json:"transformations,omitempty" yaml:"transformations,omitempty"`
	PullRequest      *PullRequest           `json:"pull_request,omitempty" yaml:"pull_request,omitempty"`
}

// 🎯 Load loads the configuration from a file on fsys
func Load(ctx context.Context, fsys afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadFile loads the configuration from the OS filesystem
func LoadFile(ctx context.Context, path string) (*Config, error) {
	return Load(ctx, afero.NewOsFs(), path)
}

func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	if p := GetParser(path); p != nil {
		cfg, err := p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
		return cfg, nil
	}

	// A bare .syncy file may hold YAML or HCL
	if filepath.Base(path) != bareName && filepath.Ext(path) != bareName {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, yerr := (&YAMLParser{}).Parse(ctx, data)
	if yerr == nil {
		return cfg, nil
	}
	cfg, herr := (&HCLParser{}).Parse(ctx, data)
	if herr == nil {
		return cfg, nil
	}
	zerolog.Ctx(ctx).Debug().AnErr("yaml", yerr).AnErr("hcl", herr).Msg("bare config is neither yaml nor hcl")
	return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", path, herr)
}

// 🔍 Validate checks required fields and fills in defaults
func (cfg *Config) Validate() error {
	if err := validateVersion(cfg.Version); err != nil {
		return &ConfigError{Field: "version", Err: err}
	}

	if cfg.Source.Owner == "" {
		return &ConfigError{Field: "source.owner", Err: errors.New("is required")}
	}
	if cfg.Source.Name == "" {
		return &ConfigError{Field: "source.name", Err: errors.New("is required")}
	}
	if cfg.Source.GitRef == "" {
		cfg.Source.GitRef = DefaultRef
	}

	if len(cfg.Destinations) == 0 {
		return &ConfigError{Field: "destinations", Err: errors.New("at least one destination is required")}
	}
	seen := make(map[string]int, len(cfg.Destinations))
	for i := range cfg.Destinations {
		d := &cfg.Destinations[i]
		if d.Owner == "" {
			return &ConfigError{Field: fmt.Sprintf("destinations[%d].owner", i), Err: errors.New("is required")}
		}
		if d.Name == "" {
			return &ConfigError{Field: fmt.Sprintf("destinations[%d].name", i), Err: errors.New("is required")}
		}
		if prev, ok := seen[d.FullName()]; ok {
			return &ConfigError{Field: fmt.Sprintf("destinations[%d]", i), Err: errors.Errorf("duplicates destinations[%d] (%s)", prev, d.FullName())}
		}
		seen[d.FullName()] = i
		if d.Base == "" {
			d.Base = DefaultRef
		}
	}

	cfg.Token = strings.TrimSpace(cfg.Token)

	return nil
}

func validateVersion(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return errors.Errorf("parsing %q: %w", raw, err)
	}
	c, err := version.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.Errorf("parsing constraint: %w", err)
	}
	if !c.Check(v) {
		return errors.Errorf("version %s is not supported (want %s)", v, SupportedVersions)
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Destinations))
	for _, d := range cfg.Destinations {
		names = append(names, d.FullName())
	}
	ref := cfg.Source.GitRef
	if ref == "" {
		ref = DefaultRef
	}
	return fmt.Sprintf("%s@%s -> [%s]", cfg.Source.FullName(), ref, strings.Join(names, ", "))
}
