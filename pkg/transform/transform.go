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

// Package transform compiles declarative rewrite rules and applies them to a
// tree: Move rewrites path prefixes, Replace rewrites file content.
package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// Names of the builtin transformation functions.
const (
	FnMove    = "builtin.move"
	FnReplace = "builtin.replace"
)

// Descriptor is the configuration form of a transformation.
type Descriptor struct {
	Fn   string         `json:"fn" yaml:"fn"`
	Args map[string]any `json:"args" yaml:"args"`
}

// Transformation is a compiled rule. It is either a Move or a Replace.
type Transformation interface {
	fmt.Stringer
	transformation()
}

// Move rewrites paths under Before to live under After.
type Move struct {
	Before string
	After  string
}

func (m Move) String() string {
	return fmt.Sprintf("%s(%q -> %q)", FnMove, m.Before, m.After)
}

func (Move) transformation() {}

// Rewrite returns the new path for path and whether Move applies to it. A
// match needs Before followed by a "/" boundary; an empty Before matches
// every path.
func (m Move) Rewrite(path string) (string, bool) {
	suffix := path
	if m.Before != "" {
		var ok bool
		suffix, ok = strings.CutPrefix(path, m.Before+"/")
		if !ok {
			return path, false
		}
	}
	if m.After == "" {
		return suffix, true
	}
	return m.After + "/" + suffix, true
}

// Replace substitutes every match of Before in file content with the
// literal After.
type Replace struct {
	Before *regexp.Regexp
	After  string
}

func (r Replace) String() string {
	return fmt.Sprintf("%s(%q -> %q)", FnReplace, r.Before.String(), r.After)
}

func (Replace) transformation() {}

// ReplaceContent returns the rewritten content and the number of matches.
// Absent content stays absent.
func (r Replace) ReplaceContent(content *string) (*string, int) {
	if content == nil {
		return nil, 0
	}
	matches := r.Before.FindAllStringIndex(*content, -1)
	if len(matches) == 0 {
		return content, 0
	}
	out := r.Before.ReplaceAllLiteralString(*content, r.After)
	return &out, len(matches)
}
