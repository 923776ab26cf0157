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

// Package workdir parses workdir expressions and uses them to select the
// entries of a tree that take part in a sync.
//
// Two forms exist:
//
//	some/path                  a literal path; selects the whole tree
//	glob("inc")                entries matching inc
//	glob("inc", "exc")         entries matching inc and not exc
//
// Patterns use doublestar syntax: "*" stays inside one path segment, "**"
// crosses segments.
package workdir

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Expression selects tree entries. It is one of Path, Include or
// IncludeExclude.
type Expression interface {
	// String re-displays the expression in its configuration form.
	String() string
	expression()
}

// GlobFilter is an Expression backed by glob patterns.
type GlobFilter interface {
	Expression
	// Match reports whether a tree key is selected.
	Match(path string) bool
}

// Path is a literal selector. Filtering with it is a no-op.
type Path string

func (p Path) String() string { return string(p) }
func (Path) expression()       {}

// Include keeps entries matching Pattern.
type Include struct {
	Pattern string
}

func (g Include) String() string { return globPrefix + quote(g.Pattern) + ")" }
func (Include) expression()       {}

// Match implements GlobFilter.
func (g Include) Match(path string) bool {
	return doublestar.MatchUnvalidated(g.Pattern, path)
}

// IncludeExclude keeps entries matching Include unless they also match
// Exclude. Exclude is only consulted once Include matched.
type IncludeExclude struct {
	Include string
	Exclude string
}

func (g IncludeExclude) String() string {
	return globPrefix + quote(g.Include) + argSeparator + quote(g.Exclude) + ")"
}
func (IncludeExclude) expression() {}

// Match implements GlobFilter.
func (g IncludeExclude) Match(path string) bool {
	if !doublestar.MatchUnvalidated(g.Include, path) {
		return false
	}
	return !doublestar.MatchUnvalidated(g.Exclude, path)
}
