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

package workdir

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	globPrefix   = "glob("
	argSeparator = ", "
	quoteChar    = '"'
)

func quote(s string) string {
	return string(quoteChar) + s + string(quoteChar)
}

// MalformedExpressionError reports a value that starts with glob( but does
// not follow the glob grammar or carries an invalid pattern.
type MalformedExpressionError struct {
	Expression string
	Reason     string
}

func (e *MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed workdir expression %q: %s", e.Expression, e.Reason)
}

// Parse compiles a configuration value into an Expression. Anything not
// starting with glob( is a literal Path, including the empty string.
func Parse(raw string) (Expression, error) {
	if !strings.HasPrefix(raw, globPrefix) {
		return Path(raw), nil
	}

	args, reason := splitArgs(raw[len(globPrefix):])
	if reason != "" {
		return nil, &MalformedExpressionError{Expression: raw, Reason: reason}
	}

	for _, p := range args {
		if !doublestar.ValidatePattern(p) {
			return nil, &MalformedExpressionError{Expression: raw, Reason: fmt.Sprintf("invalid glob pattern %q", p)}
		}
	}

	if len(args) == 1 {
		return Include{Pattern: args[0]}, nil
	}
	return IncludeExclude{Include: args[0], Exclude: args[1]}, nil
}

// MustParse is Parse for expressions known to be valid, such as test
// fixtures. It panics on error.
func MustParse(raw string) Expression {
	expr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return expr
}

// splitArgs reads one or two quoted patterns followed by the closing paren.
// Commas inside quotes belong to the pattern. A non-empty reason means the
// input is malformed.
func splitArgs(rest string) ([]string, string) {
	var args []string
	for {
		pattern, tail, reason := readQuoted(rest)
		if reason != "" {
			return nil, reason
		}
		args = append(args, pattern)

		switch {
		case tail == ")":
			return args, ""
		case len(args) == 1 && strings.HasPrefix(tail, argSeparator):
			rest = tail[len(argSeparator):]
		case len(args) == 1:
			return nil, fmt.Sprintf(`expected ")" or %q after include pattern`, argSeparator)
		default:
			return nil, `expected ")" after exclude pattern`
		}
	}
}

func readQuoted(s string) (string, string, string) {
	if s == "" || s[0] != quoteChar {
		return "", "", "expected opening quote"
	}
	end := strings.IndexByte(s[1:], quoteChar)
	if end < 0 {
		return "", "", "unterminated quoted pattern"
	}
	return s[1 : 1+end], s[2+end:], ""
}
