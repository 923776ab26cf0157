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

package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// UnknownTransformationError reports a descriptor whose fn is not a builtin.
type UnknownTransformationError struct {
	Index int
	Fn    string
}

func (e *UnknownTransformationError) Error() string {
	return fmt.Sprintf("transformations[%d]: unknown transformation %q (expected %s or %s)", e.Index, e.Fn, FnMove, FnReplace)
}

// MissingArgumentError reports a required argument that is absent.
type MissingArgumentError struct {
	Index int
	Fn    string
	Name  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("transformations[%d].args.%s: missing argument for %s", e.Index, e.Name, e.Fn)
}

// InvalidArgumentError reports an argument that is present but not a string.
type InvalidArgumentError struct {
	Index int
	Name  string
	Value any
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("transformations[%d].args.%s: expected a string, got %T", e.Index, e.Name, e.Value)
}

// InvalidPatternError reports a replace pattern that is not a valid regular
// expression.
type InvalidPatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("transformations[%d].args.before: invalid regular expression %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Compile turns descriptors into transformations, preserving order. A nil
// slice compiles to nil, meaning no transformations are configured.
func Compile(descriptors []Descriptor) ([]Transformation, error) {
	if descriptors == nil {
		return nil, nil
	}

	out := make([]Transformation, 0, len(descriptors))
	for i, d := range descriptors {
		t, err := compileOne(i, d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func compileOne(i int, d Descriptor) (Transformation, error) {
	switch d.Fn {
	case FnMove:
		before, err := stringArg(i, d, "before")
		if err != nil {
			return nil, err
		}
		after, err := stringArg(i, d, "after")
		if err != nil {
			return nil, err
		}
		return Move{
			Before: strings.TrimSuffix(before, "/"),
			After:  strings.TrimSuffix(after, "/"),
		}, nil

	case FnReplace:
		before, err := stringArg(i, d, "before")
		if err != nil {
			return nil, err
		}
		after, err := stringArg(i, d, "after")
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(before)
		if err != nil {
			return nil, &InvalidPatternError{Index: i, Pattern: before, Err: err}
		}
		return Replace{Before: re, After: after}, nil

	default:
		return nil, &UnknownTransformationError{Index: i, Fn: d.Fn}
	}
}

func stringArg(i int, d Descriptor, name string) (string, error) {
	v, ok := d.Args[name]
	if !ok || v == nil {
		return "", &MissingArgumentError{Index: i, Fn: d.Fn, Name: name}
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidArgumentError{Index: i, Name: name, Value: v}
	}
	return s, nil
}
