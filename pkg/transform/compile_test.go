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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []Descriptor
		check       func(t *testing.T, got []Transformation)
		wantErr     any
		errContains string
	}{
		{
			name:        "nil_is_absent",
			descriptors: nil,
			check: func(t *testing.T, got []Transformation) {
				assert.Nil(t, got)
			},
		},
		{
			name:        "empty_is_present_but_empty",
			descriptors: []Descriptor{},
			check: func(t *testing.T, got []Transformation) {
				assert.NotNil(t, got)
				assert.Empty(t, got)
			},
		},
		{
			name: "move_and_replace_in_order",
			descriptors: []Descriptor{
				{Fn: FnMove, Args: map[string]any{"before": "", "after": "my_folder/"}},
				{Fn: FnReplace, Args: map[string]any{"before": `foo(\d+)`, "after": "bar$1"}},
				{Fn: FnMove, Args: map[string]any{"before": "src/", "after": ""}},
			},
			check: func(t *testing.T, got []Transformation) {
				require.Len(t, got, 3)
				assert.Equal(t, Move{Before: "", After: "my_folder"}, got[0])

				r, ok := got[1].(Replace)
				require.True(t, ok, "second transformation should be a Replace")
				assert.Equal(t, `foo(\d+)`, r.Before.String())
				assert.Equal(t, "bar$1", r.After)

				assert.Equal(t, Move{Before: "src", After: ""}, got[2])
			},
		},
		{
			name:        "unknown_fn",
			descriptors: []Descriptor{{Fn: "builtin.copy", Args: map[string]any{}}},
			wantErr:     &UnknownTransformationError{},
			errContains: `transformations[0]: unknown transformation "builtin.copy"`,
		},
		{
			name: "missing_before",
			descriptors: []Descriptor{
				{Fn: FnMove, Args: map[string]any{"before": "a", "after": "b"}},
				{Fn: FnMove, Args: map[string]any{"after": "b"}},
			},
			wantErr:     &MissingArgumentError{},
			errContains: "transformations[1].args.before: missing argument",
		},
		{
			name:        "missing_after_replace",
			descriptors: []Descriptor{{Fn: FnReplace, Args: map[string]any{"before": "x"}}},
			wantErr:     &MissingArgumentError{},
			errContains: "transformations[0].args.after",
		},
		{
			name:        "nil_args",
			descriptors: []Descriptor{{Fn: FnMove}},
			wantErr:     &MissingArgumentError{},
			errContains: "args.before",
		},
		{
			name:        "null_value_is_missing",
			descriptors: []Descriptor{{Fn: FnMove, Args: map[string]any{"before": nil, "after": "b"}}},
			wantErr:     &MissingArgumentError{},
			errContains: "args.before",
		},
		{
			name:        "non_string_arg",
			descriptors: []Descriptor{{Fn: FnMove, Args: map[string]any{"before": "a", "after": 12}}},
			wantErr:     &InvalidArgumentError{},
			errContains: "args.after: expected a string, got int",
		},
		{
			name:        "invalid_regex",
			descriptors: []Descriptor{{Fn: FnReplace, Args: map[string]any{"before": "(", "after": "x"}}},
			wantErr:     &InvalidPatternError{},
			errContains: `invalid regular expression "("`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.descriptors)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Contains(t, err.Error(), tt.errContains)
				switch tt.wantErr.(type) {
				case *UnknownTransformationError:
					var target *UnknownTransformationError
					assert.True(t, errors.As(err, &target))
				case *MissingArgumentError:
					var target *MissingArgumentError
					assert.True(t, errors.As(err, &target))
				case *InvalidArgumentError:
					var target *InvalidArgumentError
					assert.True(t, errors.As(err, &target))
				case *InvalidPatternError:
					var target *InvalidPatternError
					assert.True(t, errors.As(err, &target))
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestTransformationString(t *testing.T) {
	got, err := Compile([]Descriptor{
		{Fn: FnMove, Args: map[string]any{"before": "a", "after": "b"}},
		{Fn: FnReplace, Args: map[string]any{"before": "x+", "after": "y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `builtin.move("a" -> "b")`, got[0].String())
	assert.Equal(t, `builtin.replace("x+" -> "y")`, got[1].String())
}
