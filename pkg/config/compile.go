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
	"fmt"

	"github.com/walteh/syncy/pkg/transform"
	"github.com/walteh/syncy/pkg/workdir"
)

// ❌ ConfigError names the configuration field that could not be used
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// 🧩 Compiled holds the typed form of the expression and rule fields
type Compiled struct {
	OriginFiles      workdir.Expression
	DestinationFiles workdir.Expression
	Transformations  []transform.Transformation // nil when none are configured
}

// 🔧 Compile parses the workdir expressions and compiles the transformations.
// It runs before any remote call so that configuration mistakes fail fast.
func Compile(cfg *Config) (*Compiled, error) {
	origin, err := workdir.Parse(cfg.OriginFiles)
	if err != nil {
		return nil, &ConfigError{Field: "origin_files", Err: err}
	}

	destination, err := workdir.Parse(cfg.DestinationFiles)
	if err != nil {
		return nil, &ConfigError{Field: "destination_files", Err: err}
	}

	ts, err := transform.Compile(cfg.Transformations)
	if err != nil {
		return nil, &ConfigError{Field: "transformations", Err: err}
	}

	return &Compiled{
		OriginFiles:      origin,
		DestinationFiles: destination,
		Transformations:  ts,
	}, nil
}
