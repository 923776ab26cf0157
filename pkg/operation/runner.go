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
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes one task per destination
type Runner struct {
	concurrency int
}

// 🏗️ NewRunner creates a new runner. A concurrency of 1 or less runs tasks in order.
func NewRunner(concurrency int) *Runner {
	return &Runner{concurrency: concurrency}
}

// 🏃 Run calls task for every index in [0, n)
func (r *Runner) Run(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	if r.concurrency <= 1 {
		return r.runSync(ctx, n, task)
	}
	return r.runAsync(ctx, n, task)
}

// 🔄 runSync stops at the first failing task
func (r *Runner) runSync(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := task(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync runs every task and joins their errors; one failure does not cancel the rest
func (r *Runner) runAsync(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	zerolog.Ctx(ctx).Debug().Int("tasks", n).Int("concurrency", r.concurrency).Msg("running tasks concurrently")

	p := pool.New().WithMaxGoroutines(r.concurrency).WithErrors().WithContext(ctx)
	for i := 0; i < n; i++ {
		p.Go(func(ctx context.Context) error {
			return task(ctx, i)
		})
	}
	return p.Wait()
}
