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

package log

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/syncy/pkg/tree"
)

// 📊 PlanRow is one destination line of a plan table
type PlanRow struct {
	Destination string
	Base        string
	Summary     tree.Summary
}

// 📊 ResultRow is one destination line of a sync result table
type ResultRow struct {
	Destination    string
	Branch         string
	PullRequestURL string
	Summary        tree.Summary
}

// 📢 Report renders end-of-run tables and validation feedback for humans
type Report struct {
	out io.Writer
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewReport creates a report writing to out
func NewReport(ctx context.Context, out io.Writer) *Report {
	return &Report{
		out: out,
		log: *zerolog.Ctx(ctx),
	}
}

// 📊 Plan renders the pending changes per destination
func (r *Report) Plan(rows []PlanRow) error {
	data := pterm.TableData{{"Destination", "Base", "Changes"}}
	total := 0
	for _, row := range rows {
		data = append(data, []string{row.Destination, row.Base, row.Summary.String()})
		total += row.Summary.Total()
	}

	if err := r.table(data); err != nil {
		return err
	}

	r.log.Info().Int("destinations", len(rows)).Int("events", total).Msg("plan rendered")
	if total == 0 {
		r.write(pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Sprintln("no changes"))
	}
	return nil
}

// 📊 Events renders every event planned for one destination
func (r *Report) Events(destination string, events []tree.Event) error {
	if len(events) == 0 {
		return nil
	}
	r.write(pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Sprintln(destination))
	data := pterm.TableData{{"Action", "Path", "Revision"}}
	for _, ev := range events {
		data = append(data, []string{ev.Kind.String(), ev.Path, ev.Revision})
	}
	return r.table(data)
}

// 📊 Results renders the branches and pull requests a sync produced
func (r *Report) Results(rows []ResultRow) error {
	data := pterm.TableData{{"Destination", "Branch", "Pull Request", "Changes"}}
	for _, row := range rows {
		branch, url := row.Branch, row.PullRequestURL
		if branch == "" {
			branch, url = "-", "skipped (no changes)"
		}
		data = append(data, []string{row.Destination, branch, url, row.Summary.String()})
	}
	return r.table(data)
}

// 🔍 Validation logs validation results
func (r *Report) Validation(valid bool, description string, err error) {
	if valid {
		r.write(pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Sprintln(description))
		r.log.Info().Msg(description)
		return
	}
	if err != nil {
		r.write(pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Sprintln(description))
		r.write(pterm.Error.Sprintln(err))
		r.log.Error().Err(err).Msg(description)
		return
	}
	r.write(pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Sprintln(description))
	r.log.Warn().Msg(description)
}

func (r *Report) table(data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	r.write(s + "\n")
	return nil
}

func (r *Report) write(s string) {
	fmt.Fprint(r.out, s)
}
