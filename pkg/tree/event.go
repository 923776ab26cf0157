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

package tree

import "fmt"

// EventKind is the remote mutation an Event asks for.
type EventKind int

const (
	EventCreate EventKind = iota + 1
	EventUpdate
	EventDelete
)

// String returns a string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case EventCreate:
		return "create"
	case EventUpdate:
		return "update"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is one required remote mutation. Build it with Create, Update or
// Delete so the revision invariant holds: Update and Delete carry the
// destination revision, Create never does.
type Event struct {
	Kind     EventKind
	Path     string
	Content  *string // Set for create and update
	Revision string  // Set for update and delete
}

// Create returns an event creating path with content.
func Create(path string, content *string) Event {
	return Event{Kind: EventCreate, Path: path, Content: content}
}

// Update returns an event overwriting path at revision with content.
func Update(path string, content *string, revision string) Event {
	return Event{Kind: EventUpdate, Path: path, Content: content, Revision: revision}
}

// Delete returns an event removing path at revision.
func Delete(path string, revision string) Event {
	return Event{Kind: EventDelete, Path: path, Revision: revision}
}

// ContentString returns the content or the empty string when absent.
func (e Event) ContentString() string {
	if e.Content == nil {
		return ""
	}
	return *e.Content
}

func (e Event) String() string {
	switch e.Kind {
	case EventCreate:
		return fmt.Sprintf("create %s", e.Path)
	case EventUpdate, EventDelete:
		return fmt.Sprintf("%s %s@%s", e.Kind, e.Path, e.Revision)
	default:
		return fmt.Sprintf("unknown %s", e.Path)
	}
}

// Summary counts events per kind.
type Summary struct {
	Creates int
	Updates int
	Deletes int
}

// Total returns the number of events counted.
func (s Summary) Total() int {
	return s.Creates + s.Updates + s.Deletes
}

func (s Summary) String() string {
	return fmt.Sprintf("%d to create, %d to update, %d to delete", s.Creates, s.Updates, s.Deletes)
}

// Summarize counts events by kind.
func Summarize(events []Event) Summary {
	var s Summary
	for _, e := range events {
		switch e.Kind {
		case EventCreate:
			s.Creates++
		case EventUpdate:
			s.Updates++
		case EventDelete:
			s.Deletes++
		}
	}
	return s
}
