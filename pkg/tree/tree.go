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

// Package tree holds the flat, path-keyed snapshot of a repository's files
// and the differ that turns two snapshots into change events.
package tree

import (
	"iter"
	"slices"
	"strings"
)

// Node is one file of a repository snapshot.
type Node struct {
	Path      string  // Relative path, "/"-separated, no leading slash
	Content   *string // Decoded file body, nil when unknown
	RemoteRef string  // Provider-side reference to the file (blob URL)
	Revision  string  // Opaque destination-side concurrency token
}

// WithPath returns a copy of the node moved to path.
func (n Node) WithPath(path string) Node {
	n.Path = path
	return n
}

// WithContent returns a copy of the node with its content replaced.
func (n Node) WithContent(content *string) Node {
	n.Content = content
	return n
}

// Tree is an immutable snapshot mapping normalized relative paths to nodes.
// The zero value is an empty tree.
type Tree struct {
	nodes map[string]Node
}

// New builds a tree from nodes keyed by their Path.
func New(nodes ...Node) (*Tree, error) {
	b := NewBuilder(len(nodes))
	for _, n := range nodes {
		if err := b.Add(n); err != nil {
			return nil, err
		}
	}
	return b.Tree(), nil
}

// Normalize trims surrounding slashes and collapses "./" so that keys from
// different providers compare equal.
func Normalize(path string) string {
	path = strings.TrimPrefix(path, "./")
	return strings.Trim(path, "/")
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Get returns the node stored at path.
func (t *Tree) Get(path string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	n, ok := t.nodes[path]
	return n, ok
}

// Has reports whether path is a key of the tree.
func (t *Tree) Has(path string) bool {
	_, ok := t.Get(path)
	return ok
}

// Paths returns every key in ascending order.
func (t *Tree) Paths() []string {
	if t == nil {
		return nil
	}
	paths := make([]string, 0, len(t.nodes))
	for p := range t.nodes {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// All iterates the tree in ascending key order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, p := range t.Paths() {
			if !yield(p, t.nodes[p]) {
				return
			}
		}
	}
}

// Builder accumulates nodes for a new Tree and rejects duplicate keys.
type Builder struct {
	nodes   map[string]Node
	sources map[string]string
}

// NewBuilder returns a builder sized for n entries.
func NewBuilder(n int) *Builder {
	return &Builder{
		nodes:   make(map[string]Node, n),
		sources: make(map[string]string, n),
	}
}

// Add inserts n under its own Path.
func (b *Builder) Add(n Node) error {
	return b.AddFrom(n.Path, n)
}

// AddFrom inserts n under its Path, remembering source as the key it was
// derived from so that collisions can name both origins.
func (b *Builder) AddFrom(source string, n Node) error {
	if prev, ok := b.sources[n.Path]; ok {
		return &DuplicatePathError{Path: n.Path, First: prev, Second: source}
	}
	b.nodes[n.Path] = n
	b.sources[n.Path] = source
	return nil
}

// Tree freezes the builder. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	b.sources = nil
	return t
}
