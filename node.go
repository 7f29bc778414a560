// Copyright 2011 Google Inc. All Rights Reserved.
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

package ninja

// TimeStamp is a file modification time, compared as an integer. Resolution
// is whatever the DiskInterface reports; the core only ever compares two
// timestamps for ordering or equality.
type TimeStamp int64

// MtimeState is the tri-state a Node's mtime can be in.
type MtimeState int

const (
	// MtimeUnknown means the file hasn't been examined yet.
	MtimeUnknown MtimeState = iota
	// MtimeMissing means a successful stat determined the file is absent.
	MtimeMissing
	// MtimePresent means the file exists; Timestamp holds its mtime.
	MtimePresent
)

// Node is a file in the dependency graph, identified by a canonical path
// that is unique within its owning State.
type Node struct {
	path string

	state     MtimeState
	timestamp TimeStamp

	dirty bool

	// inEdge is the edge that produces this node, or nil for a source file.
	inEdge *Edge

	// outEdges are the edges that consume this node as an input, in
	// manifest-declaration order.
	outEdges []*Edge
}

// newNode constructs a Node for an already-canonicalized path. Nodes are
// only ever created through State, which owns them.
func newNode(path string) *Node {
	return &Node{path: path, state: MtimeUnknown}
}

// Path returns the node's canonical path.
func (n *Node) Path() string { return n.path }

// Exists reports whether the file was found the last time it was stat'd.
// It is only meaningful once StatusKnown is true.
func (n *Node) Exists() bool { return n.state == MtimePresent }

// StatusKnown reports whether the node has been stat'd (or marked missing)
// since the last ResetState.
func (n *Node) StatusKnown() bool { return n.state != MtimeUnknown }

// Mtime returns the node's timestamp. It is only meaningful when Exists is
// true.
func (n *Node) Mtime() TimeStamp { return n.timestamp }

// Dirty reports the node's dirty flag. Only trustworthy after RecomputeDirty
// has run on its producing edge.
func (n *Node) Dirty() bool { return n.dirty }

// SetDirty sets the node's dirty flag directly; used by DependencyScan.
func (n *Node) SetDirty(dirty bool) { n.dirty = dirty }

// InEdge returns the edge that produces this node, or nil for a source file.
func (n *Node) InEdge() *Edge { return n.inEdge }

// OutEdges returns the edges that use this node as an input, in the order
// they were declared.
func (n *Node) OutEdges() []*Edge { return n.outEdges }

func (n *Node) addOutEdge(e *Edge) { n.outEdges = append(n.outEdges, e) }

// Stat queries disk for the node's path and records the result. It returns
// an error only for a hard disk-interface failure; a missing file is not an
// error.
func (n *Node) Stat(disk DiskInterface) error {
	ts, err := disk.Stat(n.path)
	if err != nil {
		return &StatError{Path: n.path, Err: err}
	}
	n.timestamp = ts
	if ts == 0 {
		n.state = MtimeMissing
	} else {
		n.state = MtimePresent
	}
	return nil
}

// StatIfNecessary stats the node unless its status is already known. It
// returns whether a stat was actually performed, purely for bookkeeping
// (e.g. metrics); callers should check the returned error for failure.
func (n *Node) StatIfNecessary(disk DiskInterface) (statted bool, err error) {
	if n.StatusKnown() {
		return false, nil
	}
	return true, n.Stat(disk)
}

// ResetState returns the node to Unknown/not-dirty, without touching the
// graph structure.
func (n *Node) ResetState() {
	n.state = MtimeUnknown
	n.timestamp = 0
	n.dirty = false
}

// MarkMissing marks the node as already-examined and absent, without
// touching disk. The scan does not call it: inputs spliced in from a depfile
// are stat'd like any other input.
func (n *Node) MarkMissing() {
	n.state = MtimeMissing
	n.timestamp = 0
}
