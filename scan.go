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

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DependencyScan is the orchestrator described in spec.md §4.6: it recomputes
// each output's dirty flag by recursively walking inputs, loading depfiles,
// consulting a build log for command-line changes, and caches the verdict on
// each edge's OutputsReady flag.
type DependencyScan struct {
	state    *State
	disk     DiskInterface
	buildLog BuildLog

	explain *explainer
}

// NewDependencyScan creates a scan bound to state, disk, and an optional
// build log (nil is valid: the command-change and never-built checks in
// recomputeOutputDirty are then skipped). logger may be nil to discard
// trace output.
func NewDependencyScan(state *State, disk DiskInterface, buildLog BuildLog, logger *log.Logger) *DependencyScan {
	return &DependencyScan{
		state:    state,
		disk:     disk,
		buildLog: buildLog,
		explain:  newExplainer(logger),
	}
}

// cycleError reports a manifest-level dependency cycle discovered while
// walking edges. The core does not attempt to break cycles; a well-formed
// manifest is not supposed to have one, and the parser is expected to have
// already rejected phony self-cycles per spec.md §5.
type cycleError struct {
	path string
}

func (e *cycleError) Error() string { return "dependency cycle involving " + e.path }

// RecomputeDirty computes, for every output of edge, whether it is dirty,
// and sets edge.OutputsReady accordingly (spec.md §4.6). It returns an
// error only on a hard failure (stat error, depfile I/O/parse error, or a
// detected cycle); node absence is never an error.
func (d *DependencyScan) RecomputeDirty(edge *Edge) error {
	return d.recomputeEdge(edge, nil)
}

// RecomputeNodeDirty walks node's producing edge, if any; a source node
// (no producing edge) is dirty iff it is missing.
func (d *DependencyScan) RecomputeNodeDirty(node *Node) error {
	if in := node.InEdge(); in != nil {
		return d.recomputeEdge(in, nil)
	}
	if _, err := node.StatIfNecessary(d.disk); err != nil {
		return err
	}
	node.SetDirty(!node.Exists())
	return nil
}

func (d *DependencyScan) recomputeEdge(edge *Edge, stack []*Edge) error {
	if edge.visit == visitDone {
		return nil
	}
	if edge.visit == visitInStack {
		return &cycleError{path: outputPathsOf(edge)}
	}
	edge.visit = visitInStack
	stack = append(stack, edge)
	defer func() {
		edge.visit = visitDone
	}()

	depfileMissing, err := loadDepFile(edge, d.state, d.disk)
	if err != nil {
		d.explain.explain("depfile load failed for %s: %v", outputPathsOf(edge), err)
		return err
	}
	if depfileMissing {
		d.explain.explain("%s is dirty: depfile no longer exists, implicit deps cannot be re-derived", outputPathsOf(edge))
	}

	var mostRecent *Node
	inputsReady := true
	anyDirty := depfileMissing
	for _, in := range edge.Inputs {
		inEdge := in.InEdge()
		if inEdge != nil {
			if err := d.recomputeEdge(inEdge, stack); err != nil {
				return err
			}
			if !inEdge.OutputsReady {
				inputsReady = false
			}
			continue
		}
		// A source file: it has no producing edge to make it dirty, so it
		// is dirty iff it is simply missing.
		if _, err := in.StatIfNecessary(d.disk); err != nil {
			return err
		}
		in.SetDirty(!in.Exists())
	}

	for i, in := range edge.Inputs {
		if edge.IsOrderOnly(i) {
			continue
		}
		if in.Dirty() {
			anyDirty = true
			continue
		}
		if in.InEdge() != nil && in.InEdge().IsPhony() && !in.Exists() {
			// A phony-produced input that is itself missing contributes no
			// timestamp: it never had one.
			continue
		}
		if mostRecent == nil || in.Mtime() > mostRecent.Mtime() {
			mostRecent = in
		}
	}

	for _, o := range edge.Outputs {
		if _, err := o.StatIfNecessary(d.disk); err != nil {
			return err
		}
	}

	command := edge.EvaluateCommand(true)

	dirty := anyDirty
	for _, o := range edge.Outputs {
		if d.recomputeOutputDirty(edge, mostRecent, command, o) {
			dirty = true
		}
	}

	for _, o := range edge.Outputs {
		o.SetDirty(dirty)
	}

	edge.OutputsReady = !dirty && inputsReady
	return nil
}

// recomputeOutputDirty implements the priority-ordered dirtiness test of
// spec.md §4.6 for a single output of edge.
func (d *DependencyScan) recomputeOutputDirty(edge *Edge, mostRecent *Node, command string, output *Node) bool {
	if edge.IsPhony() {
		for _, in := range edge.nonOrderOnlyInputs() {
			if !in.Exists() {
				d.explain.explain("%s is dirty: phony input %s is missing", output.Path(), in.Path())
				return true
			}
		}
		return false
	}

	if !output.Exists() {
		d.explain.explain("%s is dirty: output missing", output.Path())
		return true
	}

	if mostRecent != nil && mostRecent.Mtime() > output.Mtime() {
		d.explain.explain("%s is dirty: older than %s", output.Path(), mostRecent.Path())
		return true
	}

	if !edge.Rule.Generator && d.buildLog != nil {
		entry := d.buildLog.LookupByOutput(output.Path())
		if entry == nil {
			d.explain.explain("%s is dirty: no build log entry (never built)", output.Path())
			return true
		}
		if entry.CommandHash != HashCommand(command) {
			d.explain.explain("%s is dirty: command line changed", output.Path())
			return true
		}
	}

	// Rule 5 (propagation from a dirty input) is folded into anyDirty by
	// the caller rather than re-checked here: it doesn't vary per output.
	return false
}

func outputPathsOf(edge *Edge) string {
	if len(edge.Outputs) == 0 {
		return "<no outputs>"
	}
	return edge.Outputs[0].Path()
}

// HasNonDepfileDependency reports whether there is a path from edge to node
// through the graph that never crosses a depfile-spliced input (spec.md
// §4.6). Manifest-declared implicit and order-only inputs count; only
// inputs added by depfile loading are excluded. The traversal is a DFS with
// a visited set, robust to the diamond dependencies a real graph has even
// though it cannot contain cycles.
func (d *DependencyScan) HasNonDepfileDependency(edge *Edge, node *Node) bool {
	visited := map[*Edge]bool{}
	return hasNonDepfileDependencyEdge(edge, node, visited)
}

func hasNonDepfileDependencyEdge(edge *Edge, target *Node, visited map[*Edge]bool) bool {
	if visited[edge] {
		return false
	}
	visited[edge] = true

	for i, in := range edge.Inputs {
		if edge.IsDepfileImplicit(i) {
			continue
		}
		if in == target {
			return true
		}
		if hasNonDepfileDependencyNode(in, target, visited) {
			return true
		}
	}
	return false
}

func hasNonDepfileDependencyNode(node, target *Node, visited map[*Edge]bool) bool {
	in := node.InEdge()
	if in == nil {
		return false
	}
	return hasNonDepfileDependencyEdge(in, target, visited)
}

// String is used only for debug/error formatting of scan failures.
func (d *DependencyScan) String() string {
	return fmt.Sprintf("DependencyScan{edges=%d}", len(d.state.Edges()))
}
