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

// InputKind classifies an Edge's input by its position. Edge keeps inputs
// in a single ordered slice partitioned by two counters (spec.md §3, §9);
// InputKind is just a read-only view over that partitioning, not a separate
// representation.
type InputKind int

const (
	InputExplicit InputKind = iota
	InputImplicit
	InputOrderOnly
)

// Edge links ordered inputs to one or more outputs through a Rule.
type Edge struct {
	Rule *Rule
	Env  *BindingEnv

	// Inputs holds explicit, then implicit, then order-only inputs
	// contiguously, in manifest-declaration order within each span.
	Inputs []*Node
	// Outputs must be non-empty.
	Outputs []*Node

	// ImplicitDeps and OrderOnlyDeps count the trailing spans of Inputs, as
	// described in spec.md §3.
	ImplicitDeps  int
	OrderOnlyDeps int
	// DepfileImplicitDeps counts how many of the implicit inputs were
	// appended by depfile loading, so they can be re-spliced on rescan.
	DepfileImplicitDeps int

	// OutputsReady caches the last scan's verdict: no output is dirty and
	// every input's producing edge (order-only inputs included) is itself
	// ready.
	OutputsReady bool

	// visit tracks this edge's progress through the current scan, so a
	// DependencyScan can detect it is already on the call stack (a manifest
	// cycle, which re-entry reports as an error instead of recursing again)
	// and can avoid re-walking an edge it already finished this pass. It is reset to visitNone by State.Reset.
	visit visitMark
}

type visitMark int

const (
	visitNone visitMark = iota
	visitInStack
	visitDone
)

// NewEdge creates an edge bound to rule and env; inputs/outputs are added
// by the caller (typically State).
func NewEdge(rule *Rule, env *BindingEnv) *Edge {
	return &Edge{Rule: rule, Env: env}
}

// explicitInputs returns the leading explicit-input span (those that
// surface as $in).
func (e *Edge) explicitInputs() []*Node {
	n := len(e.Inputs) - e.ImplicitDeps - e.OrderOnlyDeps
	if n < 0 {
		n = 0
	}
	return e.Inputs[:n]
}

// nonOrderOnlyInputs returns the explicit-then-implicit span: every input
// except the trailing order-only one, i.e. every input that can affect
// dirtiness.
func (e *Edge) nonOrderOnlyInputs() []*Node {
	n := len(e.Inputs) - e.OrderOnlyDeps
	if n < 0 {
		n = 0
	}
	return e.Inputs[:n]
}

// IsImplicit reports whether input i is in the manifest-declared-or-depfile
// implicit span (but not order-only).
func (e *Edge) IsImplicit(i int) bool {
	return i >= len(e.Inputs)-e.OrderOnlyDeps-e.ImplicitDeps && !e.IsOrderOnly(i)
}

// IsDepfileImplicit reports whether input i is one of the implicit inputs
// that was appended by depfile loading specifically (a subset of
// IsImplicit).
func (e *Edge) IsDepfileImplicit(i int) bool {
	return i >= len(e.Inputs)-e.OrderOnlyDeps-e.DepfileImplicitDeps && !e.IsOrderOnly(i)
}

// IsOrderOnly reports whether input i is order-only: required to exist
// before the build, but never a cause of rebuilding.
func (e *Edge) IsOrderOnly(i int) bool {
	return i >= len(e.Inputs)-e.OrderOnlyDeps
}

// IsPhony reports whether this edge's rule is the reserved "phony" rule.
func (e *Edge) IsPhony() bool {
	return e.Rule == phonyRule || e.Rule != nil && e.Rule.Name == PhonyRuleName
}

// AllInputsReady reports whether every input either has no producing edge,
// or its producing edge's outputs are ready.
func (e *Edge) AllInputsReady() bool {
	for _, i := range e.Inputs {
		if in := i.InEdge(); in != nil && !in.OutputsReady {
			return false
		}
	}
	return true
}

// EvaluateCommand expands the rule's command template against this edge's
// scope. When includeRsp is true and the rule specifies a response file,
// the expanded rspfile content is appended behind a marker, so that a
// changed response-file body is detected as a command change too.
func (e *Edge) EvaluateCommand(includeRsp bool) string {
	env := newEdgeEnv(e, true)
	command := e.Rule.Command.Expand(env)
	if includeRsp && e.HasRspFile() {
		command += ";rspfile=" + e.Rule.RspfileContent.Expand(env)
	}
	return command
}

// EvaluateDepFile expands the rule's depfile template, shell-escaped.
func (e *Edge) EvaluateDepFile() string {
	return e.Rule.Depfile.Expand(newEdgeEnv(e, true))
}

// GetUnescapedDepFile expands the rule's depfile template without shell
// escaping, the form actually usable as a filesystem path.
func (e *Edge) GetUnescapedDepFile() string {
	return e.Rule.Depfile.Expand(newEdgeEnv(e, false))
}

// GetRspFile expands the rule's rspfile template, unescaped (a path).
func (e *Edge) GetRspFile() string {
	return e.Rule.Rspfile.Expand(newEdgeEnv(e, false))
}

// GetRspFileContent expands the rule's rspfile_content template.
func (e *Edge) GetRspFileContent() string {
	return e.Rule.RspfileContent.Expand(newEdgeEnv(e, true))
}

// HasRspFile reports whether this edge uses a response file.
func (e *Edge) HasRspFile() bool {
	return e.GetRspFile() != ""
}
