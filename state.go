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

// State owns every node, rule, and edge of a dependency graph. Edges hold
// non-owning references into State's node/rule tables; a Reset returns the
// graph to its pre-scan shape without destroying it.
type State struct {
	paths map[string]*Node
	rules map[string]*Rule
	edges []*Edge

	// pathOrder preserves first-insertion order of paths, used to make
	// RootNodes deterministic without depending on Go's randomized map
	// iteration order.
	pathOrder []string

	bindings *BindingEnv
}

// NewState creates an empty state with the phony rule pre-registered.
func NewState() *State {
	s := &State{
		paths:    map[string]*Node{},
		rules:    map[string]*Rule{PhonyRuleName: phonyRule},
		bindings: NewBindingEnv(nil),
	}
	return s
}

// Bindings returns the root manifest-level scope new edges are bound to by
// default.
func (s *State) Bindings() *BindingEnv { return s.bindings }

// AddRule registers a rule by name. It panics on a duplicate name, mirroring
// the manifest parser's own invariant (rule names are unique per scope) —
// this is a construction-time collaborator error, not a runtime condition
// the core needs to recover from.
func (s *State) AddRule(rule *Rule) {
	if _, ok := s.rules[rule.Name]; ok {
		panic("duplicate rule: " + rule.Name)
	}
	s.rules[rule.Name] = rule
}

// LookupRule returns a previously-registered rule, or nil.
func (s *State) LookupRule(name string) *Rule {
	return s.rules[name]
}

// AddEdge creates a new edge using rule, bound to the root manifest scope.
func (s *State) AddEdge(rule *Rule) *Edge {
	e := NewEdge(rule, s.bindings)
	s.edges = append(s.edges, e)
	return e
}

// Edges returns every edge in the graph, in construction order.
func (s *State) Edges() []*Edge { return s.edges }

// GetNode returns the Node for path, canonicalizing first and creating it
// if this is the first reference to it. Node ownership belongs to State.
func (s *State) GetNode(path string) *Node {
	path = CanonicalizePath(path)
	if n, ok := s.paths[path]; ok {
		return n
	}
	n := newNode(path)
	s.paths[path] = n
	s.pathOrder = append(s.pathOrder, path)
	return n
}

// LookupNode returns the Node for path if it already exists, or nil.
func (s *State) LookupNode(path string) *Node {
	return s.paths[CanonicalizePath(path)]
}

// AddIn appends path to edge's inputs as the given kind. Within a single
// edge's construction, kinds must be added in the contiguous order
// explicit, implicit, order-only, matching manifest declaration order.
func (s *State) AddIn(edge *Edge, path string, kind InputKind) {
	node := s.GetNode(path)
	edge.Inputs = append(edge.Inputs, node)
	node.addOutEdge(edge)
	switch kind {
	case InputImplicit:
		edge.ImplicitDeps++
	case InputOrderOnly:
		edge.OrderOnlyDeps++
	}
}

// AddOut appends path to edge's outputs. It returns a *GraphError if path
// already has a producing edge, enforcing the one-producer-per-node
// invariant; the edge is left unmodified in that case.
func (s *State) AddOut(edge *Edge, path string) error {
	node := s.GetNode(path)
	if node.InEdge() != nil {
		return &GraphError{Path: node.Path()}
	}
	edge.Outputs = append(edge.Outputs, node)
	node.inEdge = edge
	return nil
}

// RootNodes returns the outputs that nothing else in the graph consumes —
// i.e. nodes with an in-edge but no out-edges — in the deterministic order
// their paths were first referenced.
func (s *State) RootNodes() []*Node {
	var roots []*Node
	for _, p := range s.pathOrder {
		n := s.paths[p]
		if n.InEdge() != nil && len(n.OutEdges()) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// Reset returns every node to Unknown/not-dirty and every edge's
// OutputsReady to false, without destroying the graph.
func (s *State) Reset() {
	for _, n := range s.paths {
		n.ResetState()
	}
	for _, e := range s.edges {
		e.OutputsReady = false
		e.visit = visitNone
	}
}
