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

import "testing"

// newTestState returns a state with the builtin "cat" rule registered,
// mirroring the corpus's StateTestWithBuiltinRules fixture.
func newTestState(t *testing.T) *State {
	t.Helper()
	s := NewState()
	catRule := NewRule("cat")
	catRule.Command = ParseEvalString("cat $in > $out")
	s.AddRule(catRule)
	return s
}

// newRule registers a rule with the given command template (and, if
// nonempty, depfile template) on state.
func newRule(t *testing.T, s *State, name, command, depfile string) *Rule {
	t.Helper()
	r := NewRule(name)
	r.Command = ParseEvalString(command)
	if depfile != "" {
		r.Depfile = ParseEvalString(depfile)
	}
	s.AddRule(r)
	return r
}

// buildEdge is a compact way to declare "build out[,out...]: rule
// explicit... | implicit... || order-only..." in a test, mirroring the
// manifest parser's construction contract in spec.md §6 without
// reimplementing a parser.
type buildEdge struct {
	rule      string
	outs      []string
	explicit  []string
	implicit  []string
	orderOnly []string
}

func addEdge(t *testing.T, s *State, be buildEdge) *Edge {
	t.Helper()
	rule := s.LookupRule(be.rule)
	if rule == nil {
		t.Fatalf("no such rule %q", be.rule)
	}
	e := s.AddEdge(rule)
	for _, o := range be.outs {
		if err := s.AddOut(e, o); err != nil {
			t.Fatalf("AddOut(%q): %v", o, err)
		}
	}
	for _, in := range be.explicit {
		s.AddIn(e, in, InputExplicit)
	}
	for _, in := range be.implicit {
		s.AddIn(e, in, InputImplicit)
	}
	for _, in := range be.orderOnly {
		s.AddIn(e, in, InputOrderOnly)
	}
	return e
}
