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

// PhonyRuleName is the reserved rule name for aliasing/sentinel edges. Edges
// using it have no command and contribute no freshness of their own.
const PhonyRuleName = "phony"

// Rule is an immutable named recipe, unique within its owning scope.
type Rule struct {
	Name string

	Command        EvalString
	Description    EvalString
	Depfile        EvalString
	Rspfile        EvalString
	RspfileContent EvalString

	// Generator, if true, exempts edges using this rule from command-change
	// rebuilds (typically the rule that regenerates the manifest itself).
	Generator bool

	// Restat, if true, means outputs whose actual mtime is unchanged after
	// execution may be treated as clean by the build log across run
	// boundaries; see DESIGN.md for how this core surfaces that policy.
	Restat bool
}

// NewRule creates an empty rule with the given name.
func NewRule(name string) *Rule {
	return &Rule{Name: name}
}

// phonyRule is the single shared instance used for every phony edge.
var phonyRule = NewRule(PhonyRuleName)
