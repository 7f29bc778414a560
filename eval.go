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

import "strings"

// Env is a lookup scope for variables referenced by an EvalString.
type Env interface {
	LookupVariable(name string) string
}

// evalToken is one fragment of a parsed EvalString: either literal text or
// a variable reference to be looked up against an Env at expansion time.
type evalToken struct {
	text      string
	isSpecial bool
}

// EvalString is a precompiled template of literal fragments and variable
// references, lazily expanded against a scope.
type EvalString struct {
	tokens []evalToken
}

// AddText appends a literal fragment.
func (e *EvalString) AddText(text string) {
	e.tokens = append(e.tokens, evalToken{text: text})
}

// AddSpecial appends a variable reference.
func (e *EvalString) AddSpecial(name string) {
	e.tokens = append(e.tokens, evalToken{text: name, isSpecial: true})
}

// Empty reports whether the template has no content at all.
func (e *EvalString) Empty() bool { return len(e.tokens) == 0 }

// Expand returns the string produced by looking each variable reference up
// in scope; unresolved variables expand to empty.
func (e *EvalString) Expand(scope Env) string {
	if len(e.tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range e.tokens {
		if !t.isSpecial {
			b.WriteString(t.text)
			continue
		}
		b.WriteString(scope.LookupVariable(t.text))
	}
	return b.String()
}

// Unparse reconstructs the unexpanded template text, for debugging.
func (e *EvalString) Unparse() string {
	var b strings.Builder
	for _, t := range e.tokens {
		if t.isSpecial {
			b.WriteString("${")
			b.WriteString(t.text)
			b.WriteString("}")
		} else {
			b.WriteString(t.text)
		}
	}
	return b.String()
}

// BindingEnv is an Env holding a map of variables plus a parent scope,
// chaining lookups outward. This is the manifest-level / rule-level
// binding scope that an Edge's own bindings fall back to.
type BindingEnv struct {
	Bindings map[string]string
	Parent   *BindingEnv
}

// NewBindingEnv creates a scope with the given parent (nil for the root).
func NewBindingEnv(parent *BindingEnv) *BindingEnv {
	return &BindingEnv{Bindings: map[string]string{}, Parent: parent}
}

// LookupVariable implements Env.
func (b *BindingEnv) LookupVariable(name string) string {
	if v, ok := b.Bindings[name]; ok {
		return v
	}
	if b.Parent != nil {
		return b.Parent.LookupVariable(name)
	}
	return ""
}

// shellEscape wraps a token containing whitespace in double quotes, per the
// contract in spec.md §4.3 ("Shell-escaping wraps any token containing
// whitespace in double quotes"). Tokens containing quotes or backslashes are
// left as-is, per spec.md §9's open question — deterministic, documented
// behavior rather than a fully general shell-quoting implementation.
func shellEscape(token string) string {
	if strings.ContainsAny(token, " \t\n") {
		return "\"" + token + "\""
	}
	return token
}

// edgeEnv is the scope an Edge's command/depfile/rspfile templates expand
// against: $in/$out, which it synthesizes, then the edge's Env's own
// bindings, then the rule's bindings (evaluated in the edge's own scope, so
// rule-level variables can reference $in/$out), then the Env's parent
// scopes. State.AddEdge binds every edge to the root manifest scope, so for
// such edges the manifest-level bindings are the ones checked before the
// rule's.
type edgeEnv struct {
	edge   *Edge
	escape bool
}

func newEdgeEnv(edge *Edge, escape bool) *edgeEnv {
	return &edgeEnv{edge: edge, escape: escape}
}

func (e *edgeEnv) LookupVariable(name string) string {
	switch name {
	case "in":
		return e.makePathList(e.edge.explicitInputs(), ' ')
	case "in_newline":
		return e.makePathList(e.edge.explicitInputs(), '\n')
	case "out":
		return e.makePathList(e.edge.Outputs, ' ')
	}

	var ruleTemplate *EvalString
	switch name {
	case "command":
		ruleTemplate = &e.edge.Rule.Command
	case "description":
		ruleTemplate = &e.edge.Rule.Description
	case "depfile":
		ruleTemplate = &e.edge.Rule.Depfile
	case "rspfile":
		ruleTemplate = &e.edge.Rule.Rspfile
	case "rspfile_content":
		ruleTemplate = &e.edge.Rule.RspfileContent
	}

	if e.edge.Env != nil {
		if v, ok := e.edge.Env.Bindings[name]; ok {
			return v
		}
	}
	if ruleTemplate != nil && !ruleTemplate.Empty() {
		return ruleTemplate.Expand(e)
	}
	switch name {
	case "generator":
		if e.edge.Rule.Generator {
			return "1"
		}
		return ""
	case "restat":
		if e.edge.Rule.Restat {
			return "1"
		}
		return ""
	}
	if e.edge.Env != nil {
		return e.edge.Env.LookupVariable(name)
	}
	return ""
}

func (e *edgeEnv) makePathList(nodes []*Node, sep byte) string {
	var b strings.Builder
	for i, n := range nodes {
		if i != 0 {
			b.WriteByte(sep)
		}
		path := n.Path()
		if e.escape {
			path = shellEscape(path)
		}
		b.WriteString(path)
	}
	return b.String()
}
