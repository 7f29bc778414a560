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

// depfile is the result of parsing a Makefile-style dependency file: the
// declared output(s) of its first target rule, and that rule's
// prerequisites. Only the first target's prerequisite list is meaningful;
// later target lines are parsed (so syntax errors in them are still
// caught) but their prerequisites are discarded.
type depfile struct {
	outs []string
	ins  []string
}

// parseDepfile parses Makefile dependency syntax: one or more
// whitespace-separated target tokens, a ':', then a whitespace-separated
// prerequisite list. A trailing '\' continues the rule onto the next line.
// Within a token, '\ ' is an escaped space and '$$' is a literal '$'.
func parseDepfile(content string) (*depfile, error) {
	// Join continuation lines: a backslash immediately before a newline
	// means the logical line continues.
	joined := strings.ReplaceAll(content, "\\\r\n", " ")
	joined = strings.ReplaceAll(joined, "\\\n", " ")

	df := &depfile{}
	haveFirstRule := false

	for _, rawLine := range strings.Split(joined, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		colon := findUnescapedColon(line)
		if colon == -1 {
			if haveFirstRule {
				// A continuation of prerequisites without a colon is not
				// valid Makefile-dependency syntax once a rule has started
				// on its own line; ignore blank noise, otherwise it's an
				// error.
				return nil, &DepfileParseError{Reason: "expected ':' in depfile line: " + line}
			}
			return nil, &DepfileParseError{Reason: "expected ':' in depfile line: " + line}
		}
		targets := tokenize(line[:colon])
		prereqs := tokenize(line[colon+1:])
		if !haveFirstRule {
			df.outs = append(df.outs, targets...)
			df.ins = append(df.ins, prreqsCopy(prereqs)...)
			haveFirstRule = true
		}
	}
	if len(df.outs) == 0 {
		return nil, &DepfileParseError{Reason: "no outputs declared"}
	}
	return df, nil
}

func prreqsCopy(p []string) []string {
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// findUnescapedColon returns the index of the first ':' in line, or -1. It
// is a plain first-colon search: a Windows drive-letter colon or an escaped
// colon is not skipped.
func findUnescapedColon(line string) int {
	return strings.IndexByte(line, ':')
}

// tokenize splits on unescaped whitespace, undoing "\ " (escaped space) and
// "$$" (literal '$') within a token.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == ' ':
			cur.WriteByte(' ')
			i++
		case c == '$' && i+1 < len(s) && s[i+1] == '$':
			cur.WriteByte('$')
			i++
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// loadDepFile evaluates and parses edge's depfile, splicing any newly
// discovered prerequisites into edge's implicit-input span. A depfile that
// does not exist on disk is not an error: the loader succeeds having added
// nothing, and it reports missing=true so the scan can force a rebuild — a
// depfile that once existed and vanished means the edge's true implicit-dep
// set can no longer be re-derived, so the conservative move is to always
// rebuild rather than trust whatever implicit deps happen to be left over
// in the graph from a prior load (ninja issue #404). A depfile that exists
// but cannot be read, or is malformed, is a hard error.
func loadDepFile(edge *Edge, state *State, disk DiskInterface) (missing bool, err error) {
	path := edge.GetUnescapedDepFile()
	if path == "" {
		return false, nil
	}

	content, status, ferr := disk.ReadFile(path)
	switch status {
	case Okay:
	case NotFound:
		return true, nil
	default:
		return false, &DepfileIoError{Path: path, Err: ferr}
	}

	df, perr := parseDepfile(content)
	if perr != nil {
		if dpe, ok := perr.(*DepfileParseError); ok {
			dpe.Path = path
		}
		return false, perr
	}

	primaryOut := CanonicalizePath(df.outs[0])
	firstOutput := edge.Outputs[0]
	if firstOutput.Path() != primaryOut {
		return false, &DepfileParseError{Path: path, Reason: "expected depfile to mention '" + firstOutput.Path() + "', got '" + primaryOut + "'"}
	}
	for _, o := range df.outs {
		if CanonicalizePath(o) == firstOutput.Path() {
			continue
		}
		found := false
		for _, n := range edge.Outputs {
			if n.Path() == CanonicalizePath(o) {
				found = true
				break
			}
		}
		if !found {
			return false, &DepfileParseError{Path: path, Reason: "depfile mentions '" + o + "' as an output, but no such output was declared"}
		}
	}

	return false, spliceDepfileInputs(edge, state, df.ins)
}

// spliceDepfileInputs inserts newly-discovered prerequisites into edge's
// implicit-input span, immediately before the order-only span, skipping
// anything already present among the edge's explicit or implicit inputs.
func spliceDepfileInputs(edge *Edge, state *State, prereqs []string) error {
	existing := make(map[string]bool, len(edge.Inputs))
	nonOrderOnlyCount := len(edge.Inputs) - edge.OrderOnlyDeps
	for i := 0; i < nonOrderOnlyCount; i++ {
		existing[edge.Inputs[i].Path()] = true
	}

	var toAdd []string
	for _, p := range prereqs {
		canon := CanonicalizePath(p)
		if existing[canon] {
			continue
		}
		existing[canon] = true
		toAdd = append(toAdd, canon)
	}
	if len(toAdd) == 0 {
		return nil
	}

	insertAt := len(edge.Inputs) - edge.OrderOnlyDeps
	newInputs := make([]*Node, 0, len(edge.Inputs)+len(toAdd))
	newInputs = append(newInputs, edge.Inputs[:insertAt]...)
	for _, canon := range toAdd {
		node := state.GetNode(canon)
		newInputs = append(newInputs, node)
		node.addOutEdge(edge)
	}
	newInputs = append(newInputs, edge.Inputs[insertAt:]...)
	edge.Inputs = newInputs
	edge.ImplicitDeps += len(toAdd)
	edge.DepfileImplicitDeps += len(toAdd)
	return nil
}
