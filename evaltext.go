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

// ParseEvalString compiles a ninja-style template into an EvalString,
// standing in for the excluded manifest parser's lexer. "$name" and
// "${name}" are variable references, "$$" is a literal '$', and "$" before
// any other character escapes that character literally (so "$ " embeds a
// space that would otherwise be a token separator to a caller that splits
// on whitespace before parsing). Used by the graph-fixture loader (§2.11)
// and by tests that need to build edges without a manifest.
func ParseEvalString(text string) EvalString {
	var e EvalString
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			e.AddText(lit.String())
			lit.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '$' || i+1 >= len(text) {
			lit.WriteByte(c)
			continue
		}
		i++
		next := text[i]
		switch {
		case next == '$':
			lit.WriteByte('$')
		case next == '{':
			end := strings.IndexByte(text[i:], '}')
			if end == -1 {
				lit.WriteString(text[i-1:])
				i = len(text)
				continue
			}
			flush()
			e.AddSpecial(text[i+1 : i+end])
			i += end
		case isIdentByte(next):
			start := i
			for i < len(text) && isIdentByte(text[i]) {
				i++
			}
			flush()
			e.AddSpecial(text[start:i])
			i--
		default:
			lit.WriteByte(next)
		}
	}
	flush()
	return e
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
