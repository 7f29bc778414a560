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

func TestCanonicalizePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"foo.h", "foo.h"},
		{"./foo.h", "foo.h"},
		{"foo/../a.h", "a.h"},
		{"./foo/../implicit.h", "implicit.h"},
		{"bar/../foo.cc", "foo.cc"},
		{"a/b/../../c", "c"},
		{"a//b", "a/b"},
		{"a/./b", "a/b"},
		{"a/b/.", "a/b"},
		{"/a/b", "/a/b"},
		{"/a/../b", "/b"},
		{"../a", "../a"},
		{"a/../../b", "../b"},
		{`a\b`, "a/b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CanonicalizePath(c.in); got != c.want {
			t.Errorf("CanonicalizePath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizePathIdempotent(t *testing.T) {
	inputs := []string{"foo.h", "./foo.h", "foo/../a.h", "/a/../b/c", "..", "a/b/../c/../../d"}
	for _, in := range inputs {
		once := CanonicalizePath(in)
		twice := CanonicalizePath(once)
		if once != twice {
			t.Errorf("canon(canon(%q)) = %q, want %q", in, twice, once)
		}
	}
}
