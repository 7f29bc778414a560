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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDepfileBasic(t *testing.T) {
	df, err := parseDepfile("foo.o: foo.cc foo.h\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"foo.o"}, df.outs); diff != "" {
		t.Errorf("outs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo.cc", "foo.h"}, df.ins); diff != "" {
		t.Errorf("ins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepfileLineContinuation(t *testing.T) {
	df, err := parseDepfile("foo.o: foo.cc \\\n  foo.h \\\n  bar.h\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"foo.cc", "foo.h", "bar.h"}, df.ins); diff != "" {
		t.Errorf("ins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepfileEscapedSpace(t *testing.T) {
	df, err := parseDepfile(`foo.o: My\ Documents/foo.h` + "\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"My Documents/foo.h"}, df.ins); diff != "" {
		t.Errorf("ins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepfileDollarDollar(t *testing.T) {
	df, err := parseDepfile("foo.o: weird$$name.h\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"weird$name.h"}, df.ins); diff != "" {
		t.Errorf("ins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepfileMultipleOutputs(t *testing.T) {
	df, err := parseDepfile("foo.o bar.o: foo.cc\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"foo.o", "bar.o"}, df.outs); diff != "" {
		t.Errorf("outs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDepfileOnlyFirstRuleCounts(t *testing.T) {
	df, err := parseDepfile("foo.o: foo.cc\nfoo.h:\n")
	if err != nil {
		t.Fatalf("parseDepfile: %v", err)
	}
	if diff := cmp.Diff([]string{"foo.cc"}, df.ins); diff != "" {
		t.Errorf("ins mismatch, second rule's prerequisites should be ignored (-want +got):\n%s", diff)
	}
}

func TestParseDepfileMissingColonIsError(t *testing.T) {
	if _, err := parseDepfile("foo.o foo.cc\n"); err == nil {
		t.Fatal("parseDepfile succeeded on a line with no ':'")
	}
}

func TestParseDepfileNoOutputsIsError(t *testing.T) {
	if _, err := parseDepfile(""); err == nil {
		t.Fatal("parseDepfile succeeded on empty content")
	}
}

func TestLoadDepFileSplicesNewPrereqs(t *testing.T) {
	s := newTestState(t)
	newRule(t, s, "catdep", "cat $in > $out", "$out.d")
	fs := newVirtualFileSystem()
	fs.Create("out.d", 1, "out: dep1.h dep2.h\n")
	e := addEdge(t, s, buildEdge{rule: "catdep", outs: []string{"out"}, explicit: []string{"in"}})

	missing, err := loadDepFile(e, s, fs)
	if err != nil || missing {
		t.Fatalf("loadDepFile: missing=%v err=%v", missing, err)
	}
	if e.DepfileImplicitDeps != 2 {
		t.Fatalf("DepfileImplicitDeps = %d, want 2", e.DepfileImplicitDeps)
	}
	if got, want := e.Inputs[1].Path(), "dep1.h"; got != want {
		t.Errorf("Inputs[1] = %q, want %q", got, want)
	}
	if got, want := e.Inputs[2].Path(), "dep2.h"; got != want {
		t.Errorf("Inputs[2] = %q, want %q", got, want)
	}
}

// Invariant 5 (spec.md §8): loading the same unchanged depfile a second time
// adds nothing new, and DepfileImplicitDeps stays at the count from the
// first load.
func TestLoadDepFileIdempotentOnRepeatedCalls(t *testing.T) {
	s := newTestState(t)
	newRule(t, s, "catdep", "cat $in > $out", "$out.d")
	fs := newVirtualFileSystem()
	fs.Create("out.d", 1, "out: dep1.h dep2.h\n")
	e := addEdge(t, s, buildEdge{rule: "catdep", outs: []string{"out"}, explicit: []string{"in"}})

	if _, err := loadDepFile(e, s, fs); err != nil {
		t.Fatalf("first loadDepFile: %v", err)
	}
	firstCount := len(e.Inputs)
	firstDepfileDeps := e.DepfileImplicitDeps

	if _, err := loadDepFile(e, s, fs); err != nil {
		t.Fatalf("second loadDepFile: %v", err)
	}
	if len(e.Inputs) != firstCount {
		t.Errorf("Inputs grew from %d to %d on a repeated load of the same depfile", firstCount, len(e.Inputs))
	}
	if e.DepfileImplicitDeps != firstDepfileDeps {
		t.Errorf("DepfileImplicitDeps changed from %d to %d on a repeated load", firstDepfileDeps, e.DepfileImplicitDeps)
	}
}

func TestLoadDepFileNoDepfileTemplateIsNoop(t *testing.T) {
	s := newTestState(t)
	fs := newVirtualFileSystem()
	e := addEdge(t, s, buildEdge{rule: "cat", outs: []string{"out"}, explicit: []string{"in"}})

	missing, err := loadDepFile(e, s, fs)
	if err != nil || missing {
		t.Fatalf("loadDepFile: missing=%v err=%v", missing, err)
	}
	if len(e.Inputs) != 1 {
		t.Errorf("Inputs grew to %d for a rule with no depfile template", len(e.Inputs))
	}
}

func TestLoadDepFileWrongOutputIsError(t *testing.T) {
	s := newTestState(t)
	newRule(t, s, "catdep", "cat $in > $out", "$out.d")
	fs := newVirtualFileSystem()
	fs.Create("out.d", 1, "someother.o: dep.h\n")
	e := addEdge(t, s, buildEdge{rule: "catdep", outs: []string{"out"}, explicit: []string{"in"}})

	if _, err := loadDepFile(e, s, fs); err == nil {
		t.Fatal("loadDepFile succeeded when depfile names a different output")
	}
}
