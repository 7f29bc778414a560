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

func TestNodeStat(t *testing.T) {
	fs := newVirtualFileSystem()
	fs.Create("foo", 42, "")
	n := newNode("foo")

	if n.StatusKnown() {
		t.Fatal("StatusKnown true before any stat")
	}
	if err := n.Stat(fs); err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !n.Exists() {
		t.Error("Exists = false, want true")
	}
	if n.Mtime() != 42 {
		t.Errorf("Mtime = %d, want 42", n.Mtime())
	}
}

func TestNodeStatMissing(t *testing.T) {
	fs := newVirtualFileSystem()
	n := newNode("missing")
	if err := n.Stat(fs); err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if n.Exists() {
		t.Error("Exists = true for a file never created")
	}
}

func TestNodeStatIfNecessaryOnlyStatsOnce(t *testing.T) {
	fs := newVirtualFileSystem()
	fs.Create("foo", 1, "")
	n := newNode("foo")

	statted, err := n.StatIfNecessary(fs)
	if err != nil || !statted {
		t.Fatalf("first StatIfNecessary: statted=%v err=%v", statted, err)
	}
	statted, err = n.StatIfNecessary(fs)
	if err != nil || statted {
		t.Fatalf("second StatIfNecessary: statted=%v err=%v, want false", statted, err)
	}
}

func TestNodeStatError(t *testing.T) {
	fs := &statErrorDisk{virtualFileSystem: newVirtualFileSystem(), failPath: "bad"}
	n := newNode("bad")
	err := n.Stat(fs)
	if err == nil {
		t.Fatal("Stat returned no error for a failing disk")
	}
	var statErr *StatError
	if _, ok := err.(*StatError); !ok {
		t.Errorf("error type = %T, want *StatError (%v)", err, statErr)
	}
}

func TestNodeResetState(t *testing.T) {
	fs := newVirtualFileSystem()
	fs.Create("foo", 1, "")
	n := newNode("foo")
	if err := n.Stat(fs); err != nil {
		t.Fatal(err)
	}
	n.SetDirty(true)
	n.ResetState()
	if n.StatusKnown() {
		t.Error("StatusKnown true after ResetState")
	}
	if n.Dirty() {
		t.Error("Dirty true after ResetState")
	}
}

func TestNodeMarkMissing(t *testing.T) {
	fs := newVirtualFileSystem()
	fs.Create("foo", 1, "")
	n := newNode("foo")
	n.MarkMissing()
	if !n.StatusKnown() {
		t.Error("StatusKnown false after MarkMissing")
	}
	if n.Exists() {
		t.Error("Exists true after MarkMissing")
	}
}
