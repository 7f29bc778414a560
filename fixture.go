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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureGraph is the on-disk shape of a graph fixture: a small, hand-written
// stand-in for a real .ninja manifest plus the state of the files it
// references, so the diagnostic CLI and integration tests can build a State
// without a manifest parser.
type FixtureGraph struct {
	Files map[string]FixtureFile `yaml:"files"`
	Rules map[string]FixtureRule `yaml:"rules"`
	Edges []FixtureEdge          `yaml:"edges"`
}

// FixtureFile declares the simulated on-disk state of one path.
type FixtureFile struct {
	Mtime    TimeStamp `yaml:"mtime"`
	Contents string    `yaml:"contents"`
}

// FixtureRule is a rule's templates and flags, in the same shape as Rule but
// with plain strings instead of precompiled EvalStrings.
type FixtureRule struct {
	Command        string `yaml:"command"`
	Description    string `yaml:"description"`
	Depfile        string `yaml:"depfile"`
	Rspfile        string `yaml:"rspfile"`
	RspfileContent string `yaml:"rspfile_content"`
	Generator      bool   `yaml:"generator"`
	Restat         bool   `yaml:"restat"`
}

// FixtureEdge declares one build edge: which rule produces which outputs
// from which inputs.
type FixtureEdge struct {
	Rule      string   `yaml:"rule"`
	Outs      []string `yaml:"outs"`
	Explicit  []string `yaml:"explicit"`
	Implicit  []string `yaml:"implicit"`
	OrderOnly []string `yaml:"orderOnly"`
}

// LoadFixtureGraph reads and parses a graph fixture file.
func LoadFixtureGraph(path string) (*FixtureGraph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %q: %w", path, err)
	}
	var g FixtureGraph
	if err := yaml.Unmarshal(b, &g); err != nil {
		return nil, fmt.Errorf("parsing fixture %q: %w", path, err)
	}
	return &g, nil
}

// Build constructs a State and a DiskInterface reflecting the fixture. The
// returned disk is backed entirely by the fixture's declared files: nothing
// touches the real filesystem, which is what lets the CLI exercise a scan
// reproducibly from a single checked-in file.
func (g *FixtureGraph) Build() (*State, DiskInterface, error) {
	s := NewState()
	for name, fr := range g.Rules {
		r := NewRule(name)
		r.Command = ParseEvalString(fr.Command)
		r.Description = ParseEvalString(fr.Description)
		r.Depfile = ParseEvalString(fr.Depfile)
		r.Rspfile = ParseEvalString(fr.Rspfile)
		r.RspfileContent = ParseEvalString(fr.RspfileContent)
		r.Generator = fr.Generator
		r.Restat = fr.Restat
		s.AddRule(r)
	}

	disk := newFixtureDisk()
	for path, f := range g.Files {
		disk.files[CanonicalizePath(path)] = f
	}

	for i, fe := range g.Edges {
		rule := s.LookupRule(fe.Rule)
		if rule == nil {
			return nil, nil, fmt.Errorf("edge %d: no such rule %q", i, fe.Rule)
		}
		e := s.AddEdge(rule)
		for _, o := range fe.Outs {
			if err := s.AddOut(e, o); err != nil {
				return nil, nil, fmt.Errorf("edge %d: %w", i, err)
			}
		}
		for _, in := range fe.Explicit {
			s.AddIn(e, in, InputExplicit)
		}
		for _, in := range fe.Implicit {
			s.AddIn(e, in, InputImplicit)
		}
		for _, in := range fe.OrderOnly {
			s.AddIn(e, in, InputOrderOnly)
		}
	}

	return s, disk, nil
}

// fixtureDisk is a DiskInterface backed by a fixture's declared files. It
// never touches the real filesystem; writes and removals only mutate the
// in-memory map, which is enough for the CLI to report what a scan would do
// without a scheduler actually running any commands.
type fixtureDisk struct {
	files map[string]FixtureFile
}

func newFixtureDisk() *fixtureDisk {
	return &fixtureDisk{files: map[string]FixtureFile{}}
}

func (d *fixtureDisk) Stat(path string) (TimeStamp, error) {
	return d.files[path].Mtime, nil
}

func (d *fixtureDisk) ReadFile(path string) (string, ReadStatus, error) {
	f, ok := d.files[path]
	if !ok {
		return "", NotFound, nil
	}
	return f.Contents, Okay, nil
}

func (d *fixtureDisk) WriteFile(path, contents string) error {
	f := d.files[path]
	f.Contents = contents
	d.files[path] = f
	return nil
}

func (d *fixtureDisk) MakeDirs(path string) error { return nil }

func (d *fixtureDisk) RemoveFile(path string) (int, error) {
	if _, ok := d.files[path]; !ok {
		return 1, nil
	}
	delete(d.files, path)
	return 0, nil
}

var _ DiskInterface = (*fixtureDisk)(nil)
