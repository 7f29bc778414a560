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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"github.com/wolfp/ninja"
)

const scanUsage = `run the dirty scan against a graph fixture

 $ stokecheck scan -fixture graph.yaml [-target out.o] [-v]

Loads a graph fixture (see the fixture format in fixture.go), computes
dirtiness for -target (or every root node if -target is omitted), and prints
one line per output.
`

func cmdScan() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "scan -fixture <path> [-target <path>]",
		ShortDesc: "run the dirty scan against a graph fixture",
		LongDesc:  scanUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &scanRun{}
			c.init()
			return c
		},
	}
}

type scanRun struct {
	subcommands.CommandRunBase

	fixture string
	target  string
	verbose bool
}

func (c *scanRun) init() {
	c.Flags.StringVar(&c.fixture, "fixture", "", "path to a graph fixture YAML file")
	c.Flags.StringVar(&c.target, "target", "", "output path to scan; defaults to every root node")
	c.Flags.BoolVar(&c.verbose, "v", false, "enable debug-level explain tracing")
}

func (c *scanRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.run(); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, scanUsage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *scanRun) run() error {
	if c.fixture == "" {
		return fmt.Errorf("missing -fixture: %w", flag.ErrHelp)
	}
	logger := log.New(os.Stderr)
	if c.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	g, err := ninja.LoadFixtureGraph(c.fixture)
	if err != nil {
		return err
	}
	state, disk, err := g.Build()
	if err != nil {
		return err
	}

	targets, err := scanTargets(state, c.target)
	if err != nil {
		return err
	}

	scan := ninja.NewDependencyScan(state, disk, ninja.NewMemoryBuildLog(), logger)
	dirty := 0
	for _, n := range targets {
		if err := scan.RecomputeDirty(n.InEdge()); err != nil {
			return fmt.Errorf("scanning %s: %w", n.Path(), err)
		}
		status := "clean"
		if n.Dirty() {
			status = "dirty"
			dirty++
		}
		fmt.Printf("%s\t%s\n", status, n.Path())
	}
	if dirty > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d targets dirty\n", dirty, len(targets))
	}
	return nil
}

// scanTargets resolves -target, or every root node when it is empty.
func scanTargets(state *ninja.State, target string) ([]*ninja.Node, error) {
	if target == "" {
		roots := state.RootNodes()
		if len(roots) == 0 {
			return nil, fmt.Errorf("fixture declares no edges to scan")
		}
		return roots, nil
	}
	n := state.LookupNode(target)
	if n == nil {
		return nil, fmt.Errorf("no such target: %q", target)
	}
	if n.InEdge() == nil {
		return nil, fmt.Errorf("target %q is a source file, not a build output", target)
	}
	return []*ninja.Node{n}, nil
}
