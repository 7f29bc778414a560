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

	"github.com/maruel/subcommands"

	"github.com/wolfp/ninja"
)

const depcheckUsage = `warn about depfile-only dependencies

 $ stokecheck depcheck -fixture graph.yaml

For every edge with a depfile, loads the depfile and checks whether each
prerequisite it discovered is also reachable from that edge through a
manifest-declared (non-depfile) path. A prerequisite that is only ever named
by the depfile has no explicit build-order guarantee outside of it, which is
usually a sign the manifest is missing a real dependency edge.
`

func cmdDepcheck() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "depcheck -fixture <path>",
		ShortDesc: "warn about dependencies known only through a depfile",
		LongDesc:  depcheckUsage,
		CommandRun: func() subcommands.CommandRun {
			c := &depcheckRun{}
			c.init()
			return c
		},
	}
}

type depcheckRun struct {
	subcommands.CommandRunBase

	fixture string
}

func (c *depcheckRun) init() {
	c.Flags.StringVar(&c.fixture, "fixture", "", "path to a graph fixture YAML file")
}

func (c *depcheckRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.run(); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, depcheckUsage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *depcheckRun) run() error {
	if c.fixture == "" {
		return fmt.Errorf("missing -fixture: %w", flag.ErrHelp)
	}

	g, err := ninja.LoadFixtureGraph(c.fixture)
	if err != nil {
		return err
	}
	state, disk, err := g.Build()
	if err != nil {
		return err
	}

	scan := ninja.NewDependencyScan(state, disk, nil, nil)
	warnings := 0
	for _, e := range state.Edges() {
		if err := scan.RecomputeDirty(e); err != nil {
			return fmt.Errorf("scanning %s: %w", firstOutputOf(e), err)
		}
		for i, in := range e.Inputs {
			if !e.IsDepfileImplicit(i) {
				continue
			}
			if !scan.HasNonDepfileDependency(e, in) {
				fmt.Printf("%s: %s is only known through the depfile, not the manifest\n", firstOutputOf(e), in.Path())
				warnings++
			}
		}
	}
	if warnings > 0 {
		fmt.Fprintf(os.Stderr, "%d depfile-only dependenc%s found\n", warnings, plural(warnings))
	}
	return nil
}

func firstOutputOf(e *ninja.Edge) string {
	if len(e.Outputs) == 0 {
		return "<no outputs>"
	}
	return e.Outputs[0].Path()
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
