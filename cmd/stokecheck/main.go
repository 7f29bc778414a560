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

// Command stokecheck is a diagnostic tool for the dependency-scan core: it
// loads a graph fixture, runs the dirty scan against it, and can check
// whether depfile-discovered dependencies are also reachable through
// manifest-declared edges.
package main

import (
	"os"

	"github.com/maruel/subcommands"
)

var application = &subcommands.DefaultApplication{
	Name:  "stokecheck",
	Title: "diagnostic tool for the dependency-scan core",
	Commands: []*subcommands.Command{
		cmdScan(),
		cmdDepcheck(),
		subcommands.CmdHelp,
	},
}

func main() {
	os.Exit(subcommands.Run(application, nil))
}
