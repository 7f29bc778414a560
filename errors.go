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

import "fmt"

// DepfileIoError reports that a depfile exists but could not be read.
type DepfileIoError struct {
	Path string
	Err  error
}

func (e *DepfileIoError) Error() string {
	return fmt.Sprintf("loading %q: %v", e.Path, e.Err)
}
func (e *DepfileIoError) Unwrap() error { return e.Err }

// DepfileParseError reports malformed Makefile dependency syntax.
type DepfileParseError struct {
	Path   string
	Reason string
}

func (e *DepfileParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// StatError reports a hard disk-interface failure, distinct from a file
// simply being absent.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("stat(%q): %v", e.Path, e.Err)
}
func (e *StatError) Unwrap() error { return e.Err }

// GraphError reports an attempt to declare two producing edges for one
// node.
type GraphError struct {
	Path string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("multiple rules generate %q", e.Path)
}
