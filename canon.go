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

// CanonicalizePath normalizes a path the way manifest and depfile text
// reference files, so that "./foo/../a.h" and "a.h" name the same Node.
//
// It collapses "//" to "/", strips a leading "./", resolves "x/../" segments
// lexically (no symlink awareness), and drops a trailing "/.". It never
// touches the filesystem.
func CanonicalizePath(path string) string {
	if path == "" {
		return path
	}
	path = strings.ReplaceAll(path, "\\", "/")

	// Preserve a leading "//" (network path) but collapse any further
	// repeated separators.
	rooted := strings.HasPrefix(path, "/")
	networkPath := rooted && strings.HasPrefix(path, "//") && !strings.HasPrefix(path, "///")

	parts := strings.Split(path, "/")
	components := make([]string, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			// Leading/trailing/doubled slash; skip, the rootedness is tracked
			// separately above.
			_ = i
			continue
		}
		if p == "." {
			continue
		}
		if p == ".." {
			if len(components) > 0 && components[len(components)-1] != ".." {
				components = components[:len(components)-1]
				continue
			}
			if rooted {
				// ".." past the root is discarded lexically.
				continue
			}
			components = append(components, p)
			continue
		}
		components = append(components, p)
	}

	result := strings.Join(components, "/")
	if rooted {
		if networkPath {
			result = "//" + result
		} else {
			result = "/" + result
		}
	}
	if result == "" {
		result = "."
	}
	return result
}
