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

import "errors"

// virtualFileSystemEntry is a single in-memory file.
type virtualFileSystemEntry struct {
	mtime    TimeStamp
	contents string
}

// virtualFileSystem is an in-memory DiskInterface implementation for tests,
// so scenarios can be built from literal (path, mtime, contents) tuples
// without touching the real filesystem.
type virtualFileSystem struct {
	files map[string]virtualFileSystemEntry

	filesRead    []string
	dirsMade     []string
	statCalls    []string
}

func newVirtualFileSystem() *virtualFileSystem {
	return &virtualFileSystem{files: map[string]virtualFileSystemEntry{}}
}

// Create adds or overwrites a file at the given (fake) mtime.
func (v *virtualFileSystem) Create(path string, mtime TimeStamp, contents string) {
	v.files[path] = virtualFileSystemEntry{mtime: mtime, contents: contents}
}

func (v *virtualFileSystem) Stat(path string) (TimeStamp, error) {
	v.statCalls = append(v.statCalls, path)
	if e, ok := v.files[path]; ok {
		return e.mtime, nil
	}
	return 0, nil
}

func (v *virtualFileSystem) ReadFile(path string) (string, ReadStatus, error) {
	v.filesRead = append(v.filesRead, path)
	e, ok := v.files[path]
	if !ok {
		return "", NotFound, nil
	}
	return e.contents, Okay, nil
}

func (v *virtualFileSystem) WriteFile(path, contents string) error {
	v.files[path] = virtualFileSystemEntry{mtime: v.nextMtime(), contents: contents}
	return nil
}

func (v *virtualFileSystem) MakeDirs(path string) error {
	v.dirsMade = append(v.dirsMade, path)
	return nil
}

func (v *virtualFileSystem) RemoveFile(path string) (int, error) {
	if _, ok := v.files[path]; !ok {
		return 1, nil
	}
	delete(v.files, path)
	return 0, nil
}

func (v *virtualFileSystem) nextMtime() TimeStamp {
	var max TimeStamp
	for _, e := range v.files {
		if e.mtime > max {
			max = e.mtime
		}
	}
	return max + 1
}

// statErrorDisk wraps a virtualFileSystem and forces Stat to fail for a
// chosen path, for exercising StatError propagation.
type statErrorDisk struct {
	*virtualFileSystem
	failPath string
}

func (d *statErrorDisk) Stat(path string) (TimeStamp, error) {
	if path == d.failPath {
		return 0, errors.New("simulated stat failure")
	}
	return d.virtualFileSystem.Stat(path)
}

var _ DiskInterface = (*virtualFileSystem)(nil)
var _ DiskInterface = (*statErrorDisk)(nil)
