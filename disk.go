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
	"os"
)

// ReadStatus is the outcome of a DiskInterface.ReadFile call.
type ReadStatus int

const (
	Okay ReadStatus = iota
	NotFound
	OtherError
)

// DiskInterface abstracts the filesystem so the core can be driven against
// a virtual filesystem in tests. Stat returns 0 for "file does not exist";
// a non-nil error means a hard failure (permissions, I/O error, etc), never
// plain absence.
type DiskInterface interface {
	Stat(path string) (TimeStamp, error)
	ReadFile(path string) (contents string, status ReadStatus, err error)
	WriteFile(path, contents string) error
	MakeDirs(path string) error
	// RemoveFile returns 0 if the file was removed, 1 if it was already
	// absent, and a non-nil error on a hard failure.
	RemoveFile(path string) (int, error)
}

// RealDiskInterface implements DiskInterface against the real filesystem.
type RealDiskInterface struct{}

// NewRealDiskInterface returns a DiskInterface backed by the OS.
func NewRealDiskInterface() *RealDiskInterface {
	return &RealDiskInterface{}
}

func (RealDiskInterface) Stat(path string) (TimeStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return TimeStamp(info.ModTime().UnixNano()), nil
}

func (RealDiskInterface) ReadFile(path string) (string, ReadStatus, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NotFound, nil
		}
		return "", OtherError, err
	}
	return string(b), Okay, nil
}

func (RealDiskInterface) WriteFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o666)
}

func (RealDiskInterface) MakeDirs(path string) error {
	return os.MkdirAll(path, 0o777)
}

func (RealDiskInterface) RemoveFile(path string) (int, error) {
	err := os.Remove(path)
	if err == nil {
		return 0, nil
	}
	if os.IsNotExist(err) {
		return 1, nil
	}
	return -1, err
}
