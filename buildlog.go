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
	"bufio"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
)

// LogEntry records a hash of the command string used to produce an output
// the last time it was successfully built.
type LogEntry struct {
	Output      string
	CommandHash uint64
	Mtime       TimeStamp
}

// HashCommand hashes a command string for cheap equality comparison in the
// log, rather than storing the (potentially long) command text itself.
// fnv-1a is used rather than a bespoke hash: there is no non-cryptographic
// hash library anywhere in the example corpus, and hash/fnv is the standard
// library's own answer to exactly this "short stable digest" need.
func HashCommand(command string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(command))
	return h.Sum64()
}

// BuildLog is the consumed contract: for any output path, look up the
// command used in the last successful build of it. A missing entry means
// "never built".
type BuildLog interface {
	LookupByOutput(path string) *LogEntry
}

// MemoryBuildLog is a simple in-memory BuildLog, with an optional minimal
// line-oriented on-disk format. It exists so the scan and the CLI have a
// real backing store to exercise; it deliberately does not implement
// ninja's compaction or crash-recovery format (spec.md's persistence
// non-goal).
type MemoryBuildLog struct {
	entries map[string]*LogEntry
}

// NewMemoryBuildLog returns an empty build log.
func NewMemoryBuildLog() *MemoryBuildLog {
	return &MemoryBuildLog{entries: map[string]*LogEntry{}}
}

// LookupByOutput implements BuildLog.
func (l *MemoryBuildLog) LookupByOutput(path string) *LogEntry {
	return l.entries[path]
}

// RecordCommand records the given edge's current command as the one that
// produced output, along with its mtime after the build. This is the
// write side a real scheduler would call after a successful run; the scan
// itself never writes to the log.
func (l *MemoryBuildLog) RecordCommand(edge *Edge, output *Node) {
	l.entries[output.Path()] = &LogEntry{
		Output:      output.Path(),
		CommandHash: HashCommand(edge.EvaluateCommand(true)),
		Mtime:       output.Mtime(),
	}
}

// Load populates the log from the minimal tab-separated format written by
// Save: one "path\thash\tmtime" line per entry. A missing file is not an
// error — it means no log exists yet.
func (l *MemoryBuildLog) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &DepfileIoError{Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return &DepfileParseError{Path: path, Reason: "malformed build log line: " + line}
		}
		hash, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			return &DepfileParseError{Path: path, Reason: "malformed command hash: " + fields[1]}
		}
		mtime, err := strconv.ParseInt(fields[2], 16, 64)
		if err != nil {
			return &DepfileParseError{Path: path, Reason: "malformed mtime: " + fields[2]}
		}
		l.entries[fields[0]] = &LogEntry{Output: fields[0], CommandHash: hash, Mtime: TimeStamp(mtime)}
	}
	return scanner.Err()
}

// Save writes the log out in the minimal tab-separated format Load reads
// back.
func (l *MemoryBuildLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, e := range l.entries {
		if _, err := fmt.Fprintf(w, "%s\t%x\t%x\n", e.Output, e.CommandHash, e.Mtime); err != nil {
			return err
		}
	}
	return w.Flush()
}
