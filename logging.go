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
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// explainer traces why the scan considered something dirty, mirroring the
// original C++ source's EXPLAIN() macro (never ported to the Go teacher
// snapshot). It's a thin wrapper over a *log.Logger rather than a bespoke
// print function, so callers get the usual leveled/structured behavior
// (timestamps, field attachment, -v wiring) for free.
type explainer struct {
	logger *log.Logger
	scanID string
}

// newExplainer returns an explainer that tags every line with a fresh scan
// correlation ID. A nil logger is valid and silently discards everything,
// so tests that don't care about tracing can pass one in without setting
// up a sink.
func newExplainer(logger *log.Logger) *explainer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &explainer{logger: logger, scanID: uuid.NewString()}
}

func (x *explainer) explain(format string, args ...any) {
	if x == nil || x.logger == nil {
		return
	}
	x.logger.With("scan", x.scanID).Debugf(format, args...)
}
