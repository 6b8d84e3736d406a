/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package daemon

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// LogSample has everything we may want to log about one applied second
type LogSample struct {
	Tick      uint32
	Mark      uint32
	BehindMS  uint32
	ElapsedMS uint32
	Line      string
}

var header = []string{
	"tick",
	"mark",
	"behind",
	"elapsed",
	"time",
}

// CSVRecords returns all data from this sample as CSV. Must by synced with `header` variable.
func (s *LogSample) CSVRecords() []string {
	return []string{
		strconv.FormatUint(uint64(s.Tick), 10),
		strconv.FormatUint(uint64(s.Mark), 10),
		strconv.FormatUint(uint64(s.BehindMS), 10),
		strconv.FormatUint(uint64(s.ElapsedMS), 10),
		s.Line,
	}
}

// Logger is something that can store LogSample somewhere
type Logger interface {
	Log(*LogSample) error
}

// CSVLogger logs Sample as CSV into given writer
type CSVLogger struct {
	csvwriter     *csv.Writer
	printedHeader bool
}

// NewCSVLogger returns new CSVLogger
func NewCSVLogger(w io.Writer) *CSVLogger {
	return &CSVLogger{
		csvwriter: csv.NewWriter(w),
	}
}

// Log implements Logger interface
func (l *CSVLogger) Log(s *LogSample) error {
	if !l.printedHeader {
		if err := l.csvwriter.Write(header); err != nil {
			return err
		}
		l.printedHeader = true
	}
	csv := s.CSVRecords()
	if err := l.csvwriter.Write(csv); err != nil {
		return err
	}
	l.csvwriter.Flush()
	return l.csvwriter.Error()
}

// DummyLogger logs behind and elapsed time to given writer
type DummyLogger struct {
	w io.Writer
}

// NewDummyLogger returns new DummyLogger
func NewDummyLogger(w io.Writer) *DummyLogger {
	return &DummyLogger{w: w}
}

// Log implements Logger interface
func (l *DummyLogger) Log(s *LogSample) error {
	_, err := fmt.Fprintf(l.w, "%s: behind = %dms, elapsed = %dms\n", s.Line, s.BehindMS, s.ElapsedMS)
	return err
}
