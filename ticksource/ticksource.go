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

/*
Package ticksource provides free-running millisecond counters for the clock package.

Every source truncates its reading to 32 bits, so it wraps around after about 49.7 days
just like a microcontroller millis() counter.
*/
package ticksource

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Source names accepted by ByName
const (
	NameProcess   = "process"
	NameMonotonic = "monotonic"
	NameBoot      = "boot"
	NameSim       = "sim"
)

// Source is a free-running millisecond counter
type Source interface {
	Millis() uint32
}

// Func adapts a plain function to Source
type Func func() uint32

// Millis implements Source
func (f Func) Millis() uint32 {
	return f()
}

// Process counts milliseconds since it was created
type Process struct {
	start time.Time
}

// NewProcess returns a Process counting from now
func NewProcess() *Process {
	return &Process{start: time.Now()}
}

// Millis implements Source
func (p *Process) Millis() uint32 {
	return uint32(time.Since(p.start).Milliseconds())
}

// Sim is a simulated counter which only moves when told to. It is safe for concurrent use.
type Sim struct {
	now atomic.Uint32
}

// NewSim returns a Sim starting at start
func NewSim(start uint32) *Sim {
	s := &Sim{}
	s.now.Store(start)
	return s
}

// Millis implements Source
func (s *Sim) Millis() uint32 {
	return s.now.Load()
}

// Set sets the counter
func (s *Sim) Set(ms uint32) {
	s.now.Store(ms)
}

// Add moves the counter forward, wrapping around at 2^32
func (s *Sim) Add(ms uint32) uint32 {
	return s.now.Add(ms)
}

// ByName returns a source by name
func ByName(name string) (Source, error) {
	switch name {
	case NameProcess:
		return NewProcess(), nil
	case NameMonotonic:
		m, err := NewMonotonic()
		if err != nil {
			return nil, err
		}
		return m, nil
	case NameBoot:
		b, err := NewBoot()
		if err != nil {
			return nil, err
		}
		return b, nil
	case NameSim:
		return NewSim(0), nil
	}
	return nil, fmt.Errorf("unknown tick source %q", name)
}
