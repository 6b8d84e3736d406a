//go:build linux

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

package ticksource

import (
	"fmt"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// replaced in tests
var clockGettime = unix.ClockGettime

// Monotonic reads CLOCK_MONOTONIC
type Monotonic struct {
	last   atomic.Uint32
	failed sync.Once
}

// NewMonotonic checks CLOCK_MONOTONIC is readable
func NewMonotonic() (*Monotonic, error) {
	var ts unix.Timespec
	if err := clockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return nil, fmt.Errorf("reading CLOCK_MONOTONIC: %w", err)
	}
	m := &Monotonic{}
	m.last.Store(uint32(ts.Nano() / 1000000))
	return m, nil
}

// Millis implements Source. A failed read returns the last good value.
func (m *Monotonic) Millis() uint32 {
	var ts unix.Timespec
	if err := clockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		m.failed.Do(func() {
			log.Warningf("reading CLOCK_MONOTONIC: %v, repeating last value", err)
		})
		return m.last.Load()
	}
	v := uint32(ts.Nano() / 1000000)
	m.last.Store(v)
	return v
}
