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
	"time"

	"github.com/shirou/gopsutil/host"
)

// Boot counts milliseconds since the host booted
type Boot struct {
	boot time.Time
}

// NewBoot reads the host boot time
func NewBoot() (*Boot, error) {
	secs, err := host.BootTime()
	if err != nil {
		return nil, fmt.Errorf("reading boot time: %w", err)
	}
	return &Boot{boot: time.Unix(int64(secs), 0)}, nil
}

// Millis implements Source
func (b *Boot) Millis() uint32 {
	return uint32(time.Since(b.boot).Milliseconds())
}
