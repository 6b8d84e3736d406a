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
	"time"

	"github.com/eclesh/welford"

	"github.com/softclock/softclock/clock"
)

type runningStats interface {
	Add(float64)
	Mean() float64
	Stddev() float64
}

// LagStats keeps running statistics of how far the clock trails the tick source
type LagStats struct {
	behind runningStats
	count  int64
	max    uint32
}

// NewLagStats returns empty LagStats
func NewLagStats() *LagStats {
	return &LagStats{behind: welford.New()}
}

// Add records one Behind reading in milliseconds
func (l *LagStats) Add(behindMS uint32) {
	l.behind.Add(float64(behindMS))
	l.count++
	if behindMS > l.max {
		l.max = behindMS
	}
}

// Count returns the number of readings
func (l *LagStats) Count() int64 {
	return l.count
}

// MeanMS returns mean reading
func (l *LagStats) MeanMS() float64 {
	return l.behind.Mean()
}

// StddevMS returns standard deviation of readings
func (l *LagStats) StddevMS() float64 {
	return l.behind.Stddev()
}

// MaxMS returns the largest reading
func (l *LagStats) MaxMS() uint32 {
	return l.max
}

// Lag converts a Behind reading into how late the clock is.
// Up to one second behind is on time, the next second is not due yet.
func Lag(behindMS uint32) time.Duration {
	if behindMS <= clock.MillisPerSecond {
		return 0
	}
	return time.Duration(behindMS-clock.MillisPerSecond) * time.Millisecond
}
