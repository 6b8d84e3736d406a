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

package clock

import (
	"bytes"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Units used by the clock
const (
	MillisPerSecond  = 1000
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
)

// TickSource is a free-running millisecond counter.
// It must not decrease except when it wraps around at 2^32.
type TickSource interface {
	Millis() uint32
}

// DayRollover selects how the day of week advances on midnight
type DayRollover uint8

// Supported day rollover modes
const (
	// RolloverSundayOnly only moves the day forward when it is Sunday,
	// so Monday..Saturday stay put across midnight.
	RolloverSundayOnly DayRollover = iota
	// RolloverDaily moves the day forward on every midnight.
	RolloverDaily
)

func (r DayRollover) String() string {
	switch r {
	case RolloverSundayOnly:
		return "sunday"
	case RolloverDaily:
		return "daily"
	}
	return "UNSUPPORTED"
}

// Config tunes the clock. The zero value reproduces the classic behaviour.
type Config struct {
	Rollover DayRollover
	// WrapSafe compares ticks with modular arithmetic, so the clock keeps
	// stepping once per second across the 2^32 wrap of the tick source.
	WrapSafe bool
}

// Clock tracks day of week, hour, minute and second based on a TickSource.
// It is not safe for concurrent use.
type Clock struct {
	cfg    Config
	source TickSource
	out    io.Writer

	time  uint32 // milliseconds accumulated by applied seconds
	ticks uint32 // last mark of the tick source

	second    int
	minute    int
	hour      int
	dayOfWeek Weekday

	secondDay         bool
	thirdDay          bool
	dayBeforeThirdDay bool

	buf bytes.Buffer
}

// New returns a Clock at Monday 0:0:0 with the mark set to the current tick.
// Lines are written to out, nil out makes the clock silent.
func New(source TickSource, out io.Writer, cfg Config) *Clock {
	if out == nil {
		out = io.Discard
	}
	return &Clock{
		cfg:       cfg,
		source:    source,
		out:       out,
		ticks:     source.Millis(),
		dayOfWeek: Monday,
	}
}

// SetTime sets the accumulated time in milliseconds
func (c *Clock) SetTime(ms uint32) {
	c.time = ms
}

// Time returns the accumulated time in milliseconds
func (c *Clock) Time() uint32 {
	return c.time
}

// SetDayOfWeek sets the day of week. The value is not checked.
func (c *Clock) SetDayOfWeek(d Weekday) {
	c.dayOfWeek = d
}

// DayOfWeek returns the day of week
func (c *Clock) DayOfWeek() Weekday {
	return c.dayOfWeek
}

// SetHour sets the hour. The value is not checked.
func (c *Clock) SetHour(hour int) {
	c.hour = hour
}

// Hour returns the hour in 24 hour format
func (c *Clock) Hour() int {
	return c.hour
}

// SetMinute sets the minute. The value is not checked.
func (c *Clock) SetMinute(minute int) {
	c.minute = minute
}

// Minute returns the minute
func (c *Clock) Minute() int {
	return c.minute
}

// SetSecond sets the second. The value is not checked.
func (c *Clock) SetSecond(second int) {
	c.second = second
}

// Second returns the second
func (c *Clock) Second() int {
	return c.second
}

// SecondDay flips on every day rollover
func (c *Clock) SecondDay() bool {
	return c.secondDay
}

// ThirdDay reports the third day flag
func (c *Clock) ThirdDay() bool {
	return c.thirdDay
}

// DayBeforeThirdDay reports the day before third day flag
func (c *Clock) DayBeforeThirdDay() bool {
	return c.dayBeforeThirdDay
}

// Mark returns the tick value the next second is counted from
func (c *Clock) Mark() uint32 {
	return c.ticks
}

// Behind returns how many ticks passed since the mark
func (c *Clock) Behind() uint32 {
	return c.source.Millis() - c.ticks
}

// Advance applies one second if more than MillisPerSecond ticks passed since the mark.
// The mark moves by exactly one second, so a clock polled too rarely stays behind.
// It returns true when a second was applied.
func (c *Clock) Advance() bool {
	return c.AdvanceAt(c.source.Millis())
}

// AdvanceAt is Advance with a tick reading taken by the caller
func (c *Clock) AdvanceAt(now uint32) bool {
	if !c.due(now) {
		return false
	}
	c.ticks += MillisPerSecond
	c.addSecond()
	c.printTime()
	return true
}

func (c *Clock) due(now uint32) bool {
	if c.cfg.WrapSafe {
		return now-c.ticks > MillisPerSecond
	}
	// overflows when the mark is within a second of the wrap
	return c.ticks+MillisPerSecond < now
}

// String formats the time as "<day>, <hour>:<minute>:<second>"
func (c *Clock) String() string {
	var b bytes.Buffer
	c.appendTime(&b)
	return b.String()
}

func (c *Clock) appendTime(b *bytes.Buffer) {
	b.WriteString(c.dayOfWeek.String())
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(c.hour))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(c.minute))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(c.second))
}

func (c *Clock) printTime() {
	c.buf.Reset()
	c.appendTime(&c.buf)
	c.buf.WriteByte('\n')
	if _, err := c.out.Write(c.buf.Bytes()); err != nil {
		log.Warningf("writing time line: %v", err)
	}
}
