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
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a field is outside of its range
var ErrOutOfRange = errors.New("value out of range")

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d is not within [%d, %d]: %w", name, v, lo, hi, ErrOutOfRange)
	}
	return nil
}

// ValidateFields checks day, hour, minute and second against their ranges
func ValidateFields(day Weekday, hour, minute, second int) error {
	if err := checkRange("day of week", int(day), int(Monday), int(Sunday)); err != nil {
		return err
	}
	if err := checkRange("hour", hour, 0, HoursPerDay-1); err != nil {
		return err
	}
	if err := checkRange("minute", minute, 0, MinutesPerHour-1); err != nil {
		return err
	}
	return checkRange("second", second, 0, SecondsPerMinute-1)
}

// Validate returns an error if any field went out of range,
// which can only happen after unchecked setters were used.
func (c *Clock) Validate() error {
	return ValidateFields(c.dayOfWeek, c.hour, c.minute, c.second)
}

// SetClock sets all fields at once. Nothing is changed if any value is out of range.
func (c *Clock) SetClock(day Weekday, hour, minute, second int) error {
	if err := ValidateFields(day, hour, minute, second); err != nil {
		return err
	}
	c.dayOfWeek = day
	c.hour = hour
	c.minute = minute
	c.second = second
	return nil
}
