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
	"fmt"
	"strconv"
	"time"
)

// Weekday specifies a day of the week, 1 is Monday and 7 is Sunday
type Weekday int

// Days of the week
const (
	Monday    Weekday = 1
	Tuesday   Weekday = 2
	Wednesday Weekday = 3
	Thursday  Weekday = 4
	Friday    Weekday = 5
	Saturday  Weekday = 6
	Sunday    Weekday = 7
)

// DaysPerWeek is the number of days in a week
const DaysPerWeek = 7

var dayNames = [DaysPerWeek + 1]string{
	"",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// String returns the English name of the day
func (d Weekday) String() string {
	if d.Valid() {
		return dayNames[d]
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// Valid checks whether d is within Monday..Sunday
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// WeekdayFromTime converts time.Weekday, which starts at Sunday=0
func WeekdayFromTime(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

// ParseWeekday returns a day by its name or number
func ParseWeekday(s string) (Weekday, error) {
	for i := Monday; i <= Sunday; i++ {
		if dayNames[i] == s || dayNames[i][:3] == s {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Weekday(n).Valid() {
		return Weekday(n), nil
	}
	return 0, fmt.Errorf("unknown day of week %q", s)
}
