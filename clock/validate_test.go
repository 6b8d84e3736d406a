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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekdayString(t *testing.T) {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, name := range names {
		require.Equal(t, name, Weekday(i+1).String())
	}
	require.Equal(t, "Weekday(0)", Weekday(0).String())
	require.Equal(t, "Weekday(8)", Weekday(8).String())
	require.False(t, Weekday(0).Valid())
	require.True(t, Sunday.Valid())
}

func TestWeekdayFromTime(t *testing.T) {
	require.Equal(t, Sunday, WeekdayFromTime(time.Sunday))
	require.Equal(t, Monday, WeekdayFromTime(time.Monday))
	require.Equal(t, Saturday, WeekdayFromTime(time.Saturday))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Tuesday")
	require.NoError(t, err)
	require.Equal(t, Tuesday, d)

	d, err = ParseWeekday("Sun")
	require.NoError(t, err)
	require.Equal(t, Sunday, d)

	d, err = ParseWeekday("5")
	require.NoError(t, err)
	require.Equal(t, Friday, d)

	_, err = ParseWeekday("8")
	require.Error(t, err)
	_, err = ParseWeekday("Caturday")
	require.Error(t, err)
}

func TestDayRolloverString(t *testing.T) {
	require.Equal(t, "sunday", RolloverSundayOnly.String())
	require.Equal(t, "daily", RolloverDaily.String())
	require.Equal(t, "UNSUPPORTED", DayRollover(42).String())
}

func TestValidate(t *testing.T) {
	c := New(&fakeTicks{}, nil, Config{})
	require.NoError(t, c.Validate())

	c.SetHour(24)
	require.ErrorIs(t, c.Validate(), ErrOutOfRange)
	require.EqualError(t, c.Validate(), "hour 24 is not within [0, 23]: value out of range")

	c.SetHour(0)
	c.SetDayOfWeek(0)
	require.ErrorIs(t, c.Validate(), ErrOutOfRange)
}

func TestSetClock(t *testing.T) {
	c := New(&fakeTicks{}, nil, Config{})
	require.NoError(t, c.SetClock(Thursday, 12, 30, 45))
	require.Equal(t, "Thursday, 12:30:45", c.String())

	err := c.SetClock(Friday, 1, 60, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.EqualError(t, err, "minute 60 is not within [0, 59]: value out of range")
	// untouched
	require.Equal(t, "Thursday, 12:30:45", c.String())

	require.ErrorIs(t, c.SetClock(Monday, 0, 0, -1), ErrOutOfRange)
}
