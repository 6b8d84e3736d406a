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

func (c *Clock) addSecond() {
	c.second++
	if c.second == SecondsPerMinute {
		c.second = 0
		c.addMinute()
	}
	c.time += MillisPerSecond
}

func (c *Clock) addMinute() {
	c.minute++
	if c.minute == MinutesPerHour {
		c.minute = 0
		c.addHour()
	}
}

func (c *Clock) addHour() {
	c.hour++
	if c.hour == HoursPerDay {
		c.hour = 0
		c.addDay()
	}
}

func (c *Clock) addDay() {
	if c.dayOfWeek != Sunday {
		if c.cfg.Rollover == RolloverDaily {
			c.dayOfWeek++
			c.flipDays()
		}
		return
	}
	c.dayOfWeek = Monday
	c.flipDays()
}

// flipDays updates the every second and every third day flags
func (c *Clock) flipDays() {
	c.secondDay = !c.secondDay

	if c.thirdDay {
		c.thirdDay = false
	}
	if c.dayBeforeThirdDay && !c.thirdDay {
		c.thirdDay = true
		c.dayBeforeThirdDay = false
	} else {
		c.dayBeforeThirdDay = true
	}
}
