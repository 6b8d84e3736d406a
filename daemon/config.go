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
	"fmt"
	"os"
	"path/filepath"
	"time"

	ini "github.com/go-ini/ini"
	yaml "gopkg.in/yaml.v2"

	"github.com/softclock/softclock/clock"
	"github.com/softclock/softclock/ticksource"
)

// Defaults used by DefaultConfig and by cli flags
const (
	DefaultPollInterval   = 100 * time.Millisecond
	DefaultMaxLag         = 2 * time.Second
	DefaultMonitoringPort = 21042
)

// Start is the time the clock starts from
type Start struct {
	Day    string `yaml:"day" ini:"day"`
	Hour   int    `yaml:"hour" ini:"hour"`
	Minute int    `yaml:"minute" ini:"minute"`
	Second int    `yaml:"second" ini:"second"`
}

// Config represents configuration we expect to read from file
type Config struct {
	Source         string        `yaml:"source" ini:"source"`                 // tick source name
	PollInterval   time.Duration `yaml:"pollinterval" ini:"pollinterval"`     // how often we poll the clock, at most a second
	Rollover       string        `yaml:"rollover" ini:"rollover"`             // "sunday" or "daily"
	WrapSafe       bool          `yaml:"wrapsafe" ini:"wrapsafe"`             // modular tick comparison
	Serial         string        `yaml:"serial" ini:"serial"`                 // serial console device, empty means stdout
	Baud           int           `yaml:"baud" ini:"baud"`                     // serial console baud rate
	StartFromHost  bool          `yaml:"startfromhost" ini:"startfromhost"`   // take the start time from the host clock
	Start          Start         `yaml:"start" ini:"start"`                   // start time unless StartFromHost
	MaxLag         time.Duration `yaml:"maxlag" ini:"maxlag"`                 // warn when the clock trails the tick source by more, 0 disables
	MonitoringPort int           `yaml:"monitoringport" ini:"monitoringport"` // JSON stats, 0 disables
	MetricsPort    int           `yaml:"metricsport" ini:"metricsport"`       // prometheus metrics, 0 disables

	rollover clock.DayRollover
	startDay clock.Weekday
}

// DefaultConfig returns config with sane defaults
func DefaultConfig() *Config {
	return &Config{
		Source:         ticksource.NameMonotonic,
		PollInterval:   DefaultPollInterval,
		Rollover:       clock.RolloverSundayOnly.String(),
		Baud:           9600,
		MaxLag:         DefaultMaxLag,
		MonitoringPort: DefaultMonitoringPort,
	}
}

// ParseRollover converts rollover name to clock.DayRollover
func ParseRollover(s string) (clock.DayRollover, error) {
	switch s {
	case clock.RolloverSundayOnly.String(), "":
		return clock.RolloverSundayOnly, nil
	case clock.RolloverDaily.String():
		return clock.RolloverDaily, nil
	}
	return 0, fmt.Errorf("unknown rollover %q", s)
}

// EvalAndValidate makes sure config is valid and evaluates values for further use.
func (c *Config) EvalAndValidate() error {
	switch c.Source {
	case ticksource.NameProcess, ticksource.NameMonotonic, ticksource.NameBoot, ticksource.NameSim:
	default:
		return fmt.Errorf("bad config: unknown 'source' %q", c.Source)
	}
	if c.PollInterval <= 0 || c.PollInterval > time.Second {
		return fmt.Errorf("bad config: 'pollinterval' must be between 0 and 1 second")
	}
	r, err := ParseRollover(c.Rollover)
	if err != nil {
		return fmt.Errorf("bad config: %w", err)
	}
	c.rollover = r
	if c.MaxLag < 0 {
		return fmt.Errorf("bad config: 'maxlag' must be positive")
	}
	if c.Serial != "" && c.Baud <= 0 {
		return fmt.Errorf("bad config: 'baud' must be >0")
	}
	if c.StartFromHost {
		return nil
	}
	c.startDay = clock.Monday
	if c.Start.Day != "" {
		if c.startDay, err = clock.ParseWeekday(c.Start.Day); err != nil {
			return fmt.Errorf("bad config: %w", err)
		}
	}
	if err := clock.ValidateFields(c.startDay, c.Start.Hour, c.Start.Minute, c.Start.Second); err != nil {
		return fmt.Errorf("bad config: %w", err)
	}
	return nil
}

// ClockConfig returns evaluated clock configuration
func (c *Config) ClockConfig() clock.Config {
	return clock.Config{
		Rollover: c.rollover,
		WrapSafe: c.WrapSafe,
	}
}

// ReadConfig reads config and unmarshals it from yaml into Config.
// Files ending with .ini are read as ini.
func ReadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if filepath.Ext(path) == ".ini" {
		if err := readINI(c, path); err != nil {
			return nil, fmt.Errorf("reading ini config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.UnmarshalStrict(data, c)
	return c, err
}

// readINI maps the file onto c. MapTo skips zero durations, so those keys are read explicitly.
func readINI(c *Config, path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return err
	}
	if err := f.MapTo(c); err != nil {
		return err
	}
	sec := f.Section("")
	for name, dst := range map[string]*time.Duration{
		"pollinterval": &c.PollInterval,
		"maxlag":       &c.MaxLag,
	} {
		if !sec.HasKey(name) {
			continue
		}
		v, err := sec.Key(name).Duration()
		if err != nil {
			return fmt.Errorf("parsing %q: %w", name, err)
		}
		*dst = v
	}
	return nil
}
