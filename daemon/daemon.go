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
	"context"
	"io"
	"time"

	sdaemon "github.com/coreos/go-systemd/daemon"
	log "github.com/sirupsen/logrus"

	"github.com/softclock/softclock/clock"
)

// timeNow is used for StartFromHost
var timeNow = time.Now

// Daemon drives the clock from a tick source
type Daemon struct {
	cfg    *Config
	source clock.TickSource
	clock  *clock.Clock
	stats  StatsServer
	l      Logger
	lag    *LagStats

	lagging bool
}

// errorCountingWriter counts failed writes of time lines
type errorCountingWriter struct {
	w     io.Writer
	stats StatsServer
}

func (w *errorCountingWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		w.stats.UpdateCounterBy(CounterOutputErr, 1)
	}
	return n, err
}

// New creates a Daemon with a clock set to the configured start time.
// Time lines go to out, samples go to l which may be nil.
func New(cfg *Config, source clock.TickSource, out io.Writer, stats StatsServer, l Logger) (*Daemon, error) {
	if err := cfg.EvalAndValidate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	d := &Daemon{
		cfg:    cfg,
		source: source,
		stats:  stats,
		l:      l,
		lag:    NewLagStats(),
	}
	d.clock = clock.New(source, &errorCountingWriter{w: out, stats: stats}, cfg.ClockConfig())

	if cfg.StartFromHost {
		now := timeNow()
		if err := d.clock.SetClock(clock.WeekdayFromTime(now.Weekday()), now.Hour(), now.Minute(), now.Second()); err != nil {
			return nil, err
		}
	} else if err := d.clock.SetClock(cfg.startDay, cfg.Start.Hour, cfg.Start.Minute, cfg.Start.Second); err != nil {
		return nil, err
	}
	log.Debugf("clock starts at %s, tick %d", d.clock, d.clock.Mark())
	d.updateClockCounters()
	return d, nil
}

// Clock returns the clock driven by the daemon
func (d *Daemon) Clock() *clock.Clock {
	return d.clock
}

// LagStats returns statistics of Behind readings
func (d *Daemon) LagStats() *LagStats {
	return d.lag
}

// Poll advances the clock once and updates stats. It returns true when a second was applied.
// The tick source is read once per poll.
func (d *Daemon) Poll() bool {
	now := d.source.Millis()
	advanced := d.clock.AdvanceAt(now)
	behind := now - d.clock.Mark()
	d.lag.Add(behind)

	d.stats.UpdateCounterBy(CounterPolls, 1)
	d.stats.SetCounter(CounterBehindMS, int64(behind))
	if advanced {
		d.stats.UpdateCounterBy(CounterAdvances, 1)
		d.updateClockCounters()
		if d.l != nil {
			sample := &LogSample{
				Tick:      now,
				Mark:      d.clock.Mark(),
				BehindMS:  behind,
				ElapsedMS: d.clock.Time(),
				Line:      d.clock.String(),
			}
			if err := d.l.Log(sample); err != nil {
				log.Errorf("logging sample: %v", err)
			}
		}
	}
	d.checkLag(Lag(behind))
	return advanced
}

func (d *Daemon) updateClockCounters() {
	d.stats.SetCounter(CounterDay, int64(d.clock.DayOfWeek()))
	d.stats.SetCounter(CounterHour, int64(d.clock.Hour()))
	d.stats.SetCounter(CounterMinute, int64(d.clock.Minute()))
	d.stats.SetCounter(CounterSecond, int64(d.clock.Second()))
	d.stats.SetCounter(CounterElapsedMS, int64(d.clock.Time()))
}

func (d *Daemon) checkLag(lag time.Duration) {
	d.stats.SetCounter(CounterLagMS, lag.Milliseconds())
	if d.cfg.MaxLag == 0 {
		return
	}
	if lag > d.cfg.MaxLag {
		if !d.lagging {
			log.Warningf("clock is %v behind the tick source, it must be polled at least once per second", lag)
			d.lagging = true
			d.stats.SetCounter(CounterLagging, 1)
		}
		return
	}
	if d.lagging {
		log.Infof("clock caught up with the tick source")
		d.lagging = false
		d.stats.SetCounter(CounterLagging, 0)
	}
}

// Run polls the clock every PollInterval until ctx is done
func (d *Daemon) Run(ctx context.Context) error {
	if ok, err := sdaemon.SdNotify(false, sdaemon.SdNotifyReady); err != nil {
		log.Warningf("notifying systemd: %v", err)
	} else if ok {
		log.Debug("notified systemd we are ready")
	}

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infof("stopping clock at %s, mean behind %.1fms, max %dms", d.clock, d.lag.MeanMS(), d.lag.MaxMS())
			return nil
		case <-ticker.C:
			d.Poll()
		}
	}
}
