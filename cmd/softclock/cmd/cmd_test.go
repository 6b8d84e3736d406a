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

package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/softclock/softclock/clock"
	"github.com/softclock/softclock/daemon"
)

func defaultSimulateOptions() simulateOptions {
	return simulateOptions{
		seconds:  60,
		polls:    10,
		day:      "Monday",
		rollover: "sunday",
	}
}

func TestSimulateMidnight(t *testing.T) {
	opts := defaultSimulateOptions()
	opts.seconds = 3
	opts.day = "Sunday"
	opts.hour = 23
	opts.minute = 59
	opts.second = 58
	out := &bytes.Buffer{}

	c, applied, err := simulate(out, opts, nil)
	require.NoError(t, err)
	require.Equal(t, 3, applied)
	require.Equal(t, "Sunday, 23:59:59\nMonday, 0:0:0\nMonday, 0:0:1\n", out.String())
	require.True(t, c.SecondDay())
	require.Equal(t, uint32(3000), c.Time())
}

func TestSimulateHour(t *testing.T) {
	opts := defaultSimulateOptions()
	opts.seconds = 3600
	opts.polls = 3
	progressCalls := 0
	c, applied, err := simulate(nil, opts, func(done, total int) {
		progressCalls++
		require.Equal(t, 3600, total)
	})
	require.NoError(t, err)
	require.Equal(t, 3600, applied)
	require.Equal(t, 3600, progressCalls)
	require.Equal(t, "Monday, 1:0:0", c.String())
}

func TestSimulateDaily(t *testing.T) {
	opts := defaultSimulateOptions()
	opts.seconds = 2
	opts.day = "Wed"
	opts.hour = 23
	opts.minute = 59
	opts.second = 59
	opts.rollover = "daily"

	c, _, err := simulate(nil, opts, nil)
	require.NoError(t, err)
	require.Equal(t, clock.Thursday, c.DayOfWeek())
}

func TestSimulateTickWrap(t *testing.T) {
	opts := defaultSimulateOptions()
	opts.seconds = 3
	opts.startTick = math.MaxUint32 - 2500

	// the classic comparison runs ahead while the mark overflows
	_, applied, err := simulate(nil, opts, nil)
	require.NoError(t, err)
	require.Equal(t, 6, applied)

	opts.wrapSafe = true
	c, applied, err := simulate(nil, opts, nil)
	require.NoError(t, err)
	require.Equal(t, 3, applied)
	require.Equal(t, 3, c.Second())
}

func TestSimulateBadOptions(t *testing.T) {
	opts := defaultSimulateOptions()
	opts.polls = 0
	_, _, err := simulate(nil, opts, nil)
	require.Error(t, err)

	opts = defaultSimulateOptions()
	opts.rollover = "yearly"
	_, _, err = simulate(nil, opts, nil)
	require.Error(t, err)

	opts = defaultSimulateOptions()
	opts.day = "Blursday"
	_, _, err = simulate(nil, opts, nil)
	require.Error(t, err)

	opts = defaultSimulateOptions()
	opts.hour = 24
	_, _, err = simulate(nil, opts, nil)
	require.ErrorIs(t, err, clock.ErrOutOfRange)
}

func TestStatusRun(t *testing.T) {
	stats := daemon.NewJSONStats()
	stats.SetCounter(daemon.CounterDay, int64(clock.Friday))
	stats.SetCounter(daemon.CounterHour, 17)
	stats.SetCounter(daemon.CounterMinute, 4)
	stats.SetCounter(daemon.CounterSecond, 9)
	stats.SetCounter(daemon.CounterAdvances, 1234)
	srv := httptest.NewServer(stats.Handler())
	defer srv.Close()

	out := &bytes.Buffer{}
	require.NoError(t, statusRun(out, srv.URL))
	require.Contains(t, out.String(), "Time: Friday, 17:4:9\n")
	require.Contains(t, out.String(), daemon.CounterAdvances)
	require.Contains(t, out.String(), "1234")
}

func TestStatusRunBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()
	require.Error(t, statusRun(&bytes.Buffer{}, srv.URL))

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"not", "a", "map"})
	}))
	defer srv2.Close()
	require.Error(t, statusRun(&bytes.Buffer{}, srv2.URL))
}

func TestOpenOutputStdoutStaysOpen(t *testing.T) {
	cfg := daemon.DefaultConfig()
	cfg.Serial = ""
	out, err := openOutput(cfg)
	require.NoError(t, err)
	require.NoError(t, out.Close())
	_, err = os.Stdout.Stat()
	require.NoError(t, err)
}
