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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	s := NewStats()
	s.UpdateCounterBy(CounterPolls, 2)
	s.UpdateCounterBy(CounterPolls, 3)
	s.SetCounter(CounterHour, 23)
	require.Equal(t, map[string]int64{CounterPolls: 5, CounterHour: 23}, s.Get())

	// a copy
	got := s.Get()
	got[CounterPolls] = 42
	require.Equal(t, int64(5), s.Get()[CounterPolls])

	s.Reset()
	require.Equal(t, map[string]int64{CounterPolls: 0, CounterHour: 0}, s.Get())
}

func TestJSONStatsHandler(t *testing.T) {
	s := NewJSONStats()
	s.SetCounter(CounterAdvances, 7)
	s.SetCounter(CounterDay, 3)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	got := map[string]int64{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, map[string]int64{CounterAdvances: 7, CounterDay: 3}, got)
}

func TestPrometheusExporter(t *testing.T) {
	s := NewStats()
	s.SetCounter(CounterPolls, 3)
	s.SetCounter(CounterLagMS, 250)
	e := NewPrometheusExporter(s, 0, time.Second)

	e.scrapeMetrics()
	s.SetCounter(CounterPolls, 4)
	// already registered gauges are reused
	e.scrapeMetrics()

	srv := httptest.NewServer(e.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "softclock_clock_polls 4")
	require.Contains(t, string(body), "softclock_clock_lag_ms 250")
}

func TestFlattenKey(t *testing.T) {
	require.Equal(t, "softclock_clock_behind_ms", flattenKey(CounterBehindMS))
	require.Equal(t, "softclock_a_b_c_d_e_f", flattenKey("a b.c-d=e/f"))
}

func TestServeHTTPShutdown(t *testing.T) {
	s := NewJSONStats()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- s.Serve(ctx, 0)
	}()
	cancel()
	require.NoError(t, <-done)
}
