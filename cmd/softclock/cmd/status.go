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
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/softclock/softclock/clock"
	"github.com/softclock/softclock/daemon"
)

var (
	statusAddressFlag string
	statusPortFlag    int
)

func init() {
	RootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusAddressFlag, "address", "a", "127.0.0.1", "address to connect to")
	statusCmd.Flags().IntVarP(&statusPortFlag, "port", "p", daemon.DefaultMonitoringPort, "port to connect to")
}

func fetchCounters(url string) (map[string]int64, error) {
	c := http.Client{Timeout: 2 * time.Second}
	resp, err := c.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching counters: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching counters: %s", resp.Status)
	}
	counters := map[string]int64{}
	if err := json.NewDecoder(resp.Body).Decode(&counters); err != nil {
		return nil, fmt.Errorf("decoding counters: %w", err)
	}
	return counters, nil
}

func statusRun(w io.Writer, url string) error {
	counters, err := fetchCounters(url)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Time: %s, %d:%d:%d\n",
		clock.Weekday(counters[daemon.CounterDay]),
		counters[daemon.CounterHour],
		counters[daemon.CounterMinute],
		counters[daemon.CounterSecond],
	)

	keys := maps.Keys(counters)
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("counter", "value")
	for _, k := range keys {
		if err := table.Append([]string{k, fmt.Sprint(counters[k])}); err != nil {
			return err
		}
	}
	return table.Render()
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print counters of a running softclock",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		url := fmt.Sprintf("http://%s/", net.JoinHostPort(statusAddressFlag, fmt.Sprint(statusPortFlag)))
		if err := statusRun(os.Stdout, url); err != nil {
			log.Fatal(err)
		}
	},
}
