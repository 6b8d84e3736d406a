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
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/softclock/softclock/console"
	"github.com/softclock/softclock/daemon"
	"github.com/softclock/softclock/ticksource"
)

var (
	runCfg     = daemon.DefaultConfig()
	runCfgPath string
	runCSVLog  bool
	runCSVPath string
)

func init() {
	RootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVar(&runCfgPath, "cfg", "", "Path to config, flag values are ignored when set")
	f.StringVarP(&runCfg.Source, "source", "s", runCfg.Source, "Tick source: process, monotonic, boot or sim")
	f.DurationVarP(&runCfg.PollInterval, "interval", "i", runCfg.PollInterval, "How often the clock is polled, at most 1s")
	f.StringVar(&runCfg.Rollover, "rollover", runCfg.Rollover, "Day rollover: sunday keeps Monday..Saturday across midnight, daily advances every day")
	f.BoolVar(&runCfg.WrapSafe, "wrapsafe", false, "Compare ticks modulo 2^32")
	f.StringVar(&runCfg.Serial, "serial", "", "Serial console device to write time to, stdout if empty")
	f.IntVar(&runCfg.Baud, "baud", runCfg.Baud, "Serial console baud rate")
	f.BoolVar(&runCfg.StartFromHost, "fromhost", false, "Start from the host local time")
	f.StringVar(&runCfg.Start.Day, "day", "Monday", "Start day of week")
	f.IntVar(&runCfg.Start.Hour, "hour", 0, "Start hour")
	f.IntVar(&runCfg.Start.Minute, "minute", 0, "Start minute")
	f.IntVar(&runCfg.Start.Second, "second", 0, "Start second")
	f.DurationVar(&runCfg.MaxLag, "maxlag", runCfg.MaxLag, "Warn when the clock trails the tick source by more than this, 0 disables")
	f.IntVar(&runCfg.MonitoringPort, "monitoringport", runCfg.MonitoringPort, "Port to serve JSON stats on, 0 disables")
	f.IntVar(&runCfg.MetricsPort, "metricsport", 0, "Port to serve prometheus metrics on, 0 disables")
	f.BoolVar(&runCSVLog, "csvlog", false, "Log every applied second as CSV")
	f.StringVar(&runCSVPath, "csvpath", "", "write CSV log into this file")
}

// stdoutSink keeps os.Stdout open when the daemon closes its output
type stdoutSink struct {
	io.Writer
}

func (stdoutSink) Close() error { return nil }

func openOutput(cfg *daemon.Config) (io.WriteCloser, error) {
	if cfg.Serial == "" {
		return stdoutSink{os.Stdout}, nil
	}
	return console.OpenSerial(cfg.Serial, cfg.Baud)
}

func runDaemon(cfg *daemon.Config) error {
	if err := cfg.EvalAndValidate(); err != nil {
		return err
	}
	log.Debugf("Config: %+v", *cfg)

	source, err := ticksource.ByName(cfg.Source)
	if err != nil {
		return err
	}
	out, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer out.Close()

	// set up sample logging
	var l daemon.Logger
	if runCSVLog {
		w := log.StandardLogger().Writer()
		defer w.Close()
		csvW := io.Writer(w)
		if runCSVPath != "" {
			f, err := os.Create(runCSVPath)
			if err != nil {
				return err
			}
			defer f.Close()
			// write both to stderr and file
			csvW = io.MultiWriter(w, f)
		}
		l = daemon.NewCSVLogger(csvW)
	}

	stats := daemon.NewJSONStats()
	d, err := daemon.New(cfg, source, out, stats, l)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)
	if cfg.MonitoringPort != 0 {
		eg.Go(func() error { return stats.Serve(ctx, cfg.MonitoringPort) })
	}
	if cfg.MetricsPort != 0 {
		exporter := daemon.NewPrometheusExporter(stats.Stats, cfg.MetricsPort, 10*time.Second)
		eg.Go(func() error { return exporter.Serve(ctx) })
	}
	eg.Go(func() error { return d.Run(ctx) })
	return eg.Wait()
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the clock, printing the time every second",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		log.SetReportCaller(true)
		cfg := runCfg
		if runCfgPath != "" {
			log.Warningf("using config from %s, flag values are ignored", runCfgPath)
			var err error
			if cfg, err = daemon.ReadConfig(runCfgPath); err != nil {
				log.Fatal(err)
			}
		}
		if runCSVPath != "" && !runCSVLog {
			log.Fatalf("'csvpath' flag requires 'csvlog' flag")
		}
		if err := runDaemon(cfg); err != nil {
			log.Fatal(err)
		}
	},
}
