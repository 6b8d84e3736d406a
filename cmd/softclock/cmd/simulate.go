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
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/softclock/softclock/clock"
	"github.com/softclock/softclock/daemon"
	"github.com/softclock/softclock/ticksource"
)

var okString = color.GreenString("[OK]")
var infoString = color.GreenString("[INFO]")
var failString = color.RedString("[FAIL]")

type simulateOptions struct {
	seconds   int
	polls     int
	startTick uint32
	day       string
	hour      int
	minute    int
	second    int
	rollover  string
	wrapSafe  bool
	quiet     bool
}

var simulateOpts simulateOptions

func init() {
	RootCmd.AddCommand(simulateCmd)
	f := simulateCmd.Flags()
	f.IntVarP(&simulateOpts.seconds, "seconds", "n", 60, "How many seconds to simulate")
	f.IntVarP(&simulateOpts.polls, "polls", "p", 10, "How many times the clock is polled per simulated second")
	f.Uint32Var(&simulateOpts.startTick, "tick", 0, "Tick counter value the simulation starts at")
	f.StringVar(&simulateOpts.day, "day", "Monday", "Start day of week")
	f.IntVar(&simulateOpts.hour, "hour", 0, "Start hour")
	f.IntVar(&simulateOpts.minute, "minute", 0, "Start minute")
	f.IntVar(&simulateOpts.second, "second", 0, "Start second")
	f.StringVar(&simulateOpts.rollover, "rollover", clock.RolloverSundayOnly.String(), "Day rollover: sunday or daily")
	f.BoolVar(&simulateOpts.wrapSafe, "wrapsafe", false, "Compare ticks modulo 2^32")
	f.BoolVarP(&simulateOpts.quiet, "quiet", "q", false, "Don't print time lines")
}

func progressLine(format string, args ...interface{}) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	fmt.Printf("\u001b[1000D")
	fmt.Printf(format, args...)
}

// simulate moves a simulated tick source forward and polls the clock opts.polls times per second.
// It returns the clock and how many seconds it applied.
func simulate(out io.Writer, opts simulateOptions, progress func(done, total int)) (*clock.Clock, int, error) {
	if opts.polls < 1 || opts.polls > clock.MillisPerSecond {
		return nil, 0, fmt.Errorf("polls must be between 1 and %d", clock.MillisPerSecond)
	}
	rollover, err := daemon.ParseRollover(opts.rollover)
	if err != nil {
		return nil, 0, err
	}
	day, err := clock.ParseWeekday(opts.day)
	if err != nil {
		return nil, 0, err
	}
	src := ticksource.NewSim(opts.startTick)
	c := clock.New(src, out, clock.Config{Rollover: rollover, WrapSafe: opts.wrapSafe})
	if err := c.SetClock(day, opts.hour, opts.minute, opts.second); err != nil {
		return nil, 0, err
	}

	// exactly one second is not enough to advance, start 1ms late
	base := opts.startTick + 1
	applied := 0
	for i := 0; i < opts.seconds; i++ {
		for p := 1; p <= opts.polls; p++ {
			src.Set(base + uint32(i*clock.MillisPerSecond+p*clock.MillisPerSecond/opts.polls))
			if c.Advance() {
				applied++
			}
		}
		if progress != nil {
			progress(i+1, opts.seconds)
		}
	}
	return c, applied, nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the clock on a simulated tick counter",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		var out io.Writer = os.Stdout
		var progress func(done, total int)
		if simulateOpts.quiet {
			out = nil
			progress = func(done, total int) {
				if done%3600 == 0 || done == total {
					progressLine("Simulated %d/%d seconds", done, total)
				}
			}
		}
		fmt.Println(infoString, "Simulating", simulateOpts.seconds, "seconds...")
		c, applied, err := simulate(out, simulateOpts, progress)
		if err != nil {
			fmt.Println(failString, err)
			os.Exit(1)
		}
		if simulateOpts.quiet {
			fmt.Println()
		}
		fmt.Printf("%s Applied %d seconds, clock is at %s, elapsed %dms\n", okString, applied, c, c.Time())
		fmt.Printf("%s Second day: %v, third day: %v, day before third day: %v\n", okString, c.SecondDay(), c.ThirdDay(), c.DayBeforeThirdDay())
	},
}
