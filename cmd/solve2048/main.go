// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/urfave/cli"

	"github.com/anematode/solve2048/bfs"
	"github.com/anematode/solve2048/dump"
	"github.com/anematode/solve2048/foldedset"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	myApp := cli.NewApp()
	myApp.Name = "solve2048"
	myApp.Usage = "enumerate reachable 2048 positions layer by layer, grouped by tile sum"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "start-sum",
			Value: 4,
			Usage: "tile sum of the first layer to report (must be 4, 6, or 8; seeding always starts at 4 and layer 4 is never reported)",
		},
		cli.IntFlag{
			Name:  "stop-sum",
			Value: 0,
			Usage: "tile sum to stop at (0 runs until interrupted)",
		},
		cli.IntFlag{
			Name:  "initial-capacity",
			Value: 1 << 16,
			Usage: "minimum slot capacity for every allocated layer, including the three seeded ones",
		},
		cli.Float64Flag{
			Name:  "growth-factor",
			Value: 4.0,
			Usage: "capacity of a newly allocated layer, as a multiple of the previous layer's count",
		},
		cli.IntFlag{
			Name:  "capacity-floor",
			Value: 1 << 12,
			Usage: "minimum slot capacity for any allocated layer",
		},
		cli.IntFlag{
			Name:  "capacity-ceiling",
			Value: 0,
			Usage: "maximum slot capacity for any allocated layer, 0 to disable",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "goroutine fan-out for layer generation and set Count/Iterate/Compact, 0 uses GOMAXPROCS",
		},
		cli.StringFlag{
			Name:   "key",
			Value:  "",
			Usage:  "seed used to derive the folded set's hash key; empty uses the built-in default",
			EnvVar: "SOLVE2048_KEY",
		},
		cli.StringFlag{
			Name:  "dump-dir",
			Value: "",
			Usage: "directory to write compressed layer dumps into, empty disables dumping",
		},
		cli.StringFlag{
			Name:  "dump-schedule",
			Value: "none",
			Usage: `which completed layers to dump: "all", "none", or "mod:N"`,
		},
		cli.StringFlag{
			Name:  "stats-log",
			Value: "",
			Usage: "CSV file to append one row of stats to per completed layer",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "specify a log file to output, default goes to stderr",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress per-layer progress logging",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Action = run
	checkError(myApp.Run(os.Args))
}

func run(c *cli.Context) error {
	config := Config{}
	config.StartSum = c.Int("start-sum")
	config.StopSum = c.Int("stop-sum")
	config.InitialCapacity = c.Int("initial-capacity")
	config.GrowthFactor = c.Float64("growth-factor")
	config.CapacityFloor = c.Int("capacity-floor")
	config.CapacityCeiling = c.Int("capacity-ceiling")
	config.Workers = c.Int("workers")
	config.Key = c.String("key")
	config.DumpDir = c.String("dump-dir")
	config.DumpSchedule = c.String("dump-schedule")
	config.StatsLog = c.String("stats-log")
	config.Log = c.String("log")
	config.Quiet = c.Bool("quiet")

	if c.String("c") != "" {
		checkError(parseJSONConfig(&config, c.String("c")))
	}

	if config.Log != "" {
		f, err := os.OpenFile(config.Log, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		checkError(err)
		defer f.Close()
		log.SetOutput(f)
	}

	if config.StartSum != 4 && config.StartSum != 6 && config.StartSum != 8 {
		log.Fatalf("start-sum must be 4, 6, or 8, got %d", config.StartSum)
	}

	schedule, err := bfs.ParseSchedule(config.DumpSchedule)
	checkError(err)

	var statsLogger *bfs.StatsLogger
	if config.StatsLog != "" {
		statsLogger, err = bfs.NewStatsLogger(config.StatsLog)
		checkError(err)
		defer statsLogger.Close()
	}

	driverCfg := bfs.Config{
		InitialCapacity: config.InitialCapacity,
		GrowthFactor:    config.GrowthFactor,
		CapacityFloor:   config.CapacityFloor,
		CapacityCeiling: config.CapacityCeiling,
		Workers:         config.Workers,
		Schedule:        schedule,
	}
	if config.Key != "" {
		driverCfg.HashKeySeed = []byte(config.Key)
	}
	if config.DumpDir != "" {
		checkError(os.MkdirAll(config.DumpDir, 0755))
		driverCfg.OnLayer = func(tileSum uint32, s *foldedset.Set) error {
			path := filepath.Join(config.DumpDir, fmt.Sprintf("layer-%04d.dump", tileSum))
			if err := dump.Write(path, s); err != nil {
				log.Println("dump failed, continuing:", err)
			}
			return nil
		}
	}

	log.Println("version:", VERSION)
	log.Println("start-sum:", config.StartSum)
	log.Println("dump-dir:", config.DumpDir)
	log.Println("dump-schedule:", config.DumpSchedule)

	driver := bfs.NewDriver(driverCfg)
	checkError(driver.Seed())
	defer driver.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed always populates tile sums 4, 6, and 8; a higher start-sum
	// silently advances past the layers the caller doesn't want reported.
	for driver.TileSum() < uint32(config.StartSum) {
		if _, err := driver.Advance(ctx); err != nil {
			return err
		}
	}

	var latest atomic.Value
	installSignalHandlers(cancel, func() *bfs.LayerStats {
		v := latest.Load()
		if v == nil {
			return nil
		}
		s := v.(bfs.LayerStats)
		return &s
	})

	for {
		if config.StopSum > 0 && driver.TileSum() > uint32(config.StopSum) {
			break
		}
		stats, err := driver.Advance(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("stopping:", err)
				break
			}
			return err
		}
		latest.Store(stats)

		if !config.Quiet {
			log.Printf("tile_sum=%d count=%d elapsed=%s rate=%.1f/s",
				stats.TileSum, stats.Count, stats.Elapsed, stats.Rate)
		}
		if statsLogger != nil {
			checkError(statsLogger.Log(stats))
		}
	}

	return nil
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
