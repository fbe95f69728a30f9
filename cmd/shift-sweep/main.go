package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"terrashift/internal/app"
	"terrashift/internal/mapgen"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	maxTicks := flag.Int("max-ticks", 4000, "ticks to simulate per scenario before giving up")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	raises := flag.Int("raises", 3, "times the centre cell is raised in each scenario")
	flag.Parse()

	out, closeLog, err := app.OpenLog(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	log := app.NewLogger(out, cfg.LogLevel)

	stop, err := app.StartServices(cfg, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer stop()

	base := cfg.World
	if err := mapgen.Validate(base.Map); err != nil {
		log.Error("bad map settings", "err", err)
		os.Exit(1)
	}
	sets := paramGrid(base)
	fmt.Printf("Sweeping %d parameter sets on a %d %s map (%d workers, %d ticks max)\n",
		len(sets), base.Map.Size, base.Map.Terrain.Kind, *workers, *maxTicks)

	script := defaultScript(base.Map.Size, *raises)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, script, *maxTicks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Warn("scenario failed", "params", res.params.String(), "err", res.err)
			continue
		}
		if !res.settled {
			log.Info("scenario did not settle", "params", res.params.String(), "ticks", res.ticks)
		}
		all = append(all, res)
	}
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool { return all[i].less(all[j]) })

	fmt.Printf("\nFastest 5 (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		fmt.Printf("%2d) %s\n", i+1, all[i])
	}
	if s, ok := summarize(all); ok {
		fmt.Printf("\n%s\n", s)
	}
}
