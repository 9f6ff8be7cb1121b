package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"lifeworld/internal/core"
	"lifeworld/internal/engine"
	_ "lifeworld/internal/rules/coex"
	_ "lifeworld/internal/rules/move"
	_ "lifeworld/internal/rules/normal"
)

type scenario struct {
	tag     string
	density float64
}

func (s scenario) String() string {
	return fmt.Sprintf("%-7s density=%.2f", s.tag, s.density)
}

type scenarioResult struct {
	scenario
	finalLive   int
	peakLive    int
	births      int
	deaths      int
	extinctAt   int
	elapsed     time.Duration
	generations int
}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scenario evaluations")
	width := flag.Int("width", 128, "grid width")
	height := flag.Int("height", 128, "grid height")
	seed := flag.Int64("seed", 1337, "seed used for deterministic runs")
	algos := flag.String("algos", strings.Join(core.Tags(), ","), "comma separated rule tags")
	flag.Parse()

	var sets []scenario
	for _, tag := range strings.Split(*algos, ",") {
		tag = core.Resolve(strings.ToUpper(strings.TrimSpace(tag)))
		for d := 0.05; d < 0.95; d += 0.1 {
			sets = append(sets, scenario{tag: tag, density: d})
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)\n", len(sets), *workers, *steps, *width, *height)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *width, *height, *steps, *seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].tag != all[j].tag {
			return all[i].tag < all[j].tag
		}
		return all[i].density < all[j].density
	})
	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, res := range all {
		extinct := "-"
		if res.extinctAt > 0 {
			extinct = fmt.Sprint(res.extinctAt)
		}
		fmt.Printf("%s  final=%6d peak=%6d births=%8d deaths=%8d extinct=%4s  %6.2f gen/s\n",
			res.scenario, res.finalLive, res.peakLive, res.births, res.deaths, extinct,
			float64(res.generations)/res.elapsed.Seconds())
	}
}

func runScenario(sc scenario, w, h, steps int, seed int64) scenarioResult {
	res := scenarioResult{scenario: sc}
	alg := core.Select(sc.tag, nil)
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return res
	}
	rng := core.NewRNG(seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if core.Chance(rng, sc.density) {
				_ = grid.SetRecord(x, y, alg.CreateLife(0, rng))
			}
		}
	}
	encoded, err := alg.SetParam()
	if err != nil {
		return res
	}
	params, err := core.DecodeParams(encoded)
	if err != nil {
		return res
	}

	// Scenarios already run in parallel, so each generation stays single-threaded.
	eng := engine.New(1)
	start := time.Now()
	for gen := 0; gen < steps; gen++ {
		var stats core.Stats
		grid, stats = eng.RunOnce(grid, alg, params, seed, gen)
		res.generations++
		res.births += stats.Births
		res.deaths += stats.Deaths
		res.finalLive = stats.Live
		if stats.Live > res.peakLive {
			res.peakLive = stats.Live
		}
		if stats.Live == 0 {
			res.extinctAt = gen + 1
			break
		}
	}
	res.elapsed = time.Since(start)
	return res
}
