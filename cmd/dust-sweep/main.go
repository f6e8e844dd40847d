package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"pixeldust/internal/scene"
	"pixeldust/internal/sims/sand"
)

func main() {
	sceneName := flag.String("sim", "hourglass", "built-in scene to sweep")
	sceneFile := flag.String("scene", "", "scene YAML file, overrides -sim")
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	seed := flag.Int64("seed", 1, "placement seed shared by every scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	out := flag.String("out", "sweep-out", "output directory")
	png := flag.Bool("png", false, "write the final frame of every scenario")
	flag.Parse()

	var (
		sc  *scene.Scene
		err error
	)
	if *sceneFile != "" {
		sc, err = scene.Load(*sceneFile)
	} else {
		sc, err = scene.Builtin(*sceneName)
	}
	if err != nil {
		log.Fatal(err)
	}
	base := sand.Config{Scene: *sceneName, File: *sceneFile, Seed: *seed}

	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := sc.WriteYAML(filepath.Join(*out, "scene.yaml")); err != nil {
		log.Fatal(err)
	}

	sets := grid(
		[]int{0, 64, 128, 192, 256},
		[]int{1, 2, 4},
		[]bool{false, true},
	)
	fmt.Printf("Sweeping %d parameter sets on %s (%d workers, %d steps)\n", len(sets), sc.Name, *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, frame, err := runScenario(base, params, *steps)
				if err != nil {
					log.Printf("%s: %v", params, err)
					continue
				}
				if *png {
					file := filepath.Join(*out, params.slug()+".png")
					if err := writePNG(file, frame); err != nil {
						log.Printf("%s: %v", params, err)
					}
				}
				results <- res
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
	var all []Result
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TailMoves < all[j].TailMoves })
	elapsed := time.Since(start)

	csvPath := filepath.Join(*out, "sweep.csv")
	if err := writeCSV(csvPath, all); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nMost settled (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		r := all[i]
		fmt.Printf("%2d) elasticity=%d scale=%d sort=%v tailMoves=%d crossings=%d stops=%d\n",
			i+1, r.Elasticity, r.Scale, r.Sort, r.TailMoves, r.Crossings, r.Stops)
	}
	fmt.Printf("\nWrote %s\n", csvPath)
}
