// Command clue-bench generates a synthetic dataset, clusters it with CLUE and
// reports timings and cluster statistics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/TrevorS/clue"
	"github.com/TrevorS/clue/internal/datagen"
)

func main() {
	opts := datagen.DefaultOptions()
	flag.IntVar(&opts.Points, "n", opts.Points, "Number of points")
	flag.IntVar(&opts.Dims, "dims", opts.Dims, "Number of dimensions")
	flag.IntVar(&opts.Clusters, "clusters", opts.Clusters, "Number of generated blobs")
	flag.Uint64Var(&opts.Seed, "seed", opts.Seed, "Random seed")

	cfg := clue.DefaultConfig()
	flag.Float64Var(&cfg.Dc, "dc", 1.5, "Cutoff distance")
	flag.Float64Var(&cfg.Rhoc, "rhoc", 5, "Density threshold for seeds and outliers")
	flag.Float64Var(&cfg.OutlierDeltaFactor, "odf", cfg.OutlierDeltaFactor, "Outlier delta factor")
	flag.IntVar(&cfg.PointsPerTile, "ppt", cfg.PointsPerTile, "Average points per tile")
	flag.IntVar(&cfg.Workers, "workers", 0, "Worker goroutines (0 = NumCPU)")
	flag.IntVar(&cfg.TileCapacity, "tile-capacity", 0, "Fixed tile capacity (0 = exact sizing)")
	drop := flag.Bool("drop-overflow", false, "Drop points from full tiles instead of failing")
	kernel := flag.String("kernel", "flat", "Kernel: flat, exp or gaus")
	runs := flag.Int("runs", 1, "Number of timed clustering passes")
	jsonLogs := flag.Bool("json", false, "Emit JSON logs")
	verbose := flag.Bool("v", false, "Enable debug logs")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	}
	logger := slog.New(handler)
	cfg.Logger = logger
	if *drop {
		cfg.OverflowPolicy = clue.OverflowDrop
	}

	if err := run(logger, opts, cfg, *kernel, *runs); err != nil {
		logger.Error("clue-bench failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, opts datagen.Options, cfg clue.Config, kernelName string, runs int) error {
	k, err := parseKernel(kernelName)
	if err != nil {
		return err
	}

	ds, err := datagen.Generate(opts)
	if err != nil {
		return err
	}

	c, err := clue.New(opts.Dims, cfg)
	if err != nil {
		return err
	}
	empty, err := c.SetPoints(ds.Coordinates, ds.Weights)
	if err != nil {
		return err
	}
	if empty {
		logger.Info("no points to cluster")
		return nil
	}

	var result *clue.Result
	var total time.Duration
	for r := range max(runs, 1) {
		start := time.Now()
		result, err = c.MakeClusters(k)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		total += elapsed
		logger.Debug("pass finished", "run", r, "elapsed", elapsed)
	}

	outliers := 0
	for _, id := range result.ClusterIndex {
		if id < 0 {
			outliers++
		}
	}
	logger.Info("clustering finished",
		"points", opts.Points,
		"dims", opts.Dims,
		"tiles", result.NTiles,
		"clusters", result.NClusters,
		"unassigned", outliers,
		"dropped", result.Dropped,
		"matches_truth", clue.ValidateResults(result.ClusterIndex, ds.Truth),
		"mean_elapsed", total/time.Duration(max(runs, 1)),
	)
	return nil
}

func parseKernel(name string) (clue.Kernel, error) {
	switch name {
	case "flat":
		return clue.FlatKernel{Value: 0.5}, nil
	case "exp":
		return clue.ExponentialKernel{Mean: 1, Amplitude: 1}, nil
	case "gaus":
		return clue.GaussianKernel{Mean: 0, StdDev: 1, Amplitude: 1}, nil
	default:
		return nil, fmt.Errorf("unknown kernel %q (want flat, exp or gaus)", name)
	}
}
