package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Report holds the parsed timings of one file.
type Report struct {
	Name     string    `json:"name"`
	Category Category  `json:"category,omitempty"`
	Samples  []float64 `json:"samples"` // seconds
}

// Mean returns the average timing in seconds. It is NaN for a report
// without samples.
func (r Report) Mean() float64 {
	return Mean(r.Samples)
}

// StdDev returns the sample standard deviation of the timings.
func (r Report) StdDev() float64 {
	if len(r.Samples) < 2 {
		return 0
	}
	return stat.StdDev(r.Samples, nil)
}

// ReadTimingFile parses all timing lines in a file.
func ReadTimingFile(file string) ([]float64, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ParseTimings(fd)
}

// ReadReport reads the timing file name in dir. The cache may be nil.
func ReadReport(dir, name string, cache *Cache) (Report, error) {
	r := Report{Name: name}
	r.Category, _ = Categorize(name)

	file := filepath.Join(dir, name)
	info, err := os.Stat(file)
	if err != nil {
		return r, err
	}
	if samples, ok := cache.Get(file, info); ok {
		r.Samples = samples
		return r, nil
	}
	if r.Samples, err = ReadTimingFile(file); err != nil {
		return r, fmt.Errorf("%s: %v", name, err)
	}
	if err := cache.Put(file, info, r.Samples); err != nil {
		return r, err
	}
	return r, nil
}

type LoadOptions struct {
	Workers int    // max. files read concurrently
	Cache   *Cache // optional
	Logger  *zap.Logger
}

// ReadReports reads all timing files in dir. The reports are returned in
// file ordering, see ListTimingFiles.
func ReadReports(ctx context.Context, dir string, opts LoadOptions) ([]Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	names, err := ListTimingFiles(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		eg.SetLimit(opts.Workers)
	}
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := ReadReport(dir, name, opts.Cache)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, r := range reports {
		switch {
		case r.Category == "":
			log.Debug("Skipping file without size category", zap.String("file", r.Name))
		case len(r.Samples) == 0:
			log.Warn("Timing file has no samples", zap.String("file", r.Name))
		default:
			log.Debug("Loaded timing file",
				zap.String("file", r.Name),
				zap.String("category", string(r.Category)),
				zap.Int("samples", len(r.Samples)),
				zap.Float64("mean", r.Mean()))
		}
	}
	return reports, nil
}

// LoadReports reads the timing files configured in cfg, using the timing
// cache if one is configured.
func LoadReports(ctx context.Context, cfg Config, log *zap.Logger) ([]Report, error) {
	opts := LoadOptions{Workers: cfg.Workers, Logger: log}
	if cfg.CacheDir != "" {
		cache, err := OpenCache(cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("can't open cache: %v", err)
		}
		defer cache.Close()
		opts.Cache = cache
	}
	return ReadReports(ctx, cfg.DataDir, opts)
}
