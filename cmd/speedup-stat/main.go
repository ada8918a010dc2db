package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	bench "github.com/fjl/speedup-bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type fileStat struct {
	Name     string         `json:"name"`
	Category bench.Category `json:"category,omitempty"`
	Samples  int            `json:"samples"`
	Mean     number         `json:"mean"`
	StdDev   number         `json:"stddev"`
}

// number encodes as null in JSON when it is not a finite number.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

type categoryStat struct {
	Category   bench.Category `json:"category"`
	Threads    []int          `json:"threads"`
	Speedup    []number       `json:"speedup"`
	Efficiency []number       `json:"efficiency"`
}

func numbers(v []float64) []number {
	n := make([]number, len(v))
	for i := range v {
		n[i] = number(v[i])
	}
	return n
}

type summary struct {
	Files      []fileStat     `json:"files"`
	Categories []categoryStat `json:"categories"`
}

func main() {
	var (
		v        = viper.New()
		cfgFile  string
		jsonflag bool
	)
	cmd := &cobra.Command{
		Use:           "speedup-stat",
		Short:         "Print timing statistics and speedups",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bench.LoadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			log := bench.NewLogger(cfg.Verbose)
			defer log.Sync()
			s, err := summarize(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			if jsonflag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "config file")
	fs.BoolVar(&jsonflag, "json", false, "print JSON instead of text")
	bench.AddFlags(fs, v)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		bench.NewLogger(false).Error("speedup-stat failed", zap.Error(err))
		os.Exit(1)
	}
}

func summarize(ctx context.Context, cfg bench.Config, log *zap.Logger) (*summary, error) {
	reports, err := bench.LoadReports(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s := new(summary)
	for _, r := range reports {
		s.Files = append(s.Files, fileStat{
			Name:     r.Name,
			Category: r.Category,
			Samples:  len(r.Samples),
			Mean:     number(r.Mean()),
			StdDev:   number(r.StdDev()),
		})
	}
	series, err := bench.ComputeSeries(reports)
	if err != nil {
		return nil, err
	}
	threads := cfg.ThreadCounts()
	for _, sr := range series {
		if len(sr.Speedup) != len(threads) {
			log.Warn("Series length does not match thread counts",
				zap.String("category", string(sr.Category)),
				zap.Int("points", len(sr.Speedup)),
				zap.Int("threads", len(threads)))
		}
		s.Categories = append(s.Categories, categoryStat{
			Category:   sr.Category,
			Threads:    threads,
			Speedup:    numbers(sr.Speedup),
			Efficiency: numbers(bench.Efficiency(sr.Speedup, threads)),
		})
	}
	return s, nil
}

func printSummary(w io.Writer, s *summary) {
	for _, f := range s.Files {
		fmt.Fprintf(w, "-- %s (%d samples)", f.Name, f.Samples)
		if f.Category == "" {
			fmt.Fprintf(w, " [no category]")
		}
		fmt.Fprintf(w, "\n  mean time: %.3fs (+- %.3f)\n", f.Mean, f.StdDev)
	}
	for _, c := range s.Categories {
		fmt.Fprintf(w, "== %s\n", c.Category)
		for i, sp := range c.Speedup {
			if i < len(c.Efficiency) {
				fmt.Fprintf(w, "  %3d threads: speedup %6.3f  efficiency %5.1f%%\n", c.Threads[i], sp, c.Efficiency[i]*100)
			} else {
				fmt.Fprintf(w, "    run %3d  : speedup %6.3f\n", i+1, sp)
			}
		}
	}
}
