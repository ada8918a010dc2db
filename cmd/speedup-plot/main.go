package main

import (
	"context"
	"os"

	"github.com/aristanetworks/goarista/monotime"
	bench "github.com/fjl/speedup-bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	var (
		v       = viper.New()
		cfgFile string
	)
	cmd := &cobra.Command{
		Use:           "speedup-plot",
		Short:         "Plot thread scaling speedup from timing logs",
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
			return run(cmd.Context(), cfg, log)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "config file")
	fs.StringP("out", "o", "speedup.png", "output filename (.png, .svg, .pdf)")
	fs.String("title", bench.DefaultPlotConfig.Title, "plot title")
	fs.Float64("width", bench.DefaultPlotConfig.Width, "width of plot in inches")
	fs.Float64("height", bench.DefaultPlotConfig.Height, "height of plot in inches")
	bench.AddFlags(fs, v)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		bench.NewLogger(false).Error("speedup-plot failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg bench.Config, log *zap.Logger) error {
	start := monotime.Now()
	reports, err := bench.LoadReports(ctx, cfg, log)
	if err != nil {
		return err
	}
	series, err := bench.ComputeSeries(reports)
	if err != nil {
		return err
	}
	plt, err := bench.NewSpeedupPlot(series, cfg.ThreadCounts(), cfg.PlotConfig())
	if err != nil {
		return err
	}
	if err := bench.SavePlot(plt, cfg.PlotConfig(), cfg.Out); err != nil {
		return err
	}
	log.Info("Wrote speedup plot",
		zap.String("file", cfg.Out),
		zap.Int("reports", len(reports)),
		zap.Duration("elapsed", monotime.Since(start)))
	return nil
}
