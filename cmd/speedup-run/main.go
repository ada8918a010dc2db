package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	bench "github.com/fjl/speedup-bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "speedup-run [flags] -- command [args...]",
		Short: "Record timing logs of a benchmark command",
		Long: `speedup-run runs the benchmark command repeatedly for every size category
and thread count and appends the wall-clock times to timing logs. The
placeholders {threads} and {size} in the command arguments are replaced
by the thread count and size category of the run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v.SetEnvPrefix("SPEEDUP")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			log := bench.NewLogger(v.GetBool("verbose"))
			defer log.Sync()

			cfg, err := recordConfig(v, args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return bench.NewRecorder(cfg, log).Run(ctx)
		},
	}
	fs := cmd.Flags()
	fs.String("out-dir", "../data/", "timing log output directory")
	fs.String("threads", bench.FormatThreadCounts(bench.DefaultThreadCounts), "thread counts to run")
	fs.String("sizes", "small,medium,large", "size categories to run")
	fs.Int("repeat", 5, "number of runs per thread count")
	fs.String("prefix", "run", "timing log file name prefix")
	fs.String("baseline", "", "sequential baseline command (default: command with 1 thread)")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	v.BindPFlags(fs)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		bench.NewLogger(false).Error("speedup-run failed", zap.Error(err))
		os.Exit(1)
	}
}

func recordConfig(v *viper.Viper, command []string) (cfg bench.RecordConfig, err error) {
	cfg.Command = command
	cfg.Baseline = strings.Fields(v.GetString("baseline"))
	cfg.Repeat = v.GetInt("repeat")
	cfg.OutDir = v.GetString("out-dir")
	cfg.Prefix = v.GetString("prefix")
	if cfg.Threads, err = bench.ParseThreadCounts(v.GetString("threads")); err != nil {
		return cfg, fmt.Errorf("-threads: %v", err)
	}
	for _, s := range strings.Split(v.GetString("sizes"), ",") {
		c, ok := bench.Categorize(strings.TrimSpace(s))
		if !ok || string(c) != strings.TrimSpace(s) {
			return cfg, fmt.Errorf("unknown size category %q", s)
		}
		cfg.Categories = append(cfg.Categories, c)
	}
	return cfg, nil
}
