package bench

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the shared configuration of the speedup commands. Values come
// from flags, SPEEDUP_* environment variables and an optional config file.
type Config struct {
	DataDir  string  `mapstructure:"data"`
	Out      string  `mapstructure:"out"`
	Threads  string  `mapstructure:"threads"`
	Title    string  `mapstructure:"title"`
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	Workers  int     `mapstructure:"workers"`
	CacheDir string  `mapstructure:"cache"`
	Verbose  bool    `mapstructure:"verbose"`
}

// SetDefaults registers the default configuration values in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data", "../data/")
	v.SetDefault("out", "speedup.png")
	v.SetDefault("threads", FormatThreadCounts(DefaultThreadCounts))
	v.SetDefault("title", DefaultPlotConfig.Title)
	v.SetDefault("width", DefaultPlotConfig.Width)
	v.SetDefault("height", DefaultPlotConfig.Height)
	v.SetDefault("workers", 4)
	v.SetDefault("cache", "")
	v.SetDefault("verbose", false)
}

// AddFlags defines the command line flags for the configuration keys
// and binds them to v.
func AddFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("data", "../data/", "directory containing the timing logs")
	fs.String("threads", FormatThreadCounts(DefaultThreadCounts), "thread counts of the measured runs")
	fs.Int("workers", 4, "number of files read concurrently")
	fs.String("cache", "", "timing cache database directory (disabled if empty)")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.VisitAll(func(f *pflag.Flag) {
		v.BindPFlag(f.Name, f)
	})
}

// LoadConfig reads the configuration from v. If file is set, it is read first.
func LoadConfig(v *viper.Viper, file string) (Config, error) {
	var cfg Config
	SetDefaults(v)
	v.SetEnvPrefix("SPEEDUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("can't read config: %v", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if _, err := ParseThreadCounts(cfg.Threads); err != nil {
		return cfg, fmt.Errorf("threads: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("invalid plot size %gx%g", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// ThreadCounts returns the parsed thread axis.
func (cfg Config) ThreadCounts() []int {
	t, err := ParseThreadCounts(cfg.Threads)
	if err != nil {
		return DefaultThreadCounts
	}
	return t
}

// PlotConfig returns the chart settings.
func (cfg Config) PlotConfig() PlotConfig {
	return PlotConfig{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height}
}

// NewLogger creates the command line logger.
func NewLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
