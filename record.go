package bench

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aristanetworks/goarista/monotime"
	"go.uber.org/zap"
)

type RecordConfig struct {
	// Command is run once per repetition. The placeholders {threads} and
	// {size} in its arguments are replaced by the thread count and category.
	Command []string
	// Baseline is the command for the sequential reference run. If empty,
	// Command is used with {threads} set to 1.
	Baseline []string

	Threads    []int
	Categories []Category
	Repeat     int
	OutDir     string
	Prefix     string // file name prefix, must not contain '_'
}

// Recorder runs benchmark commands and writes their wall-clock times
// as timing logs.
type Recorder struct {
	cfg RecordConfig
	log *zap.Logger
	run func(ctx context.Context, argv []string) error
}

func NewRecorder(cfg RecordConfig, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "run"
	}
	if cfg.Repeat <= 0 {
		cfg.Repeat = 1
	}
	return &Recorder{cfg: cfg, log: log, run: execCommand}
}

func execCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	return cmd.Run()
}

// TimingFileName returns the name of the timing log for a run. The baseline
// uses thread count 0 so it sorts first within its category.
func (r *Recorder) TimingFileName(threads int, c Category) string {
	return fmt.Sprintf("%s_%d_%s.txt", r.cfg.Prefix, threads, c)
}

// Run records all categories. Runs are sequential so they don't
// compete for CPUs.
func (r *Recorder) Run(ctx context.Context) error {
	if len(r.cfg.Command) == 0 {
		return fmt.Errorf("no benchmark command")
	}
	if strings.Contains(r.cfg.Prefix, "_") {
		return fmt.Errorf("invalid file prefix %q", r.cfg.Prefix)
	}
	if err := os.MkdirAll(r.cfg.OutDir, 0755); err != nil {
		return fmt.Errorf("can't create output dir: %v", err)
	}
	for _, c := range r.cfg.Categories {
		base := r.cfg.Baseline
		if len(base) == 0 {
			base = r.cfg.Command
		}
		if err := r.record(ctx, base, 1, 0, c); err != nil {
			return err
		}
		for _, n := range r.cfg.Threads {
			if err := r.record(ctx, r.cfg.Command, n, n, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// record runs argv cfg.Repeat times and appends the times to the log with key.
func (r *Recorder) record(ctx context.Context, argv []string, threads, key int, c Category) error {
	name := r.TimingFileName(key, c)
	fd, err := os.OpenFile(filepath.Join(r.cfg.OutDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()

	argv = expandArgs(argv, threads, c)
	r.log.Info("Running benchmark", zap.String("file", name), zap.Strings("command", argv))
	for i := 0; i < r.cfg.Repeat; i++ {
		start := mononow()
		if err := r.run(ctx, argv); err != nil {
			return fmt.Errorf("%s: run %d: %v", name, i+1, err)
		}
		d := mononow() - start
		if _, err := fmt.Fprintln(fd, FormatTiming(d)); err != nil {
			return err
		}
		r.log.Debug("Run finished", zap.String("file", name), zap.Int("run", i+1), zap.Duration("time", d))
	}
	return nil
}

func expandArgs(argv []string, threads int, c Category) []string {
	repl := strings.NewReplacer("{threads}", strconv.Itoa(threads), "{size}", string(c))
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = repl.Replace(a)
	}
	return out
}

func mononow() time.Duration {
	return time.Duration(monotime.Now())
}
