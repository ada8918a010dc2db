package bench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRecorder(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(RecordConfig{
		Command:    []string{"./sim", "-t", "{threads}", "-input", "{size}.json"},
		Threads:    []int{1, 2},
		Categories: []Category{Small, Large},
		Repeat:     3,
		OutDir:     dir,
	}, zaptest.NewLogger(t))
	var runs []string
	rec.run = func(ctx context.Context, argv []string) error {
		runs = append(runs, strings.Join(argv, " "))
		return nil
	}
	require.NoError(t, rec.Run(context.Background()))

	assert.Len(t, runs, 2*3*3)
	assert.Equal(t, "./sim -t 1 -input small.json", runs[0])
	assert.Equal(t, "./sim -t 2 -input large.json", runs[len(runs)-1])

	names, err := ListTimingFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"run_0_large.txt", "run_0_small.txt",
		"run_1_large.txt", "run_1_small.txt",
		"run_2_large.txt", "run_2_small.txt",
	}, names)
	for _, name := range names {
		samples, err := ReadTimingFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Len(t, samples, 3, name)
	}
}

func TestRecorderBaseline(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(RecordConfig{
		Command:    []string{"./par", "{threads}"},
		Baseline:   []string{"./seq", "{size}"},
		Threads:    []int{4},
		Categories: []Category{Medium},
		OutDir:     dir,
		Prefix:     "nbody",
	}, nil)
	var runs []string
	rec.run = func(ctx context.Context, argv []string) error {
		runs = append(runs, strings.Join(argv, " "))
		return nil
	}
	require.NoError(t, rec.Run(context.Background()))
	assert.Equal(t, []string{"./seq medium", "./par 4"}, runs)
	assert.FileExists(t, filepath.Join(dir, "nbody_0_medium.txt"))
	assert.FileExists(t, filepath.Join(dir, "nbody_4_medium.txt"))
}

func TestRecorderErrors(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecorder(RecordConfig{OutDir: dir, Categories: Categories}, nil)
	assert.Error(t, rec.Run(context.Background()))

	rec = NewRecorder(RecordConfig{Command: []string{"x"}, OutDir: dir, Prefix: "a_b"}, nil)
	assert.Error(t, rec.Run(context.Background()))

	rec = NewRecorder(RecordConfig{Command: []string{"x"}, OutDir: dir, Categories: Categories}, nil)
	rec.run = func(ctx context.Context, argv []string) error {
		return errors.New("exit status 1")
	}
	err := rec.Run(context.Background())
	assert.ErrorContains(t, err, "run_0_small.txt: run 1")
}

func TestRecorderExec(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	rec := NewRecorder(RecordConfig{
		Command:    []string{"/bin/sh", "-c", "exit 0"},
		Threads:    []int{1},
		Categories: []Category{Small},
		OutDir:     dir,
	}, nil)
	require.NoError(t, rec.Run(context.Background()))
	samples, err := ReadTimingFile(filepath.Join(dir, "run_1_small.txt"))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.GreaterOrEqual(t, samples[0], 0.0)
}
