package bench

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ParseTimingLine parses a line of the form <minutes>m<seconds>s and returns
// its value in seconds. Lines without 'm' are not timing lines and yield ok == false.
func ParseTimingLine(line string) (sec float64, ok bool, err error) {
	parts := strings.Split(line, "m")
	if len(parts) < 2 {
		return 0, false, nil
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false, fmt.Errorf("invalid minutes in timing %q", line)
	}
	s := parts[1]
	if i := strings.IndexByte(s, 's'); i >= 0 {
		s = s[:i]
	}
	sec, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid seconds in timing %q", line)
	}
	return float64(min)*60 + sec, true, nil
}

// ParseTimings reads all timing lines from r.
func ParseTimings(r io.Reader) ([]float64, error) {
	var (
		samples []float64
		scan    = bufio.NewScanner(r)
		lineno  = 0
	)
	for scan.Scan() {
		lineno++
		v, ok, err := ParseTimingLine(scan.Text())
		if err != nil {
			return samples, fmt.Errorf("line %d: %v", lineno, err)
		}
		if ok {
			samples = append(samples, v)
		}
	}
	return samples, scan.Err()
}

// Mean returns the average of samples, or NaN when there are none.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	return stat.Mean(samples, nil)
}

// FormatTiming renders d in the format accepted by ParseTimingLine.
func FormatTiming(d time.Duration) string {
	min := int(d / time.Minute)
	sec := (d - time.Duration(min)*time.Minute).Seconds()
	return fmt.Sprintf("%dm%.3fs", min, sec)
}
