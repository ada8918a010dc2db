package bench

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultThreadCounts is the x axis of speedup plots. The baseline run
// of each category precedes these.
var DefaultThreadCounts = []int{1, 2, 4, 6, 8, 10, 12}

var threadsRE = regexp.MustCompile(`^\s*([0-9]+)\s*$`)

// ParseThreadCounts parses a comma separated list of thread counts.
func ParseThreadCounts(s string) ([]int, error) {
	var counts []int
	for _, f := range strings.Split(s, ",") {
		m := threadsRE.FindStringSubmatch(f)
		if m == nil {
			return nil, fmt.Errorf("invalid thread count %q", f)
		}
		v, _ := strconv.Atoi(m[1])
		if v == 0 {
			return nil, fmt.Errorf("invalid thread count %q", f)
		}
		counts = append(counts, v)
	}
	return counts, nil
}

// FormatThreadCounts is the inverse of ParseThreadCounts.
func FormatThreadCounts(counts []int) string {
	s := make([]string, len(counts))
	for i, c := range counts {
		s[i] = strconv.Itoa(c)
	}
	return strings.Join(s, ",")
}
