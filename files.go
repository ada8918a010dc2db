package bench

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SortKey returns the ordering key of a timing file: the integer in the second
// underscore-delimited token of its name. Names without a second token have key 0.
func SortKey(name string) (int, error) {
	tokens := strings.Split(name, "_")
	if len(tokens) < 2 {
		return 0, nil
	}
	key, err := strconv.Atoi(tokens[1])
	if err != nil {
		return 0, fmt.Errorf("invalid sort key in %q: %v", name, err)
	}
	return key, nil
}

// SortFiles orders names by SortKey. Names with equal keys keep their relative order.
func SortFiles(names []string) error {
	keys := make(map[string]int, len(names))
	for _, name := range names {
		k, err := SortKey(name)
		if err != nil {
			return err
		}
		keys[name] = k
	}
	sort.SliceStable(names, func(i, j int) bool {
		return keys[names[i]] < keys[names[j]]
	})
	return nil
}

// ListTimingFiles returns the names of all timing logs in dir, in processing order.
func ListTimingFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	// ReadDir sorts by name, which makes ties in SortFiles deterministic.
	if err := SortFiles(names); err != nil {
		return nil, err
	}
	return names, nil
}
