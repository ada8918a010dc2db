package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		in string
		c  Category
		ok bool
	}{
		{"run_1_small.txt", Small, true},
		{"run_1_medium.txt", Medium, true},
		{"run_1_large.txt", Large, true},
		{"run_1_large_small.txt", Small, true},
		{"run_1_huge.txt", "", false},
	}
	for _, test := range tests {
		c, ok := Categorize(test.in)
		assert.Equal(t, test.ok, ok, test.in)
		assert.Equal(t, test.c, c, test.in)
	}
}

func TestGroupByCategory(t *testing.T) {
	reports := []Report{
		{Name: "run_0_small.txt", Category: Small},
		{Name: "run_0_large.txt", Category: Large},
		{Name: "run_0_huge.txt"},
		{Name: "run_1_small.txt", Category: Small},
	}
	groups := GroupByCategory(reports)
	assert.Len(t, groups, 2)
	assert.Equal(t, []Report{reports[0], reports[3]}, groups[Small])
	assert.Equal(t, []Report{reports[1]}, groups[Large])
	assert.Empty(t, groups[Medium])
}
