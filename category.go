package bench

import "strings"

// Category is the problem size label embedded in timing file names.
type Category string

const (
	Small  Category = "small"
	Medium Category = "medium"
	Large  Category = "large"
)

// Categories lists all categories in matching and plotting order.
var Categories = []Category{Small, Medium, Large}

// Categorize returns the first category whose label occurs in name.
func Categorize(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.Contains(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// GroupByCategory buckets reports by category, keeping their order.
// Reports without a category are left out.
func GroupByCategory(reports []Report) map[Category][]Report {
	groups := make(map[Category][]Report)
	for _, r := range reports {
		if r.Category == "" {
			continue
		}
		groups[r.Category] = append(groups[r.Category], r)
	}
	return groups
}
