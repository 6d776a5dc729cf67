package branch

import "libraryhub/pkg/models"

// Cities returns the distinct city names in first-seen order, for the
// primary selector of the city/branch cascade.
func Cities(branches []models.Branch) []string {
	seen := make(map[string]bool, len(branches))
	out := make([]string, 0, len(branches))
	for _, b := range branches {
		if seen[b.City] {
			continue
		}
		seen[b.City] = true
		out = append(out, b.City)
	}
	return out
}

// FilterByCity mirrors the client-side dependent-select filter:
// case-sensitive equality, original order kept.
func FilterByCity(branches []models.Branch, city string) []models.Branch {
	out := make([]models.Branch, 0, len(branches))
	for _, b := range branches {
		if b.City == city {
			out = append(out, b)
		}
	}
	return out
}
