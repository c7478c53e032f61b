// Package discipline maps sheet-number prefixes to engineering
// disciplines and aggregates per-discipline counts.
package discipline

import "github.com/civilpm/planset-review/models"

// Unclassified is the bucket for prefixes with no discipline mapping.
// Landing here is a defined outcome, not an error.
const Unclassified = "Unclassified"

// Classify resolves each entry's discipline in place and returns the
// aggregated sheet counts. The counts always sum to len(entries), and the
// result is independent of entry order.
func Classify(entries []models.SheetEntry, taxonomy models.Taxonomy) map[string]int {
	summary := make(map[string]int)
	for i := range entries {
		name, ok := taxonomy.Disciplines[entries[i].Prefix]
		if !ok {
			name = Unclassified
		}
		entries[i].Discipline = name
		summary[name]++
	}
	return summary
}
