package report

import (
	"encoding/json"
	"fmt"

	"github.com/civilpm/planset-review/models"
)

// Export serializes the structured analysis as indented JSON for callers
// that want machine-readable output next to the rendered text. Map keys
// marshal in sorted order, so the export is as deterministic as the text.
func Export(r *models.ReviewReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshalling review: %w", err)
	}
	return data, nil
}
