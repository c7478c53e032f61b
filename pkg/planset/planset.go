// Package planset orchestrates the analysis pipeline: PDF bytes in, PM
// review report out. Each call is independent; nothing is cached or
// shared across documents.
package planset

import (
	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/discipline"
	"github.com/civilpm/planset-review/pkg/features"
	"github.com/civilpm/planset-review/pkg/pdftext"
	"github.com/civilpm/planset-review/pkg/report"
	"github.com/civilpm/planset-review/pkg/sheetindex"
	"github.com/civilpm/planset-review/pkg/titleblock"
)

// Analyzer runs reviews against one fixed taxonomy. It is stateless apart
// from the lookup tables and safe for concurrent use.
type Analyzer struct {
	taxonomy models.Taxonomy
}

func New(taxonomy models.Taxonomy) *Analyzer {
	return &Analyzer{taxonomy: taxonomy}
}

// Analyze runs the full pipeline on raw PDF bytes. The only possible
// failure is a *pdftext.DocumentError for a stream that cannot be opened
// as a PDF; a structurally valid PDF always yields a report, even when
// every page is unreadable.
func (a *Analyzer) Analyze(data []byte) (*models.ReviewReport, error) {
	pages, err := pdftext.Extract(data)
	if err != nil {
		return nil, err
	}
	return a.AnalyzePages(pages), nil
}

// AnalyzePages runs the text-level analysis on already extracted pages.
// It cannot fail: missing metadata, an empty sheet index, and zero flags
// are all valid outcomes.
func (a *Analyzer) AnalyzePages(pages []models.PageText) *models.ReviewReport {
	readable := 0
	for _, page := range pages {
		if page.Readable {
			readable++
		}
	}

	sheets := sheetindex.Parse(pages)
	summary := discipline.Classify(sheets, a.taxonomy)

	review := &models.ReviewReport{
		Metadata:      titleblock.Extract(pages),
		Sheets:        sheets,
		Disciplines:   summary,
		Flags:         features.Detect(pages, a.taxonomy),
		PageCount:     len(pages),
		ReadablePages: readable,
	}
	review.ReportText = report.Render(review)
	return review
}
