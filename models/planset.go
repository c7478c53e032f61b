// Package models defines the data structures shared across the planset
// analysis pipeline.
package models

// PageText is the raw text layer of a single PDF page. Immutable once
// produced by the extractor.
type PageText struct {
	PageNumber int    `json:"page_number"` // 1-based, document order
	RawText    string `json:"raw_text"`
	Readable   bool   `json:"readable"` // false when no text layer could be extracted
}

// ProjectMetadata holds the title-block fields recovered from the front
// pages of a planset. Every field is optional; empty means the label was
// never found, which is a valid outcome.
type ProjectMetadata struct {
	ProjectName string `json:"project_name,omitempty"`
	Address     string `json:"address,omitempty"`
	Date        string `json:"date,omitempty"`
	Engineer    string `json:"engineer_or_architect,omitempty"`
	Revision    string `json:"revision,omitempty"`
}

// SheetEntry is one row of the sheet index. Prefix is the letter portion of
// the sheet number ("C" in "C-101", "FP" in "FP-2"); Discipline is the
// resolved name filled in by the classifier.
type SheetEntry struct {
	SheetNumber string `json:"sheet_number"`
	Title       string `json:"title,omitempty"`
	SourcePage  int    `json:"source_page"`
	Prefix      string `json:"discipline_code"`
	Discipline  string `json:"discipline,omitempty"`
}

// FlagCategory buckets detected keywords for the PM.
type FlagCategory string

const (
	CategoryCoordination FlagCategory = "Coordination"
	CategoryPermit       FlagCategory = "Permit"
	CategoryScheduling   FlagCategory = "Scheduling"
	CategoryRisk         FlagCategory = "Risk"
)

// CategoryOrder is the fixed presentation order for flagged features.
var CategoryOrder = []FlagCategory{
	CategoryRisk,
	CategoryPermit,
	CategoryCoordination,
	CategoryScheduling,
}

// CategoryRank returns the position of c in CategoryOrder. Unknown
// categories sort last.
func CategoryRank(c FlagCategory) int {
	for i, cat := range CategoryOrder {
		if cat == c {
			return i
		}
	}
	return len(CategoryOrder)
}

// FeatureFlag records every page a taxonomy keyword was seen on. One flag
// per keyword no matter how many pages hit.
type FeatureFlag struct {
	Keyword  string       `json:"keyword"`
	Category FlagCategory `json:"category"`
	Pages    []int        `json:"pages"` // ascending page numbers, deduplicated
}

// ReviewReport is the terminal result of one analysis run. Built once per
// document and never mutated afterwards.
type ReviewReport struct {
	Metadata      ProjectMetadata `json:"metadata"`
	Sheets        []SheetEntry    `json:"sheet_index"`        // natural sheet-number order
	Disciplines   map[string]int  `json:"discipline_summary"` // discipline name -> sheet count
	Flags         []FeatureFlag   `json:"flags"`              // category order, then first occurrence page
	PageCount     int             `json:"page_count"`
	ReadablePages int             `json:"readable_pages"`

	// ReportText is the rendered plain-text review, filled in by the
	// orchestrator. Excluded from the JSON export since it duplicates the
	// structured fields.
	ReportText string `json:"-"`
}
