package planset

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/pdftext"
	"github.com/civilpm/planset-review/pkg/pdftext/pdftest"
)

func newAnalyzer() *Analyzer {
	return New(models.DefaultTaxonomy())
}

func pagesFrom(texts ...string) []models.PageText {
	pages := make([]models.PageText, len(texts))
	for i, text := range texts {
		pages[i] = models.PageText{PageNumber: i + 1, RawText: text, Readable: text != ""}
	}
	return pages
}

// The canonical three-page walkthrough: metadata on the cover, a civil and
// a structural sheet, one risk keyword.
func TestAnalyzePagesScenario(t *testing.T) {
	review := newAnalyzer().AnalyzePages(pagesFrom(
		"PROJECT: Maple St. Bridge",
		"C-101 Grading Plan\nretaining wall required",
		"S-201 Foundation Details",
	))

	if review.Metadata.ProjectName != "Maple St. Bridge" {
		t.Errorf("ProjectName = %q, want \"Maple St. Bridge\"", review.Metadata.ProjectName)
	}

	if len(review.Sheets) != 2 {
		t.Fatalf("len(Sheets) = %d, want 2", len(review.Sheets))
	}
	if review.Sheets[0].SheetNumber != "C-101" || review.Sheets[0].Discipline != "Civil" {
		t.Errorf("Sheets[0] = %+v, want C-101/Civil", review.Sheets[0])
	}
	if review.Sheets[1].SheetNumber != "S-201" || review.Sheets[1].Discipline != "Structural" {
		t.Errorf("Sheets[1] = %+v, want S-201/Structural", review.Sheets[1])
	}

	want := map[string]int{"Civil": 1, "Structural": 1}
	if !reflect.DeepEqual(review.Disciplines, want) {
		t.Errorf("Disciplines = %v, want %v", review.Disciplines, want)
	}

	if len(review.Flags) != 1 {
		t.Fatalf("len(Flags) = %d, want 1", len(review.Flags))
	}
	flag := review.Flags[0]
	if flag.Keyword != "retaining wall" || flag.Category != models.CategoryRisk {
		t.Errorf("flag = %+v, want retaining wall/Risk", flag)
	}
	if !reflect.DeepEqual(flag.Pages, []int{2}) {
		t.Errorf("flag.Pages = %v, want [2]", flag.Pages)
	}

	if review.ReportText == "" {
		t.Error("ReportText empty")
	}
}

func TestAnalyzePagesCountInvariant(t *testing.T) {
	review := newAnalyzer().AnalyzePages(pagesFrom(
		"C-101 GRADING PLAN",
		"C-101 GRADING PLAN", // duplicate, dropped
		"ZZ-9 MYSTERY SHEET",
		"S-201 FOUNDATION DETAILS",
	))

	total := 0
	for _, count := range review.Disciplines {
		total += count
	}
	if total != len(review.Sheets) {
		t.Errorf("discipline counts sum to %d, want %d distinct sheets", total, len(review.Sheets))
	}
	if review.Disciplines["Unclassified"] != 1 {
		t.Errorf("Unclassified = %d, want 1 for the ZZ prefix", review.Disciplines["Unclassified"])
	}
}

func TestAnalyzePagesAllUnreadable(t *testing.T) {
	pages := []models.PageText{
		{PageNumber: 1},
		{PageNumber: 2},
	}
	review := newAnalyzer().AnalyzePages(pages)

	if review.Metadata != (models.ProjectMetadata{}) {
		t.Errorf("Metadata = %+v, want empty", review.Metadata)
	}
	if len(review.Sheets) != 0 || len(review.Flags) != 0 {
		t.Errorf("Sheets/Flags = %d/%d, want 0/0", len(review.Sheets), len(review.Flags))
	}
	if review.ReadablePages != 0 || review.PageCount != 2 {
		t.Errorf("PageCount/ReadablePages = %d/%d, want 2/0", review.PageCount, review.ReadablePages)
	}
	if !strings.Contains(review.ReportText, "Unclassified: 0") {
		t.Errorf("report missing explicit empty discipline summary:\n%s", review.ReportText)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	data := pdftest.Build([]string{
		"PROJECT: Cedar Creek Culvert",
		"C-101 GRADING PLAN",
		"S-201 FOUNDATION DETAILS",
	})

	review, err := newAnalyzer().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if review.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", review.PageCount)
	}
	if review.Metadata.ProjectName != "Cedar Creek Culvert" {
		t.Errorf("ProjectName = %q, want \"Cedar Creek Culvert\"", review.Metadata.ProjectName)
	}
	if len(review.Sheets) != 2 {
		t.Fatalf("len(Sheets) = %d, want 2: %+v", len(review.Sheets), review.Sheets)
	}
	if review.Sheets[0].SheetNumber != "C-101" {
		t.Errorf("Sheets[0].SheetNumber = %q, want \"C-101\"", review.Sheets[0].SheetNumber)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	data := pdftest.Build([]string{
		"PROJECT: Idempotence Plant",
		"C-101 GRADING PLAN",
		"E-201 ELECTRICAL ONE-LINE",
		"RETAINING WALL NOTES",
	})

	first, err := newAnalyzer().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := newAnalyzer().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.ReportText != second.ReportText {
		t.Error("identical bytes produced different reports")
	}
	if !reflect.DeepEqual(first.Sheets, second.Sheets) {
		t.Error("identical bytes produced different sheet indexes")
	}
}

func TestAnalyzeRejectsCorruptDocument(t *testing.T) {
	_, err := newAnalyzer().Analyze([]byte("definitely not a pdf"))
	if err == nil {
		t.Fatal("Analyze() returned nil error for corrupt input")
	}
	var docErr *pdftext.DocumentError
	if !errors.As(err, &docErr) {
		t.Errorf("error = %T, want *pdftext.DocumentError", err)
	}
}
