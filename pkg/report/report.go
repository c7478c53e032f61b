// Package report renders the terminal review artifacts. It is a pure
// formatter: all extraction and ordering decisions happen upstream, and
// rendering the same report value always yields the same text.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/civilpm/planset-review/models"
)

const notFound = "Not found"

// recommendations maps each flag category to the PM action bullet emitted
// when the category has at least one flag.
var recommendations = map[models.FlagCategory]string{
	models.CategoryRisk:         "Walk the flagged risk items with the design engineer before committing to price or means-and-methods.",
	models.CategoryPermit:       "Confirm permit status and agency submittal timelines for the flagged permit items.",
	models.CategoryCoordination: "Schedule coordination with affected utilities, trades, and adjacent owners for the flagged items.",
	models.CategoryScheduling:   "Fold the flagged phasing and lead-time items into the baseline schedule before it is published.",
}

// Render produces the plain-text PM review. It must not fail for any
// well-formed combination of inputs, including an entirely empty report.
func Render(r *models.ReviewReport) string {
	var sb strings.Builder

	sb.WriteString("PLANSET REVIEW\n")
	sb.WriteString("==============\n\n")

	if r.PageCount > 0 && r.ReadablePages == 0 {
		sb.WriteString("No text could be extracted from any page of this planset; all\n")
		sb.WriteString("sections below are empty. The document may be scanned images.\n\n")
	}

	writeSummary(&sb, r)
	writeSheetIndex(&sb, r.Sheets)
	writeDisciplines(&sb, r.Disciplines)
	writeFlags(&sb, r.Flags)
	writeRecommendations(&sb, r.Flags)

	return sb.String()
}

func writeSummary(sb *strings.Builder, r *models.ReviewReport) {
	sb.WriteString("PROJECT SUMMARY\n")
	sb.WriteString("---------------\n")
	fmt.Fprintf(sb, "Project:            %s\n", orNotFound(r.Metadata.ProjectName))
	fmt.Fprintf(sb, "Address:            %s\n", orNotFound(r.Metadata.Address))
	fmt.Fprintf(sb, "Date:               %s\n", orNotFound(r.Metadata.Date))
	fmt.Fprintf(sb, "Engineer/Architect: %s\n", orNotFound(r.Metadata.Engineer))
	fmt.Fprintf(sb, "Revision:           %s\n", orNotFound(r.Metadata.Revision))
	fmt.Fprintf(sb, "Pages:              %d (%d readable)\n\n", r.PageCount, r.ReadablePages)
}

func writeSheetIndex(sb *strings.Builder, sheets []models.SheetEntry) {
	sb.WriteString("SHEET INDEX\n")
	sb.WriteString("-----------\n")
	if len(sheets) == 0 {
		sb.WriteString("  No sheet numbers found.\n\n")
		return
	}
	for _, sheet := range sheets {
		fmt.Fprintf(sb, "  %-8s", sheet.SheetNumber)
		if sheet.Title != "" {
			fmt.Fprintf(sb, " %s", sheet.Title)
		}
		fmt.Fprintf(sb, "  (page %d, %s)\n", sheet.SourcePage, sheet.Discipline)
	}
	sb.WriteString("\n")
}

// writeDisciplines orders by descending count, ties broken by name. An
// empty summary still shows the Unclassified bucket so the reviewer sees
// an explicit zero.
func writeDisciplines(sb *strings.Builder, summary map[string]int) {
	sb.WriteString("DISCIPLINE BREAKDOWN\n")
	sb.WriteString("--------------------\n")
	if len(summary) == 0 {
		sb.WriteString("  Unclassified: 0\n\n")
		return
	}

	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if summary[names[i]] != summary[names[j]] {
			return summary[names[i]] > summary[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(sb, "  %s: %d\n", name, summary[name])
	}
	sb.WriteString("\n")
}

func writeFlags(sb *strings.Builder, flags []models.FeatureFlag) {
	sb.WriteString("FLAGGED FEATURES\n")
	sb.WriteString("----------------\n")
	if len(flags) == 0 {
		sb.WriteString("  No flagged features.\n\n")
		return
	}

	for _, category := range models.CategoryOrder {
		var group []models.FeatureFlag
		for _, flag := range flags {
			if flag.Category == category {
				group = append(group, flag)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(sb, "%s:\n", category)
		for _, flag := range group {
			fmt.Fprintf(sb, "  - %s (%s)\n", flag.Keyword, formatPages(flag.Pages))
		}
	}
	sb.WriteString("\n")
}

func writeRecommendations(sb *strings.Builder, flags []models.FeatureFlag) {
	sb.WriteString("PM RECOMMENDATIONS\n")
	sb.WriteString("------------------\n")

	flagged := make(map[models.FlagCategory]bool)
	for _, flag := range flags {
		flagged[flag.Category] = true
	}

	any := false
	for _, category := range models.CategoryOrder {
		if flagged[category] {
			fmt.Fprintf(sb, "  - %s\n", recommendations[category])
			any = true
		}
	}
	if !any {
		sb.WriteString("  - No immediate PM action items identified from the drawings.\n")
	}
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}

func formatPages(pages []int) string {
	if len(pages) == 1 {
		return fmt.Sprintf("page %d", pages[0])
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "pages " + strings.Join(parts, ", ")
}
