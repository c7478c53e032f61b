// Package titleblock recovers project-identifying fields from the front
// pages of a planset. Title-block data is conventionally front-loaded, so
// only a small window of pages is scanned.
package titleblock

import (
	"strings"

	"github.com/civilpm/planset-review/models"
)

// pageWindow is how many leading pages are scanned for labels.
const pageWindow = 3

type fieldID int

const (
	fieldProject fieldID = iota
	fieldAddress
	fieldDate
	fieldEngineer
	fieldRevision
	fieldCount
)

// fieldLabels maps each metadata field to the label variants seen in real
// title blocks. Order matters: earlier variants are preferred when two
// labels share a line.
var fieldLabels = []struct {
	field  fieldID
	labels []string
}{
	{fieldProject, []string{"project name", "project:", "project title", "job name", "job no", "sheet title"}},
	{fieldAddress, []string{"site address", "address", "site:", "location:"}},
	{fieldDate, []string{"issue date", "date:", "dated"}},
	{fieldEngineer, []string{"engineer of record", "engineer:", "architect:", "prepared by", "designed by"}},
	{fieldRevision, []string{"revision", "rev:", "rev."}},
}

// Extract scans the first pages for labelled title-block fields. It never
// fails; fields whose labels are absent stay empty. First match wins and a
// field is never overwritten.
func Extract(pages []models.PageText) models.ProjectMetadata {
	values := make([]string, fieldCount)
	found := 0

	for i, page := range pages {
		if i >= pageWindow || found == int(fieldCount) {
			break
		}
		if !page.Readable {
			continue
		}

		lines := strings.Split(page.RawText, "\n")
		for li, line := range lines {
			lower := strings.ToLower(line)
			for _, fl := range fieldLabels {
				if values[fl.field] != "" {
					continue
				}
				for _, label := range fl.labels {
					idx := matchLabel(lower, label)
					if idx < 0 {
						continue
					}
					value := valueAfterLabel(line, idx+len(label), lines, li)
					if value == "" {
						continue
					}
					values[fl.field] = value
					found++
					break
				}
			}
		}
	}

	return models.ProjectMetadata{
		ProjectName: values[fieldProject],
		Address:     values[fieldAddress],
		Date:        values[fieldDate],
		Engineer:    values[fieldEngineer],
		Revision:    values[fieldRevision],
	}
}

// matchLabel finds label in line, rejecting matches embedded inside a
// longer word ("update:" must not match "date:").
func matchLabel(line, label string) int {
	from := 0
	for {
		idx := strings.Index(line[from:], label)
		if idx < 0 {
			return -1
		}
		idx += from
		if idx == 0 || !isLetter(line[idx-1]) {
			return idx
		}
		from = idx + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// valueAfterLabel takes the text following the label on the same line, or
// the next non-empty line when the label ends its line.
func valueAfterLabel(line string, rest int, lines []string, li int) string {
	if v := cleanValue(line[rest:]); v != "" {
		return v
	}
	for _, next := range lines[li+1:] {
		if v := cleanValue(next); v != "" {
			return v
		}
		if strings.TrimSpace(next) != "" {
			break
		}
	}
	return ""
}

// cleanValue trims separators, whitespace, and trailing punctuation.
func cleanValue(s string) string {
	s = strings.TrimLeft(s, ".:-– \t")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:-– \t")
	return s
}
