// Package features scans page text against the curated keyword taxonomy
// and produces the flagged-feature list for the PM.
package features

import (
	"regexp"
	"sort"

	"github.com/civilpm/planset-review/models"
)

// Detect returns one flag per taxonomy keyword found anywhere in the
// readable pages, with the ascending list of pages it occurred on. A
// keyword seen on five pages is still a single flag. Flags come back in
// fixed category order (Risk, Permit, Coordination, Scheduling), then by
// first occurrence page. The scan is pure and cannot fail.
func Detect(pages []models.PageText, taxonomy models.Taxonomy) []models.FeatureFlag {
	readable := make([]models.PageText, 0, len(pages))
	for _, page := range pages {
		if page.Readable {
			readable = append(readable, page)
		}
	}

	var flags []models.FeatureFlag
	for _, entry := range taxonomy.Keywords {
		patterns := compileTerms(entry)

		var hits []int
		for _, page := range readable {
			for _, re := range patterns {
				if re.MatchString(page.RawText) {
					hits = append(hits, page.PageNumber)
					break
				}
			}
		}
		if len(hits) == 0 {
			continue
		}
		flags = append(flags, models.FeatureFlag{
			Keyword:  entry.Label,
			Category: entry.Category,
			Pages:    hits,
		})
	}

	sort.SliceStable(flags, func(i, j int) bool {
		ri, rj := models.CategoryRank(flags[i].Category), models.CategoryRank(flags[j].Category)
		if ri != rj {
			return ri < rj
		}
		return flags[i].Pages[0] < flags[j].Pages[0]
	})
	return flags
}

// compileTerms builds case-insensitive whole-word matchers for a keyword's
// match terms. Word anchoring keeps short keywords like "ADA" from firing
// inside unrelated words.
func compileTerms(entry models.KeywordEntry) []*regexp.Regexp {
	terms := entry.Match
	if len(terms) == 0 {
		terms = []string{entry.Label}
	}
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}
