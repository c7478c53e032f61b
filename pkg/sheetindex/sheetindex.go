// Package sheetindex finds sheet-number call-outs in page text and builds
// the ordered sheet catalogue.
package sheetindex

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/civilpm/planset-review/models"
)

// Sheet numbers are one or two letters, an optional single-digit
// discipline sub-code, an optional separator, and a numeric id:
// A-101, C101, S-3.1, M-2.0, FP-2. Extracted PDF text rarely keeps clean
// line structure, so the token is matched anywhere and the first hit per
// page is taken as that page's primary sheet number.
var sheetNumberRe = regexp.MustCompile(`\b([A-Z]{1,2}\d?-?\d+(?:\.\d+)?)\b[ \t]*:?[ \t]*([^\n]*)`)

var prefixRe = regexp.MustCompile(`^[A-Z]{1,2}`)

const maxTitleLen = 60

// Parse scans readable pages in document order and returns the
// deduplicated sheet catalogue in natural sheet-number order. A duplicate
// sheet number keeps its first page and later occurrences are dropped.
// Pages with no discoverable number contribute nothing.
func Parse(pages []models.PageText) []models.SheetEntry {
	seen := make(map[string]bool)
	var entries []models.SheetEntry

	for _, page := range pages {
		if !page.Readable {
			continue
		}
		entry, ok := primarySheet(page)
		if !ok {
			continue
		}
		if seen[entry.SheetNumber] {
			continue
		}
		seen[entry.SheetNumber] = true
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return naturalLess(entries[i].SheetNumber, entries[j].SheetNumber)
	})
	return entries
}

// primarySheet returns the first sheet-number token on the page; no page
// contributes more than one entry.
func primarySheet(page models.PageText) (models.SheetEntry, bool) {
	m := sheetNumberRe.FindStringSubmatch(page.RawText)
	if m == nil {
		return models.SheetEntry{}, false
	}
	number := m[1]
	return models.SheetEntry{
		SheetNumber: number,
		Title:       cleanTitle(m[2]),
		SourcePage:  page.PageNumber,
		Prefix:      prefixRe.FindString(number),
	}, true
}

// cleanTitle keeps the text immediately following the token if it looks
// like a real title. Trivial remainders (page noise, bare numbers) are
// dropped.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)

	// Stop at characters that never appear in drawing titles; everything
	// past them is body text bleeding in.
	if cut := strings.IndexAny(s, "|=<>*_"); cut >= 0 {
		s = strings.TrimSpace(s[:cut])
	}
	if len(s) > maxTitleLen {
		s = s[:maxTitleLen]
		if sp := strings.LastIndexByte(s, ' '); sp > 0 {
			s = s[:sp]
		}
	}
	s = strings.TrimRight(s, ".,;:- ")

	if len(s) < 3 || !containsLetter(s) {
		return ""
	}
	return s
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// naturalLess compares sheet numbers so numeric runs order by value:
// A-2 sorts before A-10, which lexical comparison gets wrong.
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		aChunk, aRest, aNum := chunk(a)
		bChunk, bRest, bNum := chunk(b)

		if aNum && bNum {
			av, _ := strconv.Atoi(aChunk)
			bv, _ := strconv.Atoi(bChunk)
			if av != bv {
				return av < bv
			}
		} else if aChunk != bChunk {
			return aChunk < bChunk
		}
		a, b = aRest, bRest
	}
	return len(a) < len(b)
}

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (head, rest string, numeric bool) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], s[i:], numeric
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
