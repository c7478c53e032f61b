// Package pdftext turns a PDF byte stream into ordered per-page text
// blocks. Pages without an extractable text layer (scanned images, broken
// content streams) are reported as unreadable rather than failing the
// document.
package pdftext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/civilpm/planset-review/models"
)

// DocumentError means the byte stream could not be opened as a PDF at all.
// It is the only failure mode of extraction; per-page problems are not
// errors.
type DocumentError struct {
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable document: %s", e.Reason)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Pages are independent of each other, so extraction fans out across a
// small fixed pool.
const extractWorkers = 4

// Extract returns one PageText per physical page, in document order. Page
// numbers are contiguous starting at 1.
func Extract(data []byte) ([]models.PageText, error) {
	if len(data) == 0 {
		return nil, &DocumentError{Reason: "empty byte stream"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentError{Reason: "not a parseable PDF", Err: err}
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, &DocumentError{Reason: "document has zero pages"}
	}

	jobs := make(chan int, total)
	results := make(chan models.PageText, total)

	workers := extractWorkers
	if total < workers {
		workers = total
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for num := range jobs {
				results <- extractPage(reader, num)
			}
		}()
	}

	for num := 1; num <= total; num++ {
		jobs <- num
	}
	close(jobs)

	wg.Wait()
	close(results)

	pages := make([]models.PageText, 0, total)
	for page := range results {
		pages = append(pages, page)
	}

	// Worker completion order is nondeterministic; downstream contracts
	// require document order.
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})
	return pages, nil
}

// extractPage never fails: any extraction problem marks the page
// unreadable and processing continues.
func extractPage(reader *pdf.Reader, num int) (page models.PageText) {
	page = models.PageText{PageNumber: num}

	// The pdf library panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			page = models.PageText{PageNumber: num}
		}
	}()

	p := reader.Page(num)
	if p.V.IsNull() {
		return page
	}

	text, err := p.GetPlainText(nil)
	if err != nil || strings.TrimSpace(text) == "" {
		return page
	}

	page.RawText = text
	page.Readable = true
	return page
}
