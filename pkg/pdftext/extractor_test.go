package pdftext

import (
	"errors"
	"strings"
	"testing"

	"github.com/civilpm/planset-review/pkg/pdftext/pdftest"
)

func TestExtractRejectsNonPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("this is not a pdf at all")},
		{name: "truncated header", data: []byte("%PDF-1.4\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data)
			if err == nil {
				t.Fatal("Extract() returned nil error for invalid input")
			}
			var docErr *DocumentError
			if !errors.As(err, &docErr) {
				t.Errorf("Extract() error = %T, want *DocumentError", err)
			}
		})
	}
}

func TestExtractPageOrderAndContiguity(t *testing.T) {
	texts := []string{
		"COVER SHEET",
		"C-101 GRADING PLAN",
		"S-201 FOUNDATION DETAILS",
		"E-101 SITE LIGHTING",
		"M-101 HVAC PLAN",
	}
	pages, err := Extract(pdftest.Build(texts))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(pages) != len(texts) {
		t.Fatalf("len(pages) = %d, want %d", len(pages), len(texts))
	}
	for i, page := range pages {
		if page.PageNumber != i+1 {
			t.Errorf("pages[%d].PageNumber = %d, want %d", i, page.PageNumber, i+1)
		}
		if !page.Readable {
			t.Errorf("pages[%d] not readable", i)
		}
		token := strings.Fields(texts[i])[0]
		if !strings.Contains(page.RawText, token) {
			t.Errorf("pages[%d].RawText = %q, want it to contain %q", i, page.RawText, token)
		}
	}
}

func TestExtractUnreadablePage(t *testing.T) {
	pages, err := Extract(pdftest.Build([]string{"C-101 GRADING PLAN", "", "S-201 DETAILS"}))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}

	if !pages[0].Readable || !pages[2].Readable {
		t.Error("text-bearing pages should be readable")
	}
	if pages[1].Readable {
		t.Error("empty page should be unreadable")
	}
	if pages[1].RawText != "" {
		t.Errorf("unreadable page RawText = %q, want empty", pages[1].RawText)
	}
}

func TestExtractAllPagesUnreadable(t *testing.T) {
	pages, err := Extract(pdftest.Build([]string{"", "", ""}))
	if err != nil {
		t.Fatalf("Extract() error = %v, want nil for a structurally valid PDF", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	for i, page := range pages {
		if page.Readable {
			t.Errorf("pages[%d].Readable = true, want false", i)
		}
	}
}
