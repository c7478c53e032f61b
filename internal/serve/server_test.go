package serve

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/pdftext/pdftest"
	"github.com/civilpm/planset-review/pkg/planset"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewServer(logger, planset.New(models.DefaultTaxonomy()), nil)
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/review", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("status = %q, want \"healthy\"", payload["status"])
	}
}

func TestReviewHappyPath(t *testing.T) {
	data := pdftest.Build([]string{
		"PROJECT: Maple St. Bridge",
		"C-101 GRADING PLAN",
		"S-201 FOUNDATION DETAILS",
	})

	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, uploadRequest(t, "maple.pdf", data))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp reviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Errorf("Success = false, error = %q", resp.Error)
	}
	if resp.RequestID == "" {
		t.Error("RequestID empty")
	}
	if resp.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", resp.PageCount)
	}
	if !strings.Contains(resp.Report, "PLANSET REVIEW") {
		t.Errorf("Report missing header:\n%s", resp.Report)
	}
	if !strings.Contains(resp.Report, "Maple St. Bridge") {
		t.Error("Report missing project name")
	}

	var export models.ReviewReport
	if err := json.Unmarshal(resp.Data, &export); err != nil {
		t.Fatalf("decoding data payload: %v", err)
	}
	if len(export.Sheets) != 2 {
		t.Errorf("exported sheet count = %d, want 2", len(export.Sheets))
	}
}

func TestReviewRejectsNonPDF(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, uploadRequest(t, "notes.txt", []byte("just some text")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp reviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Success {
		t.Error("Success = true for a non-PDF upload")
	}
	if !strings.Contains(resp.Error, "does not appear to be a PDF") {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestReviewRejectsCorruptPDF(t *testing.T) {
	// Correct signature, garbage body.
	data := []byte("%PDF-1.4\nthis is not a real document")

	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, uploadRequest(t, "broken.pdf", data))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	var resp reviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Error, "Could not read this file") {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestReviewMissingFormField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader("no multipart here"))

	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
