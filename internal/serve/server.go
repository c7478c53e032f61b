// Package serve implements the `serve` CLI verb: a small HTTP surface
// that accepts planset uploads and returns the rendered review.
package serve

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/db"
	"github.com/civilpm/planset-review/pkg/pdftext"
	"github.com/civilpm/planset-review/pkg/planset"
	"github.com/civilpm/planset-review/pkg/report"
)

// Plansets for large projects run to hundreds of sheets; half a gigabyte
// covers everything seen in practice.
const maxUploadBytes = 500 << 20

var pdfSignature = []byte("%PDF-")

type Server struct {
	logger   *slog.Logger
	analyzer *planset.Analyzer
	audit    *db.DB // nil when the audit database is unavailable
}

func NewServer(logger *slog.Logger, analyzer *planset.Analyzer, audit *db.DB) *Server {
	return &Server{logger: logger, analyzer: analyzer, audit: audit}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/review", s.handleReview)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

type reviewResponse struct {
	Success   bool            `json:"success"`
	RequestID string          `json:"request_id"`
	PageCount int             `json:"page_count,omitempty"`
	Report    string          `json:"report,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Error("missing or invalid upload", "error", err)
		writeJSON(w, http.StatusBadRequest, reviewResponse{
			RequestID: requestID,
			Error:     "Please upload a PDF file in the 'file' form field.",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read upload", "error", err)
		writeJSON(w, http.StatusBadRequest, reviewResponse{
			RequestID: requestID,
			Error:     "Failed to read the uploaded file.",
		})
		return
	}

	if !bytes.HasPrefix(data, pdfSignature) {
		logger.Error("upload is not a PDF", "filename", header.Filename)
		writeJSON(w, http.StatusBadRequest, reviewResponse{
			RequestID: requestID,
			Error:     "The uploaded file does not appear to be a PDF.",
		})
		return
	}

	logger.Info("review started", "filename", header.Filename, "size_bytes", len(data))

	start := time.Now()
	result, analyzeErr := s.analyzer.Analyze(data)
	elapsed := time.Since(start)

	s.recordAudit(logger, header.Filename, int64(len(data)), result, analyzeErr, elapsed)

	if analyzeErr != nil {
		logger.Error("analysis failed", "filename", header.Filename, "error", analyzeErr)
		var docErr *pdftext.DocumentError
		if errors.As(analyzeErr, &docErr) {
			writeJSON(w, http.StatusBadRequest, reviewResponse{
				RequestID: requestID,
				Error:     "Could not read this file. Please make sure it is a valid planset PDF.",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, reviewResponse{
			RequestID: requestID,
			Error:     "Analysis failed unexpectedly. Please try again.",
		})
		return
	}

	export, err := report.Export(result)
	if err != nil {
		logger.Error("failed to export review JSON", "error", err)
		writeJSON(w, http.StatusInternalServerError, reviewResponse{
			RequestID: requestID,
			Error:     "Failed to serialize the review.",
		})
		return
	}

	logger.Info("review complete",
		"filename", header.Filename,
		"pages", result.PageCount,
		"sheets", len(result.Sheets),
		"flags", len(result.Flags),
		"duration_ms", elapsed.Milliseconds())

	writeJSON(w, http.StatusOK, reviewResponse{
		Success:   true,
		RequestID: requestID,
		PageCount: result.PageCount,
		Report:    result.ReportText,
		Data:      export,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// recordAudit logs the invocation when the audit database is available.
// Audit failures never fail the request.
func (s *Server) recordAudit(logger *slog.Logger, filename string, size int64, result *models.ReviewReport, analyzeErr error, elapsed time.Duration) {
	if s.audit == nil {
		return
	}

	row := db.Review{
		Source:     filename,
		SizeBytes:  size,
		DurationMS: elapsed.Milliseconds(),
		Status:     "success",
	}
	if analyzeErr != nil {
		row.Status = "error"
		row.ErrorMessage = analyzeErr.Error()
	} else {
		row.PageCount = result.PageCount
		row.ReadablePages = result.ReadablePages
		row.SheetCount = len(result.Sheets)
		row.FlagCount = len(result.Flags)
	}

	if _, err := s.audit.InsertReview(row); err != nil {
		logger.Warn("failed to record review", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
