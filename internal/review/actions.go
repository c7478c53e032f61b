// Package review implements the `review` CLI verb: analyze one planset
// PDF and print the PM report.
package review

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/civilpm/planset-review/internal/common"
	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/db"
	"github.com/civilpm/planset-review/pkg/pdftext"
	"github.com/civilpm/planset-review/pkg/planset"
	"github.com/civilpm/planset-review/pkg/report"
	"github.com/civilpm/planset-review/pkg/storage"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	path := c.Args().First()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: plansetreview review [options] <planset.pdf>")
		os.Exit(1)
	}

	taxonomy, err := common.LoadTaxonomy(c.String("taxonomy"))
	if err != nil {
		logger.Error("failed to load taxonomy", "error", err)
		os.Exit(2)
	}

	store := &storage.Storage{}
	data, err := store.ReadFile(path)
	if err != nil {
		logger.Error("failed to read planset file", "file", path, "error", err)
		os.Exit(2)
	}

	analyzer := planset.New(taxonomy)
	start := time.Now()
	result, analyzeErr := analyzer.Analyze(data)
	elapsed := time.Since(start)

	recordAudit(logger, c.String("db"), filepath.Base(path), int64(len(data)), result, analyzeErr, elapsed)

	if analyzeErr != nil {
		var docErr *pdftext.DocumentError
		if errors.As(analyzeErr, &docErr) {
			fmt.Fprintln(os.Stderr, "Could not read this file. Please make sure it is a valid planset PDF.")
		}
		logger.Error("analysis failed", "file", path, "error", analyzeErr)
		os.Exit(1)
	}

	logger.Info("analysis complete",
		"file", path,
		"pages", result.PageCount,
		"readable_pages", result.ReadablePages,
		"sheets", len(result.Sheets),
		"flags", len(result.Flags),
		"duration_ms", elapsed.Milliseconds())

	output := []byte(result.ReportText)
	if c.Bool("json") {
		output, err = report.Export(result)
		if err != nil {
			logger.Error("failed to export review JSON", "error", err)
			os.Exit(2)
		}
		output = append(output, '\n')
	}
	if _, err := os.Stdout.Write(output); err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(2)
	}

	if dir := c.String("output-dir"); dir != "" {
		saveArtifacts(logger, store, dir, path, result)
	}
	return nil
}

// recordAudit logs the invocation to the audit database. Audit failures
// are warnings, never review failures.
func recordAudit(logger *slog.Logger, dbPath, source string, size int64, result *models.ReviewReport, analyzeErr error, elapsed time.Duration) {
	database, err := common.OpenAudit(dbPath)
	if err != nil {
		logger.Warn("audit database unavailable", "error", err)
		return
	}
	defer database.Close()

	row := db.Review{
		Source:     source,
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

	if _, err := database.InsertReview(row); err != nil {
		logger.Warn("failed to record review", "error", err)
	}
}

// saveArtifacts writes the report text and JSON export next to each other
// under the output directory.
func saveArtifacts(logger *slog.Logger, s *storage.Storage, dir, path string, result *models.ReviewReport) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	reportPath := filepath.Join(dir, base+"-review.txt")
	if err := s.SaveFile(reportPath, []byte(result.ReportText)); err != nil {
		logger.Error("failed to save report", "path", reportPath, "error", err)
		return
	}

	export, err := report.Export(result)
	if err != nil {
		logger.Error("failed to export review JSON", "error", err)
		return
	}
	jsonPath := filepath.Join(dir, base+"-review.json")
	if err := s.SaveFile(jsonPath, export); err != nil {
		logger.Error("failed to save review JSON", "path", jsonPath, "error", err)
		return
	}

	logger.Info("saved review artifacts", "report", reportPath, "json", jsonPath)
}
