// Package common holds helpers shared by the CLI verbs.
package common

import (
	"log/slog"
	"os"

	"github.com/civilpm/planset-review/models"
	"github.com/civilpm/planset-review/pkg/db"
)

// NewLogger builds the JSON logger the verbs share. Quiet mode keeps only
// errors so report output stays clean on stdout.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadTaxonomy resolves the discipline/keyword tables: the override file
// when given, built-in defaults otherwise.
func LoadTaxonomy(path string) (models.Taxonomy, error) {
	if path == "" {
		return models.DefaultTaxonomy(), nil
	}
	return models.LoadTaxonomy(path)
}

// OpenAudit opens the review audit database, at an explicit path or the
// default location next to the binary.
func OpenAudit(path string) (*db.DB, error) {
	if path == "" {
		return db.Open()
	}
	return db.OpenPath(path)
}
