package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Review is one row of the audit log
type Review struct {
	ReviewID      int64
	CreatedAt     time.Time
	Source        string
	SizeBytes     int64
	PageCount     int
	ReadablePages int
	SheetCount    int
	FlagCount     int
	DurationMS    int64
	Status        string
	ErrorMessage  string
}

// InsertReview records one analysis invocation and returns its row ID.
func (db *DB) InsertReview(r Review) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO reviews (source, size_bytes, page_count, readable_pages,
			sheet_count, flag_count, duration_ms, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Source, r.SizeBytes, r.PageCount, r.ReadablePages,
		r.SheetCount, r.FlagCount, r.DurationMS, r.Status, nullable(r.ErrorMessage))
	if err != nil {
		return 0, fmt.Errorf("failed to insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get review ID: %w", err)
	}
	return id, nil
}

// ListReviews returns the most recent invocations, newest first.
func (db *DB) ListReviews(limit int) ([]Review, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT review_id, created_at, source, size_bytes, page_count,
			readable_pages, sheet_count, flag_count, duration_ms, status,
			COALESCE(error_message, '')
		FROM reviews
		ORDER BY review_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		var createdAt string
		if err := rows.Scan(&r.ReviewID, &createdAt, &r.Source, &r.SizeBytes,
			&r.PageCount, &r.ReadablePages, &r.SheetCount, &r.FlagCount,
			&r.DurationMS, &r.Status, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		// SQLite stores CURRENT_TIMESTAMP as UTC text
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			r.CreatedAt = t
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
