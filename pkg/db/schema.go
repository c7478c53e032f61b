package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Review audit log: one row per analysis invocation. Only run facts are
-- recorded here; the extracted page text and the report itself are never
-- persisted.
CREATE TABLE IF NOT EXISTS reviews (
    review_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

    source TEXT NOT NULL,              -- filename or upload marker
    size_bytes INTEGER NOT NULL,

    -- Analysis shape
    page_count INTEGER DEFAULT 0,
    readable_pages INTEGER DEFAULT 0,
    sheet_count INTEGER DEFAULT 0,
    flag_count INTEGER DEFAULT 0,

    duration_ms INTEGER DEFAULT 0,
    status TEXT NOT NULL,              -- "success" or "error"
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at);
CREATE INDEX IF NOT EXISTS idx_reviews_status ON reviews(status);
`
