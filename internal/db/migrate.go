package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the job store schema. Every statement is idempotent so
// the whole set runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Opaque job store values (booking ids, content ids, type, quantity) are
// kept as raw JSON text so they are returned exactly as submitted.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		job_number      TEXT PRIMARY KEY,
		job_booking_id  TEXT,
		client_name     TEXT NOT NULL DEFAULT '',
		job_name        TEXT NOT NULL DEFAULT '',
		order_quantity  INTEGER NOT NULL DEFAULT 0,
		po_date         TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contents (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		job_number      TEXT NOT NULL REFERENCES jobs(job_number) ON DELETE CASCADE,
		plan_cont_name  TEXT NOT NULL,
		contents_id     TEXT,
		plan_cont_type  TEXT,
		plan_cont_qty   TEXT,
		order_index     INTEGER NOT NULL DEFAULT 0,
		updated_at      TEXT NOT NULL,
		UNIQUE(job_number, plan_cont_name)
	)`,

	`CREATE TABLE IF NOT EXISTS content_colors (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id           INTEGER NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		color_specification  TEXT NOT NULL DEFAULT '',
		form_side            TEXT NOT NULL DEFAULT '',
		item_group_id        INTEGER NOT NULL DEFAULT 0,
		item_id              INTEGER,
		item_name            TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_items (
		item_id        TEXT PRIMARY KEY,
		item_name      TEXT NOT NULL,
		item_group_id  INTEGER NOT NULL DEFAULT 3
	)`,

	`CREATE TABLE IF NOT EXISTS color_submissions (
		id              TEXT PRIMARY KEY,
		job_number      TEXT NOT NULL,
		plan_cont_name  TEXT NOT NULL,
		color_count     INTEGER NOT NULL,
		payload         TEXT NOT NULL,
		submitted_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contents_job ON contents(job_number, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_content_colors_content ON content_colors(content_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_items_name ON catalog_items(item_name)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_job ON color_submissions(job_number, submitted_at)`,
}
