package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"jobs", "contents", "content_colors", "catalog_items", "color_submissions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_contents_job",
		"idx_content_colors_content",
		"idx_catalog_items_name",
		"idx_submissions_job",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)

	_, err := db.Exec(`INSERT INTO contents (job_number, plan_cont_name, updated_at) VALUES ('missing', 'Box A', '2026-01-01')`)
	assert.Error(t, err, "contents must reference an existing job")
}

func TestOpenDB_ContentNameUniquePerJob(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (job_number, created_at, updated_at) VALUES ('J-1', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO contents (job_number, plan_cont_name, updated_at) VALUES ('J-1', 'Box A', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO contents (job_number, plan_cont_name, updated_at) VALUES ('J-1', 'Box A', 'now')`)
	assert.Error(t, err)
}

func TestOpenDB_DeletingJobCascades(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO jobs (job_number, created_at, updated_at) VALUES ('J-2', 'now', 'now')`)
	require.NoError(t, err)
	res, err := db.Exec(`INSERT INTO contents (job_number, plan_cont_name, updated_at) VALUES ('J-2', 'Lid', 'now')`)
	require.NoError(t, err)
	contentID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO content_colors (content_id, position, item_name) VALUES (?, 0, 'Red')`, contentID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM jobs WHERE job_number = 'J-2'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM content_colors`).Scan(&n))
	assert.Zero(t, n)
}
