package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

func (r *SQLiteJobRepo) Upsert(ctx context.Context, j *domain.Job) error {
	now := nowUTC()
	query := `INSERT INTO jobs (job_number, job_booking_id, client_name, job_name, order_quantity, po_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_number) DO UPDATE SET
			job_booking_id = excluded.job_booking_id,
			client_name    = excluded.client_name,
			job_name       = excluded.job_name,
			order_quantity = excluded.order_quantity,
			po_date        = excluded.po_date,
			updated_at     = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		j.Number,
		opaqueToValue(j.BookingID),
		j.ClientName,
		j.JobName,
		j.OrderQuantity,
		j.PODate,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting job %s: %w", j.Number, err)
	}
	return nil
}

func (r *SQLiteJobRepo) Get(ctx context.Context, jobNumber string) (*domain.Job, error) {
	query := `SELECT job_number, job_booking_id, client_name, job_name, order_quantity, po_date, created_at, updated_at
		FROM jobs WHERE job_number = ?`
	row := r.db.QueryRowContext(ctx, query, jobNumber)

	var j domain.Job
	var bookingID sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&j.Number, &bookingID, &j.ClientName, &j.JobName, &j.OrderQuantity, &j.PODate, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job %s: %w", jobNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	j.BookingID = opaqueFromNull(bookingID)
	j.CreatedAt = parseTime(createdAt)
	j.UpdatedAt = parseTime(updatedAt)
	return &j, nil
}

// Search returns job numbers containing fragment, case-insensitively.
func (r *SQLiteJobRepo) Search(ctx context.Context, fragment string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT job_number FROM jobs
		WHERE instr(lower(job_number), lower(?)) > 0
		ORDER BY job_number LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, fragment, limit)
	if err != nil {
		return nil, fmt.Errorf("searching jobs: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning job number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Touch bumps the job's updated_at.
func (r *SQLiteJobRepo) Touch(ctx context.Context, jobNumber string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE jobs SET updated_at = ? WHERE job_number = ?`,
		time.Now().UTC().Format(time.RFC3339), jobNumber)
	if err != nil {
		return fmt.Errorf("touching job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("job %s: %w", jobNumber, ErrNotFound)
	}
	return nil
}
