package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// SQLiteSubmissionRepo implements SubmissionRepo using a SQLite database.
type SQLiteSubmissionRepo struct {
	db db.DBTX
}

// NewSQLiteSubmissionRepo creates a new SQLiteSubmissionRepo.
func NewSQLiteSubmissionRepo(conn db.DBTX) *SQLiteSubmissionRepo {
	return &SQLiteSubmissionRepo{db: conn}
}

func (r *SQLiteSubmissionRepo) Create(ctx context.Context, s *domain.ColorSubmission) error {
	query := `INSERT INTO color_submissions (id, job_number, plan_cont_name, color_count, payload, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.JobNumber,
		s.PlanContName,
		s.ColorCount,
		string(s.Payload),
		s.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting color submission: %w", err)
	}
	return nil
}

// ListByJob returns the submissions of a job, oldest first.
func (r *SQLiteSubmissionRepo) ListByJob(ctx context.Context, jobNumber string) ([]*domain.ColorSubmission, error) {
	query := `SELECT id, job_number, plan_cont_name, color_count, payload, submitted_at
		FROM color_submissions WHERE job_number = ? ORDER BY submitted_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("listing color submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.ColorSubmission
	for rows.Next() {
		var s domain.ColorSubmission
		var payload, submittedAt string
		if err := rows.Scan(&s.ID, &s.JobNumber, &s.PlanContName, &s.ColorCount, &payload, &submittedAt); err != nil {
			return nil, fmt.Errorf("scanning color submission: %w", err)
		}
		s.Payload = []byte(payload)
		if t, err := time.Parse(time.RFC3339Nano, submittedAt); err == nil {
			s.SubmittedAt = t
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
