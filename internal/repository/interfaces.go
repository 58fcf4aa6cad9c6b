package repository

import (
	"context"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

type JobRepo interface {
	Upsert(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobNumber string) (*domain.Job, error)
	Search(ctx context.Context, fragment string, limit int) ([]string, error)
	Touch(ctx context.Context, jobNumber string) error
}

type ContentRepo interface {
	ListByJob(ctx context.Context, jobNumber string) ([]domain.Content, error)
	// Replace stores c under its PlanContName, creating it when absent.
	// Its colors replace the stored ones; null metadata keeps the stored value.
	Replace(ctx context.Context, jobNumber string, c domain.Content) error
}

type CatalogRepo interface {
	Upsert(ctx context.Context, item domain.CatalogItem) error
	List(ctx context.Context) ([]domain.CatalogItem, error)
}

type SubmissionRepo interface {
	Create(ctx context.Context, s *domain.ColorSubmission) error
	ListByJob(ctx context.Context, jobNumber string) ([]*domain.ColorSubmission, error)
}
