package service

import (
	"context"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

type ColorService interface {
	GetColorDetails(ctx context.Context, jobNumber string) (*app.ColorDetails, error)
	// SaveColorChanges merges each content of payload into the stored job
	// by PlanContName and journals the submission, all in one transaction.
	SaveColorChanges(ctx context.Context, payload *domain.JobColorDataset) error
}

type CatalogService interface {
	ListItems(ctx context.Context) (*app.CatalogItems, error)
}

type JobService interface {
	SearchJobNumbers(ctx context.Context, fragment string) ([]string, error)
	GetJobDetails(ctx context.Context, jobNumber string) (*app.JobDetails, error)
}

type SeedService interface {
	Apply(ctx context.Context, seed *Seed) error
}
