package app

import (
	"context"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

// JobColorSource loads the color data of a job.
type JobColorSource interface {
	GetJobColorDetails(ctx context.Context, jobNumber string) (*ColorDetails, error)
}

// CatalogSource lists the items an operator may assign to a color slot.
type CatalogSource interface {
	GetItemsForColor(ctx context.Context) (*CatalogItems, error)
}

// ColorSaver submits a partial dataset holding one edited content.
type ColorSaver interface {
	SaveColorChanges(ctx context.Context, payload *domain.JobColorDataset) (*SaveResult, error)
}

// JobLookup resolves job numbers and their descriptive details.
type JobLookup interface {
	SearchJobNumbers(ctx context.Context, fragment string) ([]string, error)
	GetJobDetails(ctx context.Context, jobNumber string) (*JobDetails, error)
}

// JobAPI is the full job API surface consumed by the editor and CLI.
type JobAPI interface {
	JobColorSource
	CatalogSource
	ColorSaver
	JobLookup
}
