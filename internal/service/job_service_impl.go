package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/repository"
)

// searchLimit caps job number completions.
const searchLimit = 20

type jobService struct {
	jobs repository.JobRepo
}

func NewJobService(jobs repository.JobRepo) JobService {
	return &jobService{jobs: jobs}
}

func (s *jobService) SearchJobNumbers(ctx context.Context, fragment string) ([]string, error) {
	fragment = strings.TrimSpace(fragment)
	if len(fragment) < app.MinJobSearchLen {
		return []string{}, nil
	}
	numbers, err := s.jobs.Search(ctx, fragment, searchLimit)
	if err != nil {
		return nil, err
	}
	if numbers == nil {
		numbers = []string{}
	}
	return numbers, nil
}

func (s *jobService) GetJobDetails(ctx context.Context, jobNumber string) (*app.JobDetails, error) {
	job, err := s.jobs.Get(ctx, jobNumber)
	if err != nil {
		return nil, err
	}
	return &app.JobDetails{
		ClientName:    job.ClientName,
		JobName:       job.JobName,
		OrderQuantity: job.OrderQuantity,
		PODate:        job.PODate,
	}, nil
}

type catalogService struct {
	items repository.CatalogRepo
}

func NewCatalogService(items repository.CatalogRepo) CatalogService {
	return &catalogService{items: items}
}

func (s *catalogService) ListItems(ctx context.Context) (*app.CatalogItems, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return &app.CatalogItems{Items: items}, nil
}
