package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/metrics"
	"github.com/alexanderramin/jobcolor/internal/repository"
)

type colorService struct {
	jobs     repository.JobRepo
	contents repository.ContentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewColorService(
	jobs repository.JobRepo,
	contents repository.ContentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ColorService {
	return &colorService{
		jobs:     jobs,
		contents: contents,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *colorService) GetColorDetails(ctx context.Context, jobNumber string) (*app.ColorDetails, error) {
	job, err := s.jobs.Get(ctx, jobNumber)
	if err != nil {
		return nil, err
	}
	contents, err := s.contents.ListByJob(ctx, jobNumber)
	if err != nil {
		return nil, fmt.Errorf("loading contents of %s: %w", jobNumber, err)
	}
	if contents == nil {
		contents = []domain.Content{}
	}

	data := &domain.JobColorDataset{
		JobNumber:    job.Number,
		JobBookingID: job.BookingID,
		Contents:     contents,
	}
	names := data.ContentNames()
	return &app.ColorDetails{PlanContNames: names, FullData: data}, nil
}

func (s *colorService) SaveColorChanges(ctx context.Context, payload *domain.JobColorDataset) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "save-color-changes", startedAt, fields, &err)
		metrics.ColorSavesTotal.WithLabelValues(saveResult(err)).Inc()
	}()

	if err = validatePayload(payload); err != nil {
		return err
	}
	fields["job_number"] = payload.JobNumber
	fields["contents"] = len(payload.Contents)

	colors := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txContents := repository.NewSQLiteContentRepo(tx)
		txSubmissions := repository.NewSQLiteSubmissionRepo(tx)

		if err := txJobs.Touch(ctx, payload.JobNumber); err != nil {
			return err
		}
		for _, c := range payload.Contents {
			if err := txContents.Replace(ctx, payload.JobNumber, c); err != nil {
				return err
			}
			raw, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("encoding submission of %s: %w", c.PlanContName, err)
			}
			if err := txSubmissions.Create(ctx, &domain.ColorSubmission{
				ID:           uuid.New().String(),
				JobNumber:    payload.JobNumber,
				PlanContName: c.PlanContName,
				ColorCount:   len(c.Colors),
				Payload:      raw,
				SubmittedAt:  time.Now().UTC(),
			}); err != nil {
				return err
			}
			colors += len(c.Colors)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fields["colors"] = colors
	metrics.ColorsSavedTotal.Add(float64(colors))
	return nil
}

func validatePayload(payload *domain.JobColorDataset) error {
	if payload == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}
	if strings.TrimSpace(payload.JobNumber) == "" {
		return fmt.Errorf("%w: JobNumber is required", ErrInvalidPayload)
	}
	if len(payload.Contents) == 0 {
		return fmt.Errorf("%w: no contents", ErrInvalidPayload)
	}
	for i, c := range payload.Contents {
		if strings.TrimSpace(c.PlanContName) == "" {
			return fmt.Errorf("%w: content %d has no PlanContName", ErrInvalidPayload, i)
		}
	}
	return nil
}

func saveResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
