package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/repository"
)

func TestJobService_SearchJobNumbers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.jobs.SearchJobNumbers(ctx, "J-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"J-1001", "J-1002"}, got)

	got, err = store.jobs.SearchJobNumbers(ctx, "1002")
	require.NoError(t, err)
	assert.Equal(t, []string{"J-1002"}, got)

	got, err = store.jobs.SearchJobNumbers(ctx, "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJobService_SearchShortFragment(t *testing.T) {
	store := newTestStore(t)

	got, err := store.jobs.SearchJobNumbers(context.Background(), " J-1 ")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestJobService_GetJobDetails(t *testing.T) {
	store := newTestStore(t)

	got, err := store.jobs.GetJobDetails(context.Background(), "J-1001")
	require.NoError(t, err)
	assert.Equal(t, &app.JobDetails{
		ClientName:    "Acme Packaging",
		JobName:       "Cereal cartons",
		OrderQuantity: 1200,
		PODate:        "2026-01-10",
	}, got)

	_, err = store.jobs.GetJobDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogService_ListItems(t *testing.T) {
	store := newTestStore(t)

	got, err := store.catalog.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CatalogItem{
		{ID: "12-A", Name: "amber"},
		{ID: "9", Name: "Blue"},
		{ID: "14", Name: "Green"},
		{ID: "5", Name: "Red"},
	}, got.Items)
}
