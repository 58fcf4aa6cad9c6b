package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/testutil"
)

func TestJobRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()

	job := &domain.Job{
		Number:        "J-1001",
		BookingID:     domain.OpaqueInt(77),
		ClientName:    "Acme Foods",
		JobName:       "Cereal carton",
		OrderQuantity: 25000,
		PODate:        "2026-02-14",
	}
	require.NoError(t, repo.Upsert(ctx, job))

	got, err := repo.Get(ctx, "J-1001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Foods", got.ClientName)
	assert.Equal(t, 25000, got.OrderQuantity)
	assert.JSONEq(t, `77`, string(got.BookingID))
	assert.False(t, got.CreatedAt.IsZero())

	job.ClientName = "Acme Foods Ltd"
	job.BookingID = nil
	require.NoError(t, repo.Upsert(ctx, job))

	got, err = repo.Get(ctx, "J-1001")
	require.NoError(t, err)
	assert.Equal(t, "Acme Foods Ltd", got.ClientName)
	assert.True(t, got.BookingID.IsNull())
}

func TestJobRepo_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobRepo_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()
	for _, n := range []string{"J-1001", "J-1002", "J-2001", "K-1001"} {
		require.NoError(t, repo.Upsert(ctx, &domain.Job{Number: n}))
	}

	got, err := repo.Search(ctx, "1001", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"J-1001", "K-1001"}, got)

	got, err = repo.Search(ctx, "j-100", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"J-1001", "J-1002"}, got, "case-insensitive")

	got, err = repo.Search(ctx, "-", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search(ctx, "Z-9", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobRepo_Touch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteJobRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &domain.Job{Number: "J-5"}))

	assert.NoError(t, repo.Touch(ctx, "J-5"))
	assert.ErrorIs(t, repo.Touch(ctx, "J-6"), ErrNotFound)
}
