package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/repository"
	"github.com/alexanderramin/jobcolor/internal/testutil"
)

type testStore struct {
	db      *sql.DB
	uow     db.UnitOfWork
	colors  ColorService
	jobs    JobService
	catalog CatalogService
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	seed, err := LoadSeedFile("testdata/seed.yaml")
	require.NoError(t, err)
	require.NoError(t, NewSeedService(uow).Apply(context.Background(), seed))

	return &testStore{
		db:      database,
		uow:     uow,
		colors:  NewColorService(repository.NewSQLiteJobRepo(database), repository.NewSQLiteContentRepo(database), uow),
		jobs:    NewJobService(repository.NewSQLiteJobRepo(database)),
		catalog: NewCatalogService(repository.NewSQLiteCatalogRepo(database)),
	}
}
