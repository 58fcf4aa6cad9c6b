package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/jobcolor/internal/db"
	"github.com/alexanderramin/jobcolor/internal/repository"
	"github.com/alexanderramin/jobcolor/internal/service"
)

// StoreOptions locates the job store database and an optional seed.
type StoreOptions struct {
	DBPath   string
	SeedPath string
}

// Open opens and migrates the job store, applies the seed when one is
// named, and returns a ready server. The returned func closes the database.
func Open(ctx context.Context, opts StoreOptions, logger *slog.Logger) (*Server, func() error, error) {
	database, err := db.OpenDB(opts.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening job store: %w", err)
	}

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)

	if opts.SeedPath != "" {
		seed, err := service.LoadSeedFile(opts.SeedPath)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		if err := service.NewSeedService(uow, observer).Apply(ctx, seed); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("applying seed: %w", err)
		}
	}

	jobs := repository.NewSQLiteJobRepo(database)
	srv := New(Services{
		Colors:  service.NewColorService(jobs, repository.NewSQLiteContentRepo(database), uow, observer),
		Jobs:    service.NewJobService(jobs),
		Catalog: service.NewCatalogService(repository.NewSQLiteCatalogRepo(database)),
	}, logger)
	return srv, database.Close, nil
}
