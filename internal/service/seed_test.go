package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/repository"
	"github.com/alexanderramin/jobcolor/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func TestParseSeed_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"job without number", "jobs:\n  - client: Acme\n"},
		{"content without name", "jobs:\n  - number: J-1\n    contents:\n      - type: Lid\n"},
		{"item without id", "items:\n  - name: Red\n"},
		{"malformed", "jobs: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseSeed_KeepsOpaqueShapes(t *testing.T) {
	seed, err := ParseSeed([]byte(`
jobs:
  - number: J-7
    bookingId: "BK-7"
    contents:
      - name: Box
        qty: 250
`))
	require.NoError(t, err)

	job, contents, err := seed.Jobs[0].toDomain()
	require.NoError(t, err)
	assert.JSONEq(t, `"BK-7"`, string(job.BookingID))
	require.Len(t, contents, 1)
	assert.JSONEq(t, `250`, string(contents[0].PlanContQty))
	assert.True(t, contents[0].PlanContType.IsNull())
	assert.NotNil(t, contents[0].Colors)
}

func TestSeedService_ApplyIsRepeatable(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	seed, err := LoadSeedFile("testdata/seed.yaml")
	require.NoError(t, err)

	obs := &recordingObserver{}
	svc := NewSeedService(uow, obs)
	require.NoError(t, svc.Apply(ctx, seed))
	require.NoError(t, svc.Apply(ctx, seed))

	contents, err := repository.NewSQLiteContentRepo(database).ListByJob(ctx, "J-1001")
	require.NoError(t, err)
	require.Len(t, contents, 2)
	assert.Len(t, contents[0].Colors, 2)

	items, err := repository.NewSQLiteCatalogRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "apply-seed", obs.events[0].Name)
	assert.Equal(t, 2, obs.events[0].Fields["jobs"])
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile("testdata/absent.yaml")
	assert.Error(t, err)
}
