package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/repository"
	"github.com/alexanderramin/jobcolor/internal/testutil"
)

func TestColorService_GetColorDetails(t *testing.T) {
	store := newTestStore(t)

	details, err := store.colors.GetColorDetails(context.Background(), "J-1001")
	require.NoError(t, err)

	assert.Equal(t, []string{"Box A", "Lid"}, details.PlanContNames)
	require.NotNil(t, details.FullData)
	assert.Equal(t, "J-1001", details.FullData.JobNumber)
	assert.JSONEq(t, `501`, string(details.FullData.JobBookingID))

	box := details.FullData.Contents[0]
	assert.JSONEq(t, `9001`, string(box.JobBookingJobCardContentsID))
	assert.JSONEq(t, `"Carton"`, string(box.PlanContType))
	want := testutil.NewTestContent("Box A",
		testutil.WithColor("Front", 5, "Red"),
		testutil.WithColor("Back", 9, "Blue"),
	)
	if diff := cmp.Diff(want.Colors, box.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	lid := details.FullData.Contents[1]
	require.Len(t, lid.Colors, 2)
	assert.Equal(t, "Sp. Front", lid.Colors[0].FormSide)
	assert.False(t, lid.Colors[0].HasItem())
}

func TestColorService_GetColorDetailsJobWithoutContents(t *testing.T) {
	store := newTestStore(t)

	details, err := store.colors.GetColorDetails(context.Background(), "J-1002")
	require.NoError(t, err)
	assert.Empty(t, details.PlanContNames)
	assert.NotNil(t, details.FullData.Contents)
	assert.True(t, details.FullData.JobBookingID.IsNull())
}

func TestColorService_GetColorDetailsUnknownJob(t *testing.T) {
	store := newTestStore(t)

	_, err := store.colors.GetColorDetails(context.Background(), "J-9999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestColorService_SaveMergesByContentName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := testutil.NewTestDataset("J-1001",
		testutil.WithContent(testutil.NewTestContent("Box A",
			testutil.WithContentsID(9001),
			testutil.WithColor("Front", 5, "Red"),
			testutil.WithColor("Sp. Back", 14, "Green"),
		)),
	)
	require.NoError(t, store.colors.SaveColorChanges(ctx, payload))

	details, err := store.colors.GetColorDetails(ctx, "J-1001")
	require.NoError(t, err)
	require.Len(t, details.FullData.Contents, 2)

	box := details.FullData.Contents[0]
	if diff := cmp.Diff(payload.Contents[0].Colors, box.Colors); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
	// Omitted metadata keeps what was stored.
	assert.JSONEq(t, `"Carton"`, string(box.PlanContType))
	assert.JSONEq(t, `1200`, string(box.PlanContQty))

	// Untouched content is left alone.
	assert.Equal(t, "Lid", details.FullData.Contents[1].PlanContName)
	assert.Len(t, details.FullData.Contents[1].Colors, 2)

	subs, err := repository.NewSQLiteSubmissionRepo(store.db).ListByJob(ctx, "J-1001")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Box A", subs[0].PlanContName)
	assert.Equal(t, 2, subs[0].ColorCount)
	assert.NotEmpty(t, subs[0].ID)
}

func TestColorService_SaveEmptyContentClearsColors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := testutil.NewTestDataset("J-1001",
		testutil.WithContent(testutil.NewTestContent("Lid")),
	)
	require.NoError(t, store.colors.SaveColorChanges(ctx, payload))

	details, err := store.colors.GetColorDetails(ctx, "J-1001")
	require.NoError(t, err)
	assert.Empty(t, details.FullData.Contents[1].Colors)
}

func TestColorService_SaveNewContentAppends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := testutil.NewTestDataset("J-1002",
		testutil.WithContent(testutil.NewTestContent("Sleeve", testutil.WithColor("Back", 9, "Blue"))),
	)
	require.NoError(t, store.colors.SaveColorChanges(ctx, payload))

	details, err := store.colors.GetColorDetails(ctx, "J-1002")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sleeve"}, details.PlanContNames)
}

func TestColorService_SaveUnknownJob(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.colors.SaveColorChanges(ctx, testutil.BoxADataset("J-9999"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	subs, err := repository.NewSQLiteSubmissionRepo(store.db).ListByJob(ctx, "J-9999")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestColorService_SaveRejectsInvalidPayload(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		payload *domain.JobColorDataset
	}{
		{"nil", nil},
		{"no job number", testutil.BoxADataset("")},
		{"no contents", testutil.NewTestDataset("J-1001")},
		{"unnamed content", testutil.NewTestDataset("J-1001", testutil.WithContent(testutil.NewTestContent(" ")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.colors.SaveColorChanges(context.Background(), tt.payload)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestColorService_SaveRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	// Exec order: touch job, update content, clear colors, insert colors...
	failing := &testutil.FailOnNthExecUoW{DB: store.db, FailOn: 4, Err: boom}
	svc := NewColorService(
		repository.NewSQLiteJobRepo(store.db),
		repository.NewSQLiteContentRepo(store.db),
		failing,
	)

	payload := testutil.NewTestDataset("J-1001",
		testutil.WithContent(testutil.NewTestContent("Box A",
			testutil.WithColor("Front", 14, "Green"),
			testutil.WithColor("Back", 14, "Green"),
		)),
	)
	err := svc.SaveColorChanges(ctx, payload)
	require.ErrorIs(t, err, boom)

	details, err := store.colors.GetColorDetails(ctx, "J-1001")
	require.NoError(t, err)
	box := details.FullData.Contents[0]
	require.Len(t, box.Colors, 2)
	assert.Equal(t, "Red", box.Colors[0].ItemName)
	assert.Equal(t, "Blue", box.Colors[1].ItemName)

	subs, err := repository.NewSQLiteSubmissionRepo(store.db).ListByJob(ctx, "J-1001")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestColorService_ObservesSaves(t *testing.T) {
	store := newTestStore(t)
	obs := &recordingObserver{}
	svc := NewColorService(
		repository.NewSQLiteJobRepo(store.db),
		repository.NewSQLiteContentRepo(store.db),
		store.uow,
		obs,
	)

	require.NoError(t, svc.SaveColorChanges(context.Background(), testutil.BoxADataset("J-1001")))
	require.Error(t, svc.SaveColorChanges(context.Background(), testutil.BoxADataset("J-9999")))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "save-color-changes", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 2, obs.events[0].Fields["colors"])
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, repository.ErrNotFound)
}

func TestSaveResult(t *testing.T) {
	assert.Equal(t, "success", saveResult(nil))
	assert.Equal(t, "invalid", saveResult(ErrInvalidPayload))
	assert.Equal(t, "not_found", saveResult(repository.ErrNotFound))
	assert.Equal(t, "error", saveResult(errors.New("x")))
}
