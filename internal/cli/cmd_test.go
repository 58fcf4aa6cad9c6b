package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/config"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/editor"
	"github.com/alexanderramin/jobcolor/internal/testutil"
)

const testJob = "J-1001"

// testApp wires an App against an in-memory job API holding the Box A job.
func testApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()

	api := testutil.NewFakeAPI()
	api.AddJob(testutil.BoxADataset(testJob))
	api.Details[testJob] = app.JobDetails{
		ClientName:    "Acme Packaging",
		JobName:       "Cereal cartons",
		OrderQuantity: 1200,
		PODate:        "2026-01-10",
	}
	api.Items = []domain.CatalogItem{
		{ID: "5", Name: "Red"},
		{ID: "9", Name: "Blue"},
		{ID: "14", Name: "Green"},
	}

	cfg := config.Default()
	return &App{
		Config:        &cfg,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		API:           api,
		IsInteractive: func() bool { return true },
	}, api
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- show ---

func TestShowCmd_ListsContents(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "show", testJob)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Packaging")
	assert.Contains(t, out, "1. Box A")
}

func TestShowCmd_ContentCards(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "show", testJob, "--content", "Box A")
	require.NoError(t, err)
	for _, want := range []string{"BOX A", "FRONT", "SP. FRONT", "BACK", "SP. BACK", "Red", "#5", "Blue", "#9", "No colors", "Carton"} {
		assert.Contains(t, out, want)
	}
}

func TestShowCmd_UnknownJob(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "show", "J-9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Job J-9999 not found")
}

func TestShowCmd_UnknownContent(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "show", testJob, "--content", "Lid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `content "Lid" not found`)
}

func TestShowCmd_ListsDroppedTags(t *testing.T) {
	a, api := testApp(t)
	api.AddJob(testutil.NewTestDataset("J-3000", testutil.WithContent(
		testutil.NewTestContent("Sleeve",
			testutil.WithColor("Front", 5, "Red"),
			testutil.WithColor("Inside", 9, "Blue"),
		),
	)))

	out, err := executeCmd(t, a, "show", "J-3000", "--content", "Sleeve")
	require.NoError(t, err)
	assert.Contains(t, out, `"Inside"`)
}

// --- items / search ---

func TestItemsCmd(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "items")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Green")
}

func TestItemsCmd_Failure(t *testing.T) {
	a, api := testApp(t)
	api.Fail(testutil.CallItems, errors.New("connection refused"))

	_, err := executeCmd(t, a, "items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), editor.MsgCatalogFailed)
}

func TestSearchCmd(t *testing.T) {
	a, api := testApp(t)

	out, err := executeCmd(t, a, "search", "1001")
	require.NoError(t, err)
	assert.Contains(t, out, testJob)

	out, err = executeCmd(t, a, "search", "7777")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching jobs.")

	_, err = executeCmd(t, a, "search", "J-1")
	require.Error(t, err)
	assert.Equal(t, 2, api.Calls(testutil.CallSearch))
}

// --- apply ---

func TestApplyCmd_DryRunPrintsPayload(t *testing.T) {
	a, api := testApp(t)

	out, err := executeCmd(t, a, "apply", testJob,
		"--content", "Box A",
		"--remove", "back:1",
		"--add", "sp.front=14",
		"--dry-run",
	)
	require.NoError(t, err)
	assert.Equal(t, 0, api.Calls(testutil.CallSave))

	var payload domain.JobColorDataset
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, testJob, payload.JobNumber)
	require.Len(t, payload.Contents, 1)
	colors := payload.Contents[0].Colors
	require.Len(t, colors, 2)
	assert.Equal(t, "Front", colors[0].ColorSpecification)
	assert.Equal(t, "Red", colors[0].ItemName)
	assert.Equal(t, "Sp. Front", colors[1].ColorSpecification)
	assert.Equal(t, "Sp. Front", colors[1].FormSide)
	assert.Equal(t, "Green", colors[1].ItemName)
	require.NotNil(t, colors[1].ItemID)
	assert.Equal(t, 14, *colors[1].ItemID)
	assert.Equal(t, domain.ItemGroupColor, colors[1].ItemGroupID)
}

func TestApplyCmd_Saves(t *testing.T) {
	a, api := testApp(t)

	out, err := executeCmd(t, a, "apply", testJob, "--content", "Box A", "--add", "Back=5")
	require.NoError(t, err)
	assert.Contains(t, out, editor.MsgSaved)

	saved := api.Saved()
	require.Len(t, saved, 1)
	colors := saved[0].Contents[0].Colors
	require.Len(t, colors, 3)
	assert.Equal(t, "Blue", colors[1].ItemName)
	assert.Equal(t, "Red", colors[2].ItemName)
	assert.Equal(t, "Back", colors[2].ColorSpecification)
}

func TestApplyCmd_RemovesFromTheEnd(t *testing.T) {
	a, api := testApp(t)
	api.AddJob(testutil.NewTestDataset("J-4000", testutil.WithContent(
		testutil.NewTestContent("Box",
			testutil.WithColor("Front", 5, "Red"),
			testutil.WithColor("Front", 9, "Blue"),
			testutil.WithColor("Front", 14, "Green"),
		),
	)))

	_, err := executeCmd(t, a, "apply", "J-4000", "--content", "Box",
		"--remove", "Front:1", "--remove", "Front:3")
	require.NoError(t, err)

	saved := api.Saved()
	require.Len(t, saved, 1)
	require.Len(t, saved[0].Contents[0].Colors, 1)
	assert.Equal(t, "Blue", saved[0].Contents[0].Colors[0].ItemName)
}

func TestApplyCmd_NoChanges(t *testing.T) {
	a, api := testApp(t)

	out, err := executeCmd(t, a, "apply", testJob, "--content", "Box A")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes.")
	assert.Equal(t, 0, api.Calls(testutil.CallSave))
	assert.Equal(t, 0, api.Calls(testutil.CallItems))
}

func TestApplyCmd_SaveRejected(t *testing.T) {
	a, api := testApp(t)
	api.SaveResult = &app.SaveResult{Success: false, Error: "Job is locked"}

	_, err := executeCmd(t, a, "apply", testJob, "--content", "Box A", "--remove", "Front:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Job is locked")
}

func TestApplyCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing content flag", []string{"apply", testJob}, "content"},
		{"unknown content", []string{"apply", testJob, "--content", "Lid"}, `content "Lid" not found`},
		{"unknown category", []string{"apply", testJob, "--content", "Box A", "--add", "Top=5"}, "unknown category"},
		{"add without id", []string{"apply", testJob, "--content", "Box A", "--add", "Front"}, "CATEGORY=ITEM_ID"},
		{"remove without position", []string{"apply", testJob, "--content", "Box A", "--remove", "Front"}, "CATEGORY:POSITION"},
		{"zero position", []string{"apply", testJob, "--content", "Box A", "--remove", "Front:0"}, "positive number"},
		{"position out of range", []string{"apply", testJob, "--content", "Box A", "--remove", "Back:2"}, "cannot remove position 2"},
		{"unknown item", []string{"apply", testJob, "--content", "Box A", "--add", "Front=99"}, "item 99 is not in the catalog"},
		{"unknown job", []string{"apply", "J-9999", "--content", "Box A"}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, api := testApp(t)
			_, err := executeCmd(t, a, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 0, api.Calls(testutil.CallSave))
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]domain.Category{
		"Front":     domain.CategoryFront,
		"front":     domain.CategoryFront,
		"Sp. Front": domain.CategorySpFront,
		"spfront":   domain.CategorySpFront,
		"SP.BACK":   domain.CategorySpBack,
		"back":      domain.CategoryBack,
	}
	for in, want := range tests {
		got, err := parseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseCategory("Sp")
	assert.Error(t, err)
}

// --- edit ---

func TestEditCmd_RefusesNonInteractive(t *testing.T) {
	a, _ := testApp(t)
	a.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, a, "edit", testJob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestEditCmd_RunsProgram(t *testing.T) {
	a, api := testApp(t)
	var ran tea.Model
	a.RunProgram = func(m tea.Model) error {
		ran = m
		return nil
	}

	_, err := executeCmd(t, a, "edit", testJob)
	require.NoError(t, err)
	require.IsType(t, appModel{}, ran)
	// The program was stubbed, so nothing was fetched.
	assert.Equal(t, 0, api.Calls(testutil.CallColorDetails))
}

// --- root ---

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "--log-level", "loud", "items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestRootCmd_BuildsGatewayFromFlags(t *testing.T) {
	cfg := config.Default()
	a := &App{Config: &cfg}

	root := NewRootCmd(a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--api", "http://127.0.0.1:1/api", "search", "J-1"})
	require.Error(t, root.Execute())

	assert.Equal(t, "http://127.0.0.1:1/api", a.Config.API.URL)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.API)
}

func TestRootCmd_PushesClientMetrics(t *testing.T) {
	jobAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"itemId":5,"itemName":"Red"}]}`))
	}))
	defer jobAPI.Close()

	var mu sync.Mutex
	var pushed []string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		pushed = append(pushed, r.Method+" "+r.URL.Path+"\n"+string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer gw.Close()

	cfg := config.Default()
	cfg.API.URL = jobAPI.URL
	cfg.PushgatewayURL = gw.URL
	a := &App{Config: &cfg, Logger: slog.New(slog.DiscardHandler)}

	out, err := executeCmd(t, a, "items")
	require.NoError(t, err)
	assert.Contains(t, out, "Red")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, pushed, 1)
	assert.True(t, strings.HasPrefix(pushed[0], http.MethodPut+" /metrics/job/jobcolor"))
	assert.Contains(t, pushed[0], "jobcolor_gateway_calls_total")
}
