package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// Call names recorded by FakeAPI.
const (
	CallColorDetails = "color_details"
	CallItems        = "items"
	CallSave         = "save"
	CallSearch       = "search"
	CallJobDetails   = "job_details"
)

// FakeAPI is an in-memory app.JobAPI. Errors keyed by call name are
// returned instead of the canned data.
type FakeAPI struct {
	mu sync.Mutex

	Jobs       map[string]*app.ColorDetails
	Details    map[string]app.JobDetails
	Items      []domain.CatalogItem
	SaveResult *app.SaveResult
	Errors     map[string]error

	// OnSave runs inside SaveColorChanges before it returns.
	OnSave func(payload *domain.JobColorDataset)

	saved []*domain.JobColorDataset
	calls map[string]int
}

var _ app.JobAPI = (*FakeAPI)(nil)

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Jobs:    make(map[string]*app.ColorDetails),
		Details: make(map[string]app.JobDetails),
		Errors:  make(map[string]error),
		calls:   make(map[string]int),
	}
}

// AddJob registers d under its job number.
func (f *FakeAPI) AddJob(d *domain.JobColorDataset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Jobs[d.JobNumber] = NewTestColorDetails(d)
}

// Fail makes every later call named call return err.
func (f *FakeAPI) Fail(call string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[call] = err
}

// Calls returns how many times call was made.
func (f *FakeAPI) Calls(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

// Saved returns the payloads received by SaveColorChanges.
func (f *FakeAPI) Saved() []*domain.JobColorDataset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.JobColorDataset(nil), f.saved...)
}

func (f *FakeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[call]++
	return f.Errors[call]
}

func (f *FakeAPI) GetJobColorDetails(_ context.Context, jobNumber string) (*app.ColorDetails, error) {
	if err := f.record(CallColorDetails); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.Jobs[jobNumber]
	if !ok {
		return nil, fmt.Errorf("Job %s not found", jobNumber)
	}
	return &app.ColorDetails{PlanContNames: d.PlanContNames, FullData: d.FullData.Clone()}, nil
}

func (f *FakeAPI) GetItemsForColor(context.Context) (*app.CatalogItems, error) {
	if err := f.record(CallItems); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &app.CatalogItems{Items: append([]domain.CatalogItem(nil), f.Items...)}, nil
}

func (f *FakeAPI) SaveColorChanges(_ context.Context, payload *domain.JobColorDataset) (*app.SaveResult, error) {
	if err := f.record(CallSave); err != nil {
		return nil, err
	}
	if f.OnSave != nil {
		f.OnSave(payload)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, payload.Clone())
	if f.SaveResult != nil {
		res := *f.SaveResult
		return &res, nil
	}
	return &app.SaveResult{Success: true}, nil
}

func (f *FakeAPI) SearchJobNumbers(_ context.Context, fragment string) ([]string, error) {
	if err := f.record(CallSearch); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for number := range f.Jobs {
		if strings.Contains(number, fragment) {
			out = append(out, number)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *FakeAPI) GetJobDetails(_ context.Context, jobNumber string) (*app.JobDetails, error) {
	if err := f.record(CallJobDetails); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.Details[jobNumber]
	if !ok {
		return nil, fmt.Errorf("Job %s not found", jobNumber)
	}
	return &d, nil
}
