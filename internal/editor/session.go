package editor

import (
	"log/slog"
	"strings"
	"sync"

	evbus "github.com/asaskevich/EventBus"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// Selection is the identity of the selected content. It is echoed back
// unchanged when the payload is built.
type Selection struct {
	ContentsID domain.Opaque
	Name       string
	Type       domain.Opaque
	Qty        domain.Opaque
}

// Session is the whole editing state of one operator: the loaded job,
// the selected content and its four category lists.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger

	bus     evbus.Bus
	tracker *ChangeTracker
	lists   []*CategoryList

	jobNumber  string
	dataset    *domain.JobColorDataset
	names      []string
	selection  *Selection
	dropped    []domain.ColorAssignment
	generation uint64
	saving     bool
}

// NewSession creates an empty session. A nil logger discards output.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		logger:  logger,
		bus:     evbus.New(),
		tracker: &ChangeTracker{},
	}
	for _, cat := range domain.Categories {
		l := NewCategoryList(cat, s.bus)
		l.Clear()
		s.lists = append(s.lists, l)
	}
	// A fresh bus accepts any func handler, so these cannot fail.
	_ = s.tracker.Attach(s.bus)
	_ = s.bus.Subscribe(TopicListMutated, s.logMutation)
	return s
}

// Close detaches the session's subscribers.
func (s *Session) Close() error {
	_ = s.bus.Unsubscribe(TopicListMutated, s.logMutation)
	return s.tracker.Detach()
}

// Load replaces any prior dataset with details for jobNumber and clears
// the selection.
func (s *Session) Load(jobNumber string, details *app.ColorDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.jobNumber = strings.TrimSpace(jobNumber)
	if details != nil {
		s.dataset = details.FullData.Clone()
		s.names = append([]string(nil), details.PlanContNames...)
	}
	s.logger.Debug("job loaded", "job_number", s.jobNumber, "contents", len(s.names))
}

// Reset discards the job, dataset, selection and dirty flag.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.jobNumber = ""
	s.dataset = nil
	s.names = nil
	s.clearSelectionLocked()
}

func (s *Session) clearSelectionLocked() {
	for _, l := range s.lists {
		l.Clear()
	}
	s.selection = nil
	s.dropped = nil
	s.generation++
	s.tracker.Clear()
}

// Select makes the first content named name current and rebuilds the
// four lists from its colors. A miss, including an empty name, leaves
// nothing selected. It reports whether a content was found.
func (s *Session) Select(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionLocked()

	content, ok := s.dataset.FindContent(name)
	if !ok {
		return false
	}
	cls := domain.Classify(content.Colors)
	for _, l := range s.lists {
		l.Initialize(cls.Buckets[l.Category()])
	}
	s.selection = &Selection{
		ContentsID: content.JobBookingJobCardContentsID,
		Name:       content.PlanContName,
		Type:       content.PlanContType,
		Qty:        content.PlanContQty,
	}
	s.dropped = cls.Dropped
	s.logger.Debug("content selected", "content", content.PlanContName, "colors", cls.Total())
	if len(cls.Dropped) > 0 {
		s.logger.Warn("colors with unknown tag will not be saved",
			"content", content.PlanContName, "count", len(cls.Dropped))
	}
	return true
}

// JobNumber returns the current job number, or "".
func (s *Session) JobNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobNumber
}

// Loaded reports whether a dataset is loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset != nil
}

// ContentNames returns the selectable content names of the loaded job.
func (s *Session) ContentNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// Selection returns the selected content, if any.
func (s *Session) Selection() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// Dropped returns the colors of the selected content whose tag matched
// no category.
func (s *Session) Dropped() []domain.ColorAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ColorAssignment(nil), s.dropped...)
}

// List returns the list of cat.
func (s *Session) List(cat domain.Category) *CategoryList {
	i := cat.Index()
	if i < 0 {
		return nil
	}
	return s.lists[i]
}

// Lists returns the four lists in payload order.
func (s *Session) Lists() []*CategoryList {
	return append([]*CategoryList(nil), s.lists...)
}

// Dirty reports whether any list changed since the last selection, reset
// or successful save.
func (s *Session) Dirty() bool {
	return s.tracker.Dirty()
}

// Generation identifies the current selection. It changes on every load,
// selection and reset.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// AcceptCatalog reports whether a catalog fetched at gen still belongs to
// the current selection.
func (s *Session) AcceptCatalog(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation && s.selection != nil
}

// Build assembles the partial dataset holding only the selected content.
func (s *Session) Build() (*domain.JobColorDataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildLocked()
}

func (s *Session) buildLocked() (*domain.JobColorDataset, error) {
	if s.jobNumber == "" || s.selection == nil || s.dataset == nil {
		return nil, ErrNothingToSave
	}
	colors := make([]domain.ColorAssignment, 0)
	for _, l := range s.lists {
		colors = append(colors, l.Snapshot()...)
	}
	return &domain.JobColorDataset{
		JobNumber:    domain.CoalesceStr(s.dataset.JobNumber, s.jobNumber),
		JobBookingID: orNull(s.dataset.JobBookingID),
		Contents: []domain.Content{{
			JobBookingJobCardContentsID: orNull(s.selection.ContentsID),
			PlanContName:                s.selection.Name,
			PlanContType:                orNull(s.selection.Type),
			PlanContQty:                 orNull(s.selection.Qty),
			Colors:                      colors,
		}},
	}, nil
}

// BeginSave builds the payload and marks a save as in flight. Every
// successful BeginSave must be followed by EndSave.
func (s *Session) BeginSave() (*domain.JobColorDataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return nil, ErrSaveInFlight
	}
	payload, err := s.buildLocked()
	if err != nil {
		return nil, err
	}
	s.saving = true
	return payload, nil
}

// EndSave completes the in-flight save. A successful save resets the
// session; a failed one keeps every edit for a retry.
func (s *Session) EndSave(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if success {
		s.resetLocked()
	}
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

func (s *Session) logMutation(m Mutation) {
	s.logger.Debug("list mutated",
		"category", m.Category.String(),
		"kind", string(m.Kind),
		"row_id", m.RowID,
		"index", m.Index,
	)
}

func orNull(o domain.Opaque) domain.Opaque {
	return append(domain.Opaque(nil), o.OrNull()...)
}
