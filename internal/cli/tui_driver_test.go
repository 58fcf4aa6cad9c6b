package cli

import (
	"testing"

	"github.com/alexanderramin/jobcolor/internal/editor"
	"github.com/alexanderramin/jobcolor/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to the appModel internals
// (view stack, shared state) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the TUI for a test App, sets the terminal size and
// drains Init. A non-empty jobNumber is loaded during Init.
func NewTestDriver(t *testing.T, a *App, jobNumber string) *TestDriver {
	t.Helper()

	m := newAppModel(a, jobNumber)
	t.Cleanup(func() { _ = m.close() })

	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// OpenContent loads jobNumber from the search view and picks the first
// content in the picker.
func (d *TestDriver) OpenContent(jobNumber string) {
	d.T.Helper()
	d.Type(jobNumber)
	d.PressEnter()
	d.PressEnter()
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Session returns the editor session behind the TUI.
func (d *TestDriver) Session() *editor.Session {
	return d.State().Editor.Session()
}

// Notice returns the notice currently shown in the status bar.
func (d *TestDriver) Notice() editor.Notice {
	return d.State().Notice
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
