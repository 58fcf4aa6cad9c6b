// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed
// back until none remain, so a key press and all the async work it
// starts (API calls against fakes, navigation messages) have completed
// by the time the call returns. Cmds that block, such as cursor blink
// timers, are abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates Cmds that return promptly from timer-based
// ones. Blink Cmds wait roughly half a second.
const DefaultCmdTimeout = 50 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. The runtime
	// normally swallows it, so the driver records it itself.
	Quitting bool

	cmdTimeout time.Duration
	skipped    int
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for model and applies opts in order.
// Call DrainInit afterwards to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithCmdTimeout changes how long a Cmd may run before it is skipped.
// Place it before WithSize so the resize is drained with it.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// DrainInit runs the model's Init command to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains the resulting Cmds.
// Messages sent after a quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// Skipped returns how many Cmds were abandoned for exceeding the timeout.
func (d *Driver) Skipped() int { return d.skipped }

// Keys

func (d *Driver) pressType(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		if r == ' ' {
			d.pressType(tea.KeySpace)
			continue
		}
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter()     { d.T.Helper(); d.pressType(tea.KeyEnter) }
func (d *Driver) PressEsc()       { d.T.Helper(); d.pressType(tea.KeyEsc) }
func (d *Driver) PressCtrlC()     { d.T.Helper(); d.pressType(tea.KeyCtrlC) }
func (d *Driver) PressUp()        { d.T.Helper(); d.pressType(tea.KeyUp) }
func (d *Driver) PressDown()      { d.T.Helper(); d.pressType(tea.KeyDown) }
func (d *Driver) PressLeft()      { d.T.Helper(); d.pressType(tea.KeyLeft) }
func (d *Driver) PressRight()     { d.T.Helper(); d.pressType(tea.KeyRight) }
func (d *Driver) PressTab()       { d.T.Helper(); d.pressType(tea.KeyTab) }
func (d *Driver) PressShiftTab()  { d.T.Helper(); d.pressType(tea.KeyShiftTab) }
func (d *Driver) PressBackspace() { d.T.Helper(); d.pressType(tea.KeyBackspace) }

// Output

// View returns the rendered model, styling included.
func (d *Driver) View() string {
	return d.Model.View()
}

// PlainView returns the rendered model with ANSI sequences removed.
func (d *Driver) PlainView() string {
	return ansi.Strip(d.Model.View())
}

// ViewContains reports whether the plain view contains every part.
func (d *Driver) ViewContains(parts ...string) bool {
	v := d.PlainView()
	for _, p := range parts {
		if !strings.Contains(v, p) {
			return false
		}
	}
	return true
}

// Draining

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg, ok := d.exec(cmd)
	if !ok {
		d.skipped++
		return
	}
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drainCmd(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// exec runs cmd on its own goroutine. ok is false when it did not
// return within the driver's timeout.
func (d *Driver) exec(cmd tea.Cmd) (msg tea.Msg, ok bool) {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(d.cmdTimeout):
		return nil, false
	}
}

// isCursorBlink detects the unexported blink messages of bubbles/cursor,
// which chain into further timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
