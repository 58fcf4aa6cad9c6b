package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/editor"
)

// jobNumbersMsg carries search results for the input at seq.
type jobNumbersMsg struct {
	seq     int
	numbers []string
	err     error
}

// jobLoadedMsg reports the outcome of loading a job and its details.
type jobLoadedMsg struct {
	jobNumber string
	details   app.JobDetails
	notice    editor.Notice
	err       error
}

// jobSearchView is the root view: a job number input with suggestions.
type jobSearchView struct {
	state   *SharedState
	input   textinput.Model
	initial string

	// Suggestions for the current input. cursor is -1 when none is focused.
	numbers []string
	cursor  int
	seq     int

	loading bool
}

func newJobSearchView(state *SharedState, jobNumber string) *jobSearchView {
	ti := textinput.New()
	ti.Placeholder = "Job number"
	ti.Prompt = "Job › "
	ti.CharLimit = 64
	ti.Focus()

	return &jobSearchView{
		state:   state,
		input:   ti,
		initial: strings.TrimSpace(jobNumber),
		cursor:  -1,
	}
}

func (v *jobSearchView) ID() ViewID    { return ViewJobSearch }
func (v *jobSearchView) Title() string { return "Job" }

func (v *jobSearchView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "suggestions")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *jobSearchView) Init() tea.Cmd {
	if v.initial == "" {
		return textinput.Blink
	}
	v.input.SetValue(v.initial)
	return v.load(v.initial)
}

func (v *jobSearchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobNumbersMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		if msg.err != nil {
			v.numbers = nil
			return v, notifyWarning(msg.err.Error())
		}
		v.numbers = msg.numbers
		v.cursor = -1
		return v, nil

	case jobLoadedMsg:
		v.loading = false
		v.state.Details = msg.details
		if msg.err != nil {
			return v, notify(msg.notice)
		}
		return v, tea.Batch(notify(msg.notice), v.pickContent())

	case tea.KeyMsg:
		return v.updateKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *jobSearchView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.loading {
		return v, nil
	}

	switch msg.Type {
	case tea.KeyUp:
		if v.cursor > -1 {
			v.cursor--
		}
		return v, nil
	case tea.KeyDown:
		if v.cursor < len(v.numbers)-1 {
			v.cursor++
		}
		return v, nil
	case tea.KeyTab:
		if n, ok := v.suggestion(); ok {
			v.input.SetValue(n)
			v.input.CursorEnd()
			v.cursor = -1
		}
		return v, nil
	case tea.KeyEnter:
		jobNumber := v.input.Value()
		if n, ok := v.suggestion(); ok {
			jobNumber = n
			v.input.SetValue(n)
		}
		return v, v.load(jobNumber)
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.search(v.input.Value()))
}

func (v *jobSearchView) suggestion() (string, bool) {
	if v.cursor < 0 || v.cursor >= len(v.numbers) {
		return "", false
	}
	return v.numbers[v.cursor], true
}

// search starts a lookup for fragment. Results for an older input are
// dropped when they arrive.
func (v *jobSearchView) search(fragment string) tea.Cmd {
	v.seq++
	v.cursor = -1
	if len(strings.TrimSpace(fragment)) < app.MinJobSearchLen {
		v.numbers = nil
		return nil
	}
	seq, ed := v.seq, v.state.Editor
	return func() tea.Msg {
		numbers, err := ed.SearchJobNumbers(context.Background(), fragment)
		return jobNumbersMsg{seq: seq, numbers: numbers, err: err}
	}
}

func (v *jobSearchView) load(jobNumber string) tea.Cmd {
	v.loading = true
	v.seq++
	v.numbers = nil
	v.cursor = -1
	ed := v.state.Editor
	return func() tea.Msg {
		ctx := context.Background()
		notice, err := ed.LoadJob(ctx, jobNumber)
		if err != nil {
			return jobLoadedMsg{jobNumber: jobNumber, notice: notice, err: err}
		}
		details, dn, derr := ed.LoadJobDetails(ctx, jobNumber)
		if derr != nil {
			notice = dn
		}
		return jobLoadedMsg{jobNumber: jobNumber, details: details, notice: notice}
	}
}

// pickContent asks for the content to edit, then opens its cards.
func (v *jobSearchView) pickContent() tea.Cmd {
	return contentPickerCmd(v.state, pushView)
}

// contentPickerCmd pushes the content picker for the loaded job. open
// places the cards view on the stack once a content is selected.
func contentPickerCmd(state *SharedState, open func(View) tea.Cmd) tea.Cmd {
	session := state.Editor.Session()
	names := session.ContentNames()
	if len(names) == 0 {
		return nil
	}

	choice := ""
	if sel, ok := session.Selection(); ok {
		choice = sel.Name
	}
	form := wizardSelectContent(session.JobNumber(), names, &choice)
	return startWizardCmd(state, "Content", form, func() tea.Cmd {
		if !state.Editor.Select(choice) {
			return notifyWarning("Content " + choice + " not found.")
		}
		return open(newColorCardsView(state))
	})
}

func (v *jobSearchView) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading job...") + "\n")
	case len(v.numbers) > 0:
		limit := min(len(v.numbers), max(v.state.ContentHeight()-4, 1))
		for i, n := range v.numbers[:limit] {
			cursor := "  "
			style := formatter.StyleFg
			if i == v.cursor {
				cursor = formatter.StyleGreen.Render("▸ ")
				style = formatter.StyleBold
			}
			b.WriteString("  " + cursor + style.Render(n) + "\n")
		}
	case len(strings.TrimSpace(v.input.Value())) >= app.MinJobSearchLen:
		b.WriteString("  " + formatter.Dim("No matching jobs.") + "\n")
	}

	if session := v.state.Editor.Session(); session.Loaded() && !v.loading {
		b.WriteString("\n")
		b.WriteString(formatter.FormatContentNames(v.state.JobSummary(), session.ContentNames()))
		b.WriteString("\n")
	}
	return b.String()
}
