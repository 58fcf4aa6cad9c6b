package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/editor"
)

// catalogLoadedMsg carries the catalog requested for the row rowID.
type catalogLoadedMsg struct {
	result editor.CatalogResult
	cat    domain.Category
	rowID  string
	notice editor.Notice
	err    error
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	notice editor.Notice
	err    error
}

// colorCardsView edits the four category lists of the selected content.
type colorCardsView struct {
	state *SharedState
	card  int
	row   int

	// busy is set while a catalog fetch or a save is running. List
	// mutations are refused meanwhile.
	busy bool
}

func newColorCardsView(state *SharedState) *colorCardsView {
	return &colorCardsView{state: state}
}

func (v *colorCardsView) ID() ViewID { return ViewColorCards }

func (v *colorCardsView) Title() string {
	sel, ok := v.state.Editor.Session().Selection()
	if !ok {
		return "Colors"
	}
	return sel.Name
}

func (v *colorCardsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/←→", "card")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick item")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "content")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

func (v *colorCardsView) Init() tea.Cmd { return nil }

func (v *colorCardsView) list() *editor.CategoryList {
	return v.state.Editor.Session().List(domain.Categories[v.card])
}

func (v *colorCardsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		v.busy = false
		if msg.err != nil {
			return v, notify(msg.notice)
		}
		if !v.state.Editor.Session().AcceptCatalog(msg.result.Generation) {
			return v, nil
		}
		return v, pushView(newItemPickerView(v.state, msg.cat, msg.rowID, msg.result.Items))

	case savedMsg:
		v.busy = false
		if msg.err != nil {
			return v, notify(msg.notice)
		}
		v.state.Details = app.JobDetails{}
		return v, tea.Batch(notify(msg.notice), popToRoot())

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		return v.updateKey(msg)
	}
	return v, nil
}

func (v *colorCardsView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "right", "l":
		v.moveCard(1)
	case "shift+tab", "left", "h":
		v.moveCard(-1)
	case "up", "k":
		if v.row > 0 {
			v.row--
		}
	case "down", "j":
		if v.row < v.list().Len()-1 {
			v.row++
		}
	case "a":
		return v, v.addRow()
	case "x":
		return v, v.removeRow()
	case "enter":
		return v, v.pickItem()
	case "s":
		return v, v.confirmSave()
	case "c":
		return v, contentPickerCmd(v.state, replaceView)
	case "r":
		v.state.Editor.Reset()
		v.state.Details = app.JobDetails{}
		return v, tea.Batch(notifyInfo("Session reset."), popToRoot())
	}
	return v, nil
}

func (v *colorCardsView) moveCard(delta int) {
	n := len(domain.Categories)
	v.card = (v.card + delta + n) % n
	v.row = 0
}

func (v *colorCardsView) addRow() tea.Cmd {
	l := v.list()
	after := editor.NoAnchor
	if !l.Empty() {
		after = v.row
	}
	at, err := l.AddRow(after)
	if err != nil {
		return notifyWarning(err.Error())
	}
	v.row = at
	return nil
}

func (v *colorCardsView) removeRow() tea.Cmd {
	l := v.list()
	if l.Empty() {
		return nil
	}
	if err := l.RemoveRow(v.row); err != nil {
		return notifyWarning(err.Error())
	}
	if v.row >= l.Len() {
		v.row = max(l.Len()-1, 0)
	}
	return nil
}

func (v *colorCardsView) pickItem() tea.Cmd {
	l := v.list()
	row, ok := l.Row(v.row)
	if !ok {
		return notifyInfo("Press a to add a color to " + l.Category().String() + ".")
	}
	if row.Bound {
		return notifyInfo("Remove the color and add it again to change its item.")
	}

	v.busy = true
	ed, cat, rowID := v.state.Editor, l.Category(), row.ID
	return func() tea.Msg {
		res, notice, err := ed.LoadCatalog(context.Background())
		return catalogLoadedMsg{result: res, cat: cat, rowID: rowID, notice: notice, err: err}
	}
}

func (v *colorCardsView) confirmSave() tea.Cmd {
	session := v.state.Editor.Session()
	if !session.Dirty() {
		return notifyInfo("No changes to save.")
	}
	sel, _ := session.Selection()

	confirmed := true
	desc := "Colors of " + sel.Name + " in job " + session.JobNumber() + " will be replaced."
	if unbound := v.unboundCount(); unbound > 0 {
		desc += " Rows without an item are not saved."
	}
	form := wizardConfirm("Save changes?", desc, &confirmed)
	return startWizardCmd(v.state, "Save", form, func() tea.Cmd {
		if !confirmed {
			return notifyInfo("Save cancelled.")
		}
		v.busy = true
		ed := v.state.Editor
		return func() tea.Msg {
			notice, err := ed.Save(context.Background())
			if errors.Is(err, editor.ErrSaveInFlight) {
				return noticeMsg{notice: notice}
			}
			return savedMsg{notice: notice, err: err}
		}
	})
}

func (v *colorCardsView) unboundCount() int {
	n := 0
	for _, l := range v.state.Editor.Session().Lists() {
		n += l.Len() - l.BoundCount()
	}
	return n
}

func (v *colorCardsView) View() string {
	session := v.state.Editor.Session()
	sel, ok := session.Selection()
	if !ok {
		return "\n  " + formatter.Dim("No content selected.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatJobSummary(v.state.JobSummary()))
	b.WriteString("\n")
	b.WriteString(formatter.FormatContent(sel.Name, contentMeta(sel), nil, v.state.Width, session.Dropped()))
	b.WriteString(formatter.RenderCards(sessionCards(session), v.state.Width, formatter.CardCursor{Card: v.card, Row: v.row}))
	b.WriteString("\n")
	if v.busy {
		b.WriteString(formatter.Dim("Working...") + "\n")
	}
	return b.String()
}

// sessionCards converts the session lists into formatter cards.
func sessionCards(session *editor.Session) []formatter.Card {
	lists := session.Lists()
	cards := make([]formatter.Card, 0, len(lists))
	for _, l := range lists {
		rows := l.Rows()
		card := formatter.Card{Category: l.Category(), Rows: make([]formatter.CardRow, 0, len(rows))}
		for _, r := range rows {
			card.Rows = append(card.Rows, formatter.CardRow{Bound: r.Bound, ItemID: r.ItemID, ItemName: r.ItemName})
		}
		cards = append(cards, card)
	}
	return cards
}

// contentMeta lists the pass-through fields of the selected content.
func contentMeta(sel editor.Selection) [][2]string {
	return [][2]string{
		{"Contents ID", formatter.OrDash(sel.ContentsID.Text())},
		{"Type", formatter.OrDash(sel.Type.Text())},
		{"Quantity", formatter.OrDash(sel.Qty.Text())},
	}
}
