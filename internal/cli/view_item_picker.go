package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// itemPickerView binds a catalog item to one unbound row. The row is
// addressed by its id so edits elsewhere cannot redirect the bind.
type itemPickerView struct {
	state *SharedState
	cat   domain.Category
	rowID string
	items []domain.CatalogItem

	cursor int
	filter string
}

func newItemPickerView(state *SharedState, cat domain.Category, rowID string, items []domain.CatalogItem) *itemPickerView {
	return &itemPickerView{
		state: state,
		cat:   cat,
		rowID: rowID,
		items: items,
	}
}

func (v *itemPickerView) ID() ViewID    { return ViewItemPicker }
func (v *itemPickerView) Title() string { return "Item for " + v.cat.String() }

func (v *itemPickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "assign")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter/back")),
	}
}

func (v *itemPickerView) Init() tea.Cmd { return nil }

func (v *itemPickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	visible := v.visibleItems()
	switch keyMsg.Type {
	case tea.KeyEsc:
		if v.filter != "" {
			v.filter = ""
			v.cursor = 0
			return v, nil
		}
		return v, popView()
	case tea.KeyUp:
		if v.cursor > 0 {
			v.cursor--
		}
	case tea.KeyDown:
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case tea.KeyEnter:
		if v.cursor < len(visible) {
			return v, v.bind(visible[v.cursor])
		}
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			r := []rune(v.filter)
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeySpace:
		v.filter += " "
		v.cursor = 0
	case tea.KeyRunes:
		v.filter += string(keyMsg.Runes)
		v.cursor = 0
	}
	return v, nil
}

func (v *itemPickerView) bind(item domain.CatalogItem) tea.Cmd {
	l := v.state.Editor.Session().List(v.cat)
	idx := l.IndexOf(v.rowID)
	if idx < 0 {
		return tea.Batch(popView(), notifyWarning("The row was removed."))
	}
	if err := l.BindRow(idx, item); err != nil {
		return tea.Batch(popView(), notifyWarning(err.Error()))
	}
	return popView()
}

func (v *itemPickerView) visibleItems() []domain.CatalogItem {
	if v.filter == "" {
		return v.items
	}
	lf := strings.ToLower(v.filter)
	var filtered []domain.CatalogItem
	for _, it := range v.items {
		if strings.Contains(strings.ToLower(it.Name), lf) ||
			strings.Contains(strings.ToLower(string(it.ID)), lf) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func (v *itemPickerView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + "█\n\n")

	visible := v.visibleItems()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No items available.") + "\n")
		return b.String()
	}

	// Keep the cursor inside the window.
	height := max(v.state.ContentHeight()-4, 1)
	start := 0
	if v.cursor >= height {
		start = v.cursor - height + 1
	}
	end := min(start+height, len(visible))

	for i := start; i < end; i++ {
		it := visible[i]
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			formatter.Dim(formatter.PadRight(string(it.ID), 8)),
			nameStyle.Render(it.Name),
		))
	}
	return b.String()
}
