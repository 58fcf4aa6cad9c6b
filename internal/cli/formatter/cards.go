package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

// CardRow is one color slot as shown on a card.
type CardRow struct {
	Bound    bool
	ItemID   *int
	ItemName string
}

// Card holds the rows of one print position.
type Card struct {
	Category domain.Category
	Rows     []CardRow
}

// CardCursor marks the focused card and row. A negative Card disables it.
type CardCursor struct {
	Card int
	Row  int
}

// NoCursor renders cards without focus.
var NoCursor = CardCursor{Card: -1, Row: -1}

// minGridWidth is the narrowest terminal that still fits two cards per line.
const minGridWidth = 64

// RenderCards lays the four cards out as a 2x2 grid, or stacked when
// width is too narrow.
func RenderCards(cards []Card, width int, cursor CardCursor) string {
	if len(cards) == 0 {
		return ""
	}
	if width < minGridWidth {
		parts := make([]string, len(cards))
		for i, c := range cards {
			parts[i] = RenderCard(c, width, rowFor(cursor, i))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	cardWidth := (width - 1) / 2
	var lines []string
	for i := 0; i < len(cards); i += 2 {
		left := RenderCard(cards[i], cardWidth, rowFor(cursor, i))
		if i+1 >= len(cards) {
			lines = append(lines, left)
			continue
		}
		right := RenderCard(cards[i+1], cardWidth, rowFor(cursor, i+1))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func rowFor(cursor CardCursor, card int) int {
	if cursor.Card != card {
		return -2
	}
	return cursor.Row
}

// RenderCard renders one card. cursorRow is -2 for an unfocused card and
// -1 for a focused card with no row under the cursor.
func RenderCard(c Card, width int, cursorRow int) string {
	focused := cursorRow > -2
	border := ColorDim
	if focused {
		border = CategoryColor(c.Category)
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	inner := max(width-4, 12)

	bound := 0
	for _, r := range c.Rows {
		if r.Bound {
			bound++
		}
	}
	title := lipgloss.NewStyle().Foreground(CategoryColor(c.Category)).Bold(true).
		Render(strings.ToUpper(c.Category.String()))
	count := Dim(fmt.Sprintf("%d/%d", bound, len(c.Rows)))

	var b strings.Builder
	b.WriteString(title + "  " + count + "\n")
	if len(c.Rows) == 0 {
		b.WriteString(Dim("No colors"))
	}
	for i, r := range c.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(cardRow(r, inner, focused && i == cursorRow))
	}
	return style.Width(inner + 2).Render(b.String())
}

func cardRow(r CardRow, width int, selected bool) string {
	mark := "  "
	if selected {
		mark = StyleGreen.Render("▸ ")
	}
	if !r.Bound {
		return mark + StyleYellow.Render("○ ") + Dim("select item")
	}
	id := ItemIDLabel(r.ItemID)
	nameWidth := max(width-4-lipgloss.Width(id)-1, 4)
	name := PadRight(r.ItemName, nameWidth)
	if selected {
		name = StyleBold.Render(name)
	}
	return mark + StyleGreen.Render("● ") + name + " " + id
}
