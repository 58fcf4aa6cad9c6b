package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

// JobSummary carries what the job header shows.
type JobSummary struct {
	JobNumber     string
	ClientName    string
	JobName       string
	OrderQuantity int
	PODate        string
}

// FormatJobSummary renders the job's descriptive fields.
func FormatJobSummary(s JobSummary) string {
	qty := Dim("—")
	if s.OrderQuantity > 0 {
		qty = strconv.Itoa(s.OrderQuantity)
	}
	return RenderKeyValues([][2]string{
		{"Job", Bold(s.JobNumber)},
		{"Client", OrDash(s.ClientName)},
		{"Job name", OrDash(s.JobName)},
		{"Order qty", qty},
		{"PO date", OrDash(s.PODate)},
	})
}

// FormatContentNames renders the selectable contents of a job in a box.
func FormatContentNames(s JobSummary, names []string) string {
	var b strings.Builder
	b.WriteString(FormatJobSummary(s))
	b.WriteString("\n")
	if len(names) == 0 {
		b.WriteString(Dim("No Plan Content Names found for this job."))
	} else {
		b.WriteString(Header("Contents"))
		b.WriteString("\n")
		for i, n := range names {
			b.WriteString(Dim(strconv.Itoa(i+1)+". ") + n + "\n")
		}
	}
	return RenderBox("Job "+s.JobNumber, strings.TrimRight(b.String(), "\n"))
}

// FormatContent renders a content header followed by its four cards.
func FormatContent(name string, meta [][2]string, cards []Card, width int, dropped []domain.ColorAssignment) string {
	var b strings.Builder
	b.WriteString(Header(name))
	b.WriteString("\n")
	if len(meta) > 0 {
		b.WriteString(RenderKeyValues(meta))
	}
	b.WriteString(RenderCards(cards, width, NoCursor))
	b.WriteString("\n")
	if len(dropped) > 0 {
		tags := make([]string, 0, len(dropped))
		for _, d := range dropped {
			tags = append(tags, strconv.Quote(d.Tag()))
		}
		b.WriteString(StyleYellow.Render("! "+strconv.Itoa(len(dropped))+" color(s) with unknown position not shown: ") +
			Dim(strings.Join(tags, ", ")) + "\n")
	}
	return b.String()
}

// FormatCatalog renders the assignable items as a table.
func FormatCatalog(items []domain.CatalogItem) string {
	if len(items) == 0 {
		return Dim("No items available.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{string(it.ID), it.Name})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// FormatJobNumbers renders search matches one per line.
func FormatJobNumbers(numbers []string) string {
	if len(numbers) == 0 {
		return Dim("No matching jobs.") + "\n"
	}
	return strings.Join(numbers, "\n") + "\n"
}
