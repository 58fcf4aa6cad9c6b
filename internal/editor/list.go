package editor

import (
	"fmt"
	"strings"

	evbus "github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

// TopicListMutated is published on the session bus after every
// successful add, bind or remove.
const TopicListMutated = "editor:list:mutated"

// NoAnchor appends a new row at the end of a list.
const NoAnchor = -1

// MutationKind names a list mutation.
type MutationKind string

const (
	MutationAdd    MutationKind = "add"
	MutationBind   MutationKind = "bind"
	MutationRemove MutationKind = "remove"
)

// Mutation describes one change to a CategoryList.
type Mutation struct {
	Category domain.Category
	Kind     MutationKind
	RowID    string
	Index    int
}

// Row is one slot of a category list. An unbound row is a placeholder
// waiting for a catalog item.
type Row struct {
	ID       string
	Bound    bool
	ItemID   *int
	ItemName string
}

// CategoryList holds the editable rows of one category for the selected
// content. Row identifiers stay stable across inserts and removals.
// A cleared list is closed and rejects mutations until it is initialized
// again.
type CategoryList struct {
	category domain.Category
	rows     []Row
	bus      evbus.Bus
	closed   bool
}

// NewCategoryList creates an empty list for cat. Mutations are published
// on bus when it is non-nil.
func NewCategoryList(cat domain.Category, bus evbus.Bus) *CategoryList {
	return &CategoryList{category: cat, bus: bus}
}

// Category returns the fixed category of the list.
func (l *CategoryList) Category() domain.Category { return l.category }

// Initialize replaces all rows with colors. A color without an item name
// becomes an unbound row. Initialize does not count as a mutation.
func (l *CategoryList) Initialize(colors []domain.ColorAssignment) {
	l.rows = make([]Row, 0, len(colors))
	l.closed = false
	for _, c := range colors {
		row := Row{ID: uuid.NewString()}
		if c.HasItem() {
			row.Bound = true
			row.ItemName = c.ItemName
			if c.ItemID != nil {
				id := *c.ItemID
				row.ItemID = &id
			}
		}
		l.rows = append(l.rows, row)
	}
}

// Clear removes every row without publishing a mutation and closes the
// list.
func (l *CategoryList) Clear() {
	l.rows = nil
	l.closed = true
}

// Closed reports whether the list rejects mutations.
func (l *CategoryList) Closed() bool { return l.closed }

// AddRow inserts an unbound row right after the row at index after, or at
// the end when after is NoAnchor. It returns the index of the new row.
func (l *CategoryList) AddRow(after int) (int, error) {
	if l.closed {
		return 0, fmt.Errorf("add row in %s: %w", l.category, ErrNoSelection)
	}
	if after != NoAnchor && (after < 0 || after >= len(l.rows)) {
		return 0, fmt.Errorf("add after %d in %s: %w", after, l.category, ErrRowOutOfRange)
	}
	at := len(l.rows)
	if after != NoAnchor {
		at = after + 1
	}
	row := Row{ID: uuid.NewString()}
	l.rows = append(l.rows, Row{})
	copy(l.rows[at+1:], l.rows[at:])
	l.rows[at] = row
	l.publish(MutationAdd, row.ID, at)
	return at, nil
}

// BindRow assigns item to the unbound row at index. An item without a
// name is rejected.
func (l *CategoryList) BindRow(index int, item domain.CatalogItem) error {
	if l.closed {
		return fmt.Errorf("bind row %d in %s: %w", index, l.category, ErrNoSelection)
	}
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return fmt.Errorf("bind row %d in %s: %w", index, l.category, ErrBlankItemName)
	}
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("bind row %d in %s: %w", index, l.category, ErrRowOutOfRange)
	}
	row := &l.rows[index]
	if row.Bound {
		return fmt.Errorf("bind row %d in %s: %w", index, l.category, ErrRowAlreadyBound)
	}
	row.Bound = true
	row.ItemID = item.ID.Int()
	row.ItemName = name
	l.publish(MutationBind, row.ID, index)
	return nil
}

// RemoveRow deletes the row at index.
func (l *CategoryList) RemoveRow(index int) error {
	if l.closed {
		return fmt.Errorf("remove row %d in %s: %w", index, l.category, ErrNoSelection)
	}
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("remove row %d in %s: %w", index, l.category, ErrRowOutOfRange)
	}
	id := l.rows[index].ID
	l.rows = append(l.rows[:index], l.rows[index+1:]...)
	l.publish(MutationRemove, id, index)
	return nil
}

// Snapshot returns the bound rows in order as color assignments carrying
// the list's category and the color item group.
func (l *CategoryList) Snapshot() []domain.ColorAssignment {
	out := make([]domain.ColorAssignment, 0, len(l.rows))
	for _, r := range l.rows {
		if !r.Bound {
			continue
		}
		c := domain.ColorAssignment{
			ColorSpecification: l.category.String(),
			FormSide:           l.category.String(),
			ItemGroupID:        domain.ItemGroupColor,
			ItemName:           r.ItemName,
		}
		if r.ItemID != nil {
			id := *r.ItemID
			c.ItemID = &id
		}
		out = append(out, c)
	}
	return out
}

// Rows returns a copy of the rows in display order.
func (l *CategoryList) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Row returns the row at index.
func (l *CategoryList) Row(index int) (Row, bool) {
	if index < 0 || index >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[index], true
}

// IndexOf returns the current index of the row with id, or -1.
func (l *CategoryList) IndexOf(id string) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of rows, bound or not.
func (l *CategoryList) Len() int { return len(l.rows) }

// Empty reports whether the list shows only the add-first-row affordance.
func (l *CategoryList) Empty() bool { return len(l.rows) == 0 }

// BoundCount returns the number of bound rows.
func (l *CategoryList) BoundCount() int {
	n := 0
	for _, r := range l.rows {
		if r.Bound {
			n++
		}
	}
	return n
}

func (l *CategoryList) publish(kind MutationKind, rowID string, index int) {
	if l.bus == nil {
		return
	}
	l.bus.Publish(TopicListMutated, Mutation{
		Category: l.category,
		Kind:     kind,
		RowID:    rowID,
		Index:    index,
	})
}
