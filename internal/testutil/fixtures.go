package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

var testJobCounter atomic.Int64

// NextJobNumber returns a job number unique within the test binary.
func NextJobNumber() string {
	return fmt.Sprintf("J%05d", testJobCounter.Add(1))
}

// Content options
type ContentOption func(*domain.Content)

// WithColor appends a bound color tagged tag.
func WithColor(tag string, itemID int, name string) ContentOption {
	return func(c *domain.Content) {
		id := itemID
		c.Colors = append(c.Colors, domain.ColorAssignment{
			ColorSpecification: tag,
			ItemGroupID:        domain.ItemGroupColor,
			ItemID:             &id,
			ItemName:           name,
		})
	}
}

// WithFormSideColor appends a bound color tagged only through FormSide.
func WithFormSideColor(tag string, itemID int, name string) ContentOption {
	return func(c *domain.Content) {
		id := itemID
		c.Colors = append(c.Colors, domain.ColorAssignment{
			FormSide:    tag,
			ItemGroupID: domain.ItemGroupColor,
			ItemID:      &id,
			ItemName:    name,
		})
	}
}

// WithUnboundColor appends a color slot without an item.
func WithUnboundColor(tag string) ContentOption {
	return func(c *domain.Content) {
		c.Colors = append(c.Colors, domain.ColorAssignment{ColorSpecification: tag})
	}
}

func WithContentsID(id int64) ContentOption {
	return func(c *domain.Content) {
		c.JobBookingJobCardContentsID = domain.OpaqueInt(id)
	}
}

func WithPlanContType(t string) ContentOption {
	return func(c *domain.Content) {
		c.PlanContType = domain.OpaqueString(t)
	}
}

func WithPlanContQty(q int64) ContentOption {
	return func(c *domain.Content) {
		c.PlanContQty = domain.OpaqueInt(q)
	}
}

func NewTestContent(name string, opts ...ContentOption) domain.Content {
	c := domain.Content{
		PlanContName: name,
		Colors:       []domain.ColorAssignment{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Dataset options
type DatasetOption func(*domain.JobColorDataset)

func WithBookingID(id int64) DatasetOption {
	return func(d *domain.JobColorDataset) {
		d.JobBookingID = domain.OpaqueInt(id)
	}
}

func WithContent(c domain.Content) DatasetOption {
	return func(d *domain.JobColorDataset) {
		d.Contents = append(d.Contents, c)
	}
}

func NewTestDataset(jobNumber string, opts ...DatasetOption) *domain.JobColorDataset {
	d := &domain.JobColorDataset{JobNumber: jobNumber}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewTestColorDetails wraps d the way the job API answers a color lookup.
func NewTestColorDetails(d *domain.JobColorDataset) *app.ColorDetails {
	return &app.ColorDetails{PlanContNames: d.ContentNames(), FullData: d}
}

// BoxADataset is the two-color "Box A" job used throughout the tests.
func BoxADataset(jobNumber string) *domain.JobColorDataset {
	return NewTestDataset(jobNumber,
		WithBookingID(501),
		WithContent(NewTestContent("Box A",
			WithContentsID(9001),
			WithPlanContType("Carton"),
			WithPlanContQty(1200),
			WithColor("Front", 5, "Red"),
			WithColor("Back", 9, "Blue"),
		)),
	)
}
