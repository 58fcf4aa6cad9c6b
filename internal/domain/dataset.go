package domain

import "strings"

// JobColorDataset is the color data of one job as returned by the job store.
type JobColorDataset struct {
	JobNumber    string    `json:"JobNumber"`
	JobBookingID Opaque    `json:"JobBookingID"`
	Contents     []Content `json:"Contents"`
}

// Content is one named block of color assignments within a job.
type Content struct {
	JobBookingJobCardContentsID Opaque            `json:"JobBookingJobCardContentsID"`
	PlanContName                string            `json:"PlanContName"`
	PlanContType                Opaque            `json:"PlanContType"`
	PlanContQty                 Opaque            `json:"PlanContQty"`
	Colors                      []ColorAssignment `json:"Colors"`
}

// ColorAssignment binds a catalog item to a print position.
type ColorAssignment struct {
	ColorSpecification string `json:"ColorSpecification"`
	FormSide           string `json:"FormSide"`
	ItemGroupID        int    `json:"ItemGroupID"`
	ItemID             *int   `json:"ItemID"`
	ItemName           string `json:"ItemName"`
}

// Tag returns the print-position tag, preferring ColorSpecification.
func (c ColorAssignment) Tag() string {
	return CoalesceStr(c.ColorSpecification, c.FormSide)
}

// HasItem reports whether the assignment names a catalog item.
func (c ColorAssignment) HasItem() bool {
	return strings.TrimSpace(c.ItemName) != ""
}

// ContentNames returns the PlanContName of every content, in order.
func (d *JobColorDataset) ContentNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Contents))
	for _, c := range d.Contents {
		names = append(names, c.PlanContName)
	}
	return names
}

// FindContent returns the first content whose PlanContName equals name.
func (d *JobColorDataset) FindContent(name string) (*Content, bool) {
	if d == nil || name == "" {
		return nil, false
	}
	for i := range d.Contents {
		if d.Contents[i].PlanContName == name {
			return &d.Contents[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the dataset.
func (d *JobColorDataset) Clone() *JobColorDataset {
	if d == nil {
		return nil
	}
	out := &JobColorDataset{
		JobNumber:    d.JobNumber,
		JobBookingID: cloneOpaque(d.JobBookingID),
		Contents:     make([]Content, len(d.Contents)),
	}
	for i, c := range d.Contents {
		out.Contents[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	out := c
	out.JobBookingJobCardContentsID = cloneOpaque(c.JobBookingJobCardContentsID)
	out.PlanContType = cloneOpaque(c.PlanContType)
	out.PlanContQty = cloneOpaque(c.PlanContQty)
	out.Colors = make([]ColorAssignment, len(c.Colors))
	for i, col := range c.Colors {
		if col.ItemID != nil {
			id := *col.ItemID
			col.ItemID = &id
		}
		out.Colors[i] = col
	}
	return out
}

func cloneOpaque(o Opaque) Opaque {
	if o == nil {
		return nil
	}
	return append(Opaque(nil), o...)
}
