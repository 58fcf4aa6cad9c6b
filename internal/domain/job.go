package domain

import "time"

// Job is the stored header of a production job.
type Job struct {
	Number        string
	BookingID     Opaque
	ClientName    string
	JobName       string
	OrderQuantity int
	PODate        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ColorSubmission journals one accepted color save.
type ColorSubmission struct {
	ID           string
	JobNumber    string
	PlanContName string
	ColorCount   int
	Payload      []byte
	SubmittedAt  time.Time
}
