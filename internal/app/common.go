package app

import "github.com/alexanderramin/jobcolor/internal/domain"

// ColorDetails is the job store's answer to a color-details lookup.
type ColorDetails struct {
	PlanContNames []string                `json:"planContNames"`
	FullData      *domain.JobColorDataset `json:"fullData"`
}

// CatalogItems wraps the assignable items returned by the item master.
type CatalogItems struct {
	Items []domain.CatalogItem `json:"items"`
}

// SaveResult is the job store's verdict on a submitted payload.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// JobDetails carries the descriptive fields shown next to the editor.
type JobDetails struct {
	ClientName    string `json:"clientName"`
	JobName       string `json:"jobName"`
	OrderQuantity int    `json:"orderQuantity"`
	PODate        string `json:"poDate"`
}

// ErrorBody is the error envelope used by every job API endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

// MinJobSearchLen is the shortest fragment a job number search accepts.
const MinJobSearchLen = 4
