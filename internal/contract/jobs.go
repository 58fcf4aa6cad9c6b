// Package contract names the JSON bodies exchanged between the job store
// and its clients.
package contract

import "github.com/alexanderramin/jobcolor/internal/app"

type ColorDetailsResponse = app.ColorDetails

type ItemsResponse = app.CatalogItems

type SaveResponse = app.SaveResult

type JobDetailsResponse = app.JobDetails

type ErrorResponse = app.ErrorBody
