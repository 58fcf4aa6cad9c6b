package editor

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/domain"
)

// NoticeKind classifies a message shown to the operator.
type NoticeKind string

const (
	NoticeNone    NoticeKind = ""
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
)

// Notice is the operator-facing outcome of an editor operation.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }
func info(msg string) Notice    { return Notice{Kind: NoticeInfo, Message: msg} }
func warning(msg string) Notice { return Notice{Kind: NoticeWarning, Message: msg} }

// Operator messages.
const (
	MsgEnterJobNumber = "Please enter a job number."
	MsgJobLoaded      = "Job details loaded successfully!"
	MsgNoContentNames = "No Plan Content Names found for this job."
	MsgNoDataToSave   = "No data to save."
	MsgSaved          = "Changes saved successfully!"
	MsgSaveInFlight   = "Saving..."
	MsgLoadFailed     = "Failed to load job details."
	MsgCatalogFailed  = "Failed to load items."
	MsgSaveFailed     = "Failed to save changes."
)

// CatalogResult is a catalog fetch tagged with the session generation it
// was requested for.
type CatalogResult struct {
	Generation uint64
	Items      []domain.CatalogItem
}

// Editor drives a Session against the job API. Every external failure
// ends in a Notice and a safe session state.
type Editor struct {
	api     app.JobAPI
	session *Session
	logger  *slog.Logger
}

// New creates an editor with a fresh session.
func New(api app.JobAPI, logger *slog.Logger) *Editor {
	s := NewSession(logger)
	return &Editor{api: api, session: s, logger: s.logger}
}

// Session returns the editor's session.
func (e *Editor) Session() *Session { return e.session }

// Close releases the session's subscriptions.
func (e *Editor) Close() error { return e.session.Close() }

// LoadJob fetches the color data of jobNumber and replaces the session's
// dataset. On failure the session is reset.
func (e *Editor) LoadJob(ctx context.Context, jobNumber string) (Notice, error) {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return warning(MsgEnterJobNumber), ErrNoJobNumber
	}

	details, err := e.api.GetJobColorDetails(ctx, jobNumber)
	if err != nil {
		e.session.Reset()
		e.logger.Warn("load job failed", "job_number", jobNumber, "error", err)
		return warning(messageOf(err, MsgLoadFailed)), err
	}

	e.session.Load(jobNumber, details)
	if len(e.session.ContentNames()) == 0 {
		return info(MsgNoContentNames), nil
	}
	return success(MsgJobLoaded), nil
}

// LoadJobDetails fetches the descriptive fields of jobNumber. On failure
// the returned details are blank.
func (e *Editor) LoadJobDetails(ctx context.Context, jobNumber string) (app.JobDetails, Notice, error) {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return app.JobDetails{}, warning(MsgEnterJobNumber), ErrNoJobNumber
	}
	d, err := e.api.GetJobDetails(ctx, jobNumber)
	if err != nil {
		e.logger.Warn("load job details failed", "job_number", jobNumber, "error", err)
		return app.JobDetails{}, warning(messageOf(err, MsgLoadFailed)), err
	}
	return *d, Notice{}, nil
}

// SearchJobNumbers lists job numbers matching fragment. Short fragments
// yield nothing.
func (e *Editor) SearchJobNumbers(ctx context.Context, fragment string) ([]string, error) {
	if len(strings.TrimSpace(fragment)) < app.MinJobSearchLen {
		return nil, nil
	}
	return e.api.SearchJobNumbers(ctx, strings.TrimSpace(fragment))
}

// Select makes name the current content. A miss is not an error.
func (e *Editor) Select(name string) bool {
	return e.session.Select(name)
}

// LoadCatalog fetches the assignable items for the current selection.
// Callers must check Session.AcceptCatalog before using the result.
func (e *Editor) LoadCatalog(ctx context.Context) (CatalogResult, Notice, error) {
	gen := e.session.Generation()
	res, err := e.api.GetItemsForColor(ctx)
	if err != nil {
		e.logger.Warn("load catalog failed", "error", err)
		return CatalogResult{Generation: gen}, warning(messageOf(err, MsgCatalogFailed)), err
	}
	items := res.Items
	if items == nil {
		items = []domain.CatalogItem{}
	}
	return CatalogResult{Generation: gen, Items: items}, Notice{}, nil
}

// Save submits the selected content. A successful save resets the
// session; a failed one keeps the edits.
func (e *Editor) Save(ctx context.Context) (Notice, error) {
	payload, err := e.session.BeginSave()
	switch {
	case errors.Is(err, ErrSaveInFlight):
		return info(MsgSaveInFlight), err
	case err != nil:
		return warning(MsgNoDataToSave), err
	}

	res, err := e.api.SaveColorChanges(ctx, payload)
	if err == nil && (res == nil || !res.Success) {
		var msg string
		if res != nil {
			msg = res.Error
		}
		err = errors.New(domain.CoalesceStr(msg, "Failed to save changes"))
	}
	e.session.EndSave(err == nil)
	if err != nil {
		e.logger.Warn("save failed", "job_number", payload.JobNumber, "error", err)
		return warning(messageOf(err, MsgSaveFailed)), err
	}
	e.logger.Info("colors saved",
		"job_number", payload.JobNumber,
		"content", payload.Contents[0].PlanContName,
		"colors", len(payload.Contents[0].Colors),
	)
	return success(MsgSaved), nil
}

// Reset discards the whole session.
func (e *Editor) Reset() {
	e.session.Reset()
}

func messageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return domain.CoalesceStrOr(err.Error(), fallback)
}
