package cli

import (
	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/editor"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App    *App
	Editor *editor.Editor

	// Descriptive fields of the loaded job. Blank when the lookup failed.
	Details app.JobDetails

	// Last operator notice, cleared on the next key press.
	Notice editor.Notice

	// Terminal dimensions
	Width  int
	Height int
}

// JobSummary returns the header fields of the loaded job.
func (s *SharedState) JobSummary() formatter.JobSummary {
	return formatter.JobSummary{
		JobNumber:     s.Editor.Session().JobNumber(),
		ClientName:    s.Details.ClientName,
		JobName:       s.Details.JobName,
		OrderQuantity: s.Details.OrderQuantity,
		PODate:        s.Details.PODate,
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (3 lines: separator, notice, hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

func noticeLevel(k editor.NoticeKind) formatter.NoticeLevel {
	switch k {
	case editor.NoticeSuccess:
		return formatter.LevelSuccess
	case editor.NoticeWarning:
		return formatter.LevelWarning
	default:
		return formatter.LevelInfo
	}
}
