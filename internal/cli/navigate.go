package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/jobcolor/internal/editor"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// popToRootMsg drops every view above the job search.
type popToRootMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// noticeMsg replaces the notice shown above the key hints.
type noticeMsg struct {
	notice editor.Notice
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func popToRoot() tea.Cmd {
	return func() tea.Msg { return popToRootMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// notify returns a tea.Cmd that shows n. An empty notice is dropped.
func notify(n editor.Notice) tea.Cmd {
	if n.Message == "" {
		return nil
	}
	return func() tea.Msg { return noticeMsg{notice: n} }
}

func notifyInfo(msg string) tea.Cmd {
	return notify(editor.Notice{Kind: editor.NoticeInfo, Message: msg})
}

func notifyWarning(msg string) tea.Cmd {
	return notify(editor.Notice{Kind: editor.NoticeWarning, Message: msg})
}
