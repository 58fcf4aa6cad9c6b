package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
)

// jobcolorHuhTheme returns a huh theme using the formatter palette.
func jobcolorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectContent creates a form choosing one of names. It returns
// nil when there is nothing to choose from.
func wizardSelectContent(jobNumber string, names []string, result *string) *huh.Form {
	if len(names) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(names))
	for i, n := range names {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", i+1, n), n))
	}
	if *result == "" {
		*result = names[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which content of " + jobNumber + "?").
				Options(options...).
				Value(result),
		),
	).WithTheme(jobcolorHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a form for a yes/no confirmation.
func wizardConfirm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(jobcolorHuhTheme()).WithShowHelp(false)
}
