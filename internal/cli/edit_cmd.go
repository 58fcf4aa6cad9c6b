package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [JOB]",
		Short: "Open the color editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("edit needs an interactive terminal; use show or apply instead")
			}

			var jobNumber string
			if len(args) == 1 {
				jobNumber = args[0]
			}
			m := newAppModel(app, jobNumber)
			defer m.close()

			run := app.RunProgram
			if run == nil {
				run = func(m tea.Model) error {
					_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
					return err
				}
			}
			return run(m)
		},
	}
}
