package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/jobcolor/internal/app"
	"github.com/alexanderramin/jobcolor/internal/config"
	"github.com/alexanderramin/jobcolor/internal/editor"
	"github.com/alexanderramin/jobcolor/internal/gateway"
	"github.com/alexanderramin/jobcolor/internal/metrics"
)

// App holds what the CLI commands share. API and Logger are built from
// Config after flags are parsed unless already set.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	API    app.JobAPI

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// RunProgram runs the TUI model. Nil runs a full-screen bubbletea program.
	RunProgram func(m tea.Model) error
}

// NewRootCmd creates the top-level "jobcolor" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	if a.Config == nil {
		cfg := config.Default()
		a.Config = &cfg
	}

	root := &cobra.Command{
		Use:           "jobcolor",
		Short:         "Assign color items to the contents of a print job",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.pushMetrics(cmd)
		},
	}
	config.BindFlags(root.PersistentFlags(), a.Config)

	root.AddCommand(
		newEditCmd(a),
		newShowCmd(a),
		newItemsCmd(a),
		newSearchCmd(a),
		newApplyCmd(a),
		newServeCmd(a),
	)

	return root
}

func (a *App) prepare(cmd *cobra.Command) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if a.Logger == nil {
		a.Logger = config.NewLogger(cmd.ErrOrStderr(), a.Config.Env, a.Config.LogLevel)
	}
	if a.API == nil {
		var observers gateway.MultiObserver
		if a.Config.PushgatewayURL != "" {
			observers = append(observers, gateway.MetricsObserver{})
		}
		if a.Config.LogCalls {
			observers = append(observers, gateway.NewLogObserver(a.Logger))
		}
		a.API = gateway.NewClient(a.Config.Gateway(), observers)
	}
	return nil
}

// pushMetrics hands the client metrics to the configured Pushgateway. A
// failed push is logged and does not fail the command.
func (a *App) pushMetrics(cmd *cobra.Command) {
	url := a.Config.PushgatewayURL
	if url == "" || cmd.Name() == "serve" {
		return
	}
	if err := metrics.PushGateway(cmd.Context(), url, "jobcolor"); err != nil {
		a.Logger.Warn("metrics push failed", "error", err)
	}
}

func (a *App) newEditor() *editor.Editor {
	return editor.New(a.API, a.Logger)
}
