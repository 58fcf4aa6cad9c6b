package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/jobcolor/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, dbPath, seedPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the SQLite-backed job API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, closeStore, err := server.Open(ctx, server.StoreOptions{
				DBPath:   dbPath,
				SeedPath: seedPath,
			}, app.Logger)
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Fprintf(cmd.ErrOrStderr(), "job API listening on %s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.Store.ListenAddr, "listen address")
	cmd.Flags().StringVar(&dbPath, "db", app.Config.Store.DB, "SQLite database path (:memory: for a throwaway store)")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML file of jobs and items to load on start")
	return cmd
}
