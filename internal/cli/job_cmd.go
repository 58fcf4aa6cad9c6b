package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/editor"
)

// defaultRenderWidth is used when output does not go to a terminal.
const defaultRenderWidth = 100

func newShowCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "show JOB",
		Short: "Show the contents of a job, or the colors of one content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed := app.newEditor()
			defer ed.Close()

			notice, err := ed.LoadJob(ctx, args[0])
			if err != nil {
				return noticeError(notice, err)
			}
			details, _, _ := ed.LoadJobDetails(ctx, args[0])
			session := ed.Session()
			summary := formatter.JobSummary{
				JobNumber:     session.JobNumber(),
				ClientName:    details.ClientName,
				JobName:       details.JobName,
				OrderQuantity: details.OrderQuantity,
				PODate:        details.PODate,
			}

			out := cmd.OutOrStdout()
			if content == "" {
				fmt.Fprintln(out, formatter.FormatContentNames(summary, session.ContentNames()))
				return nil
			}
			if !ed.Select(content) {
				return fmt.Errorf("content %q not found in job %s", content, session.JobNumber())
			}
			sel, _ := session.Selection()
			fmt.Fprint(out, formatter.FormatJobSummary(summary))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatContent(sel.Name, contentMeta(sel), sessionCards(session), defaultRenderWidth, session.Dropped()))
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Plan content name to show")
	return cmd
}

func newItemsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the items assignable as colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.API.GetItemsForColor(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", editor.MsgCatalogFailed, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(res.Items))
			return nil
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search FRAGMENT",
		Short: "Find job numbers containing a fragment of at least 4 characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment := strings.TrimSpace(args[0])
			if len(fragment) < 4 {
				return fmt.Errorf("search needs at least 4 characters, got %q", fragment)
			}
			numbers, err := app.API.SearchJobNumbers(cmd.Context(), fragment)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJobNumbers(numbers))
			return nil
		},
	}
}

// noticeError wraps err with the operator message of a failed operation.
func noticeError(n editor.Notice, err error) error {
	if n.Message == "" || n.Message == err.Error() {
		return err
	}
	return fmt.Errorf("%s: %w", n.Message, err)
}
