package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/jobcolor/internal/cli/formatter"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/editor"
)

// colorAdd binds a catalog item to a new row at the end of a category.
type colorAdd struct {
	cat    domain.Category
	itemID string
}

// colorRemove deletes the row at a 1-based position of a category.
type colorRemove struct {
	cat   domain.Category
	index int
}

func newApplyCmd(app *App) *cobra.Command {
	var (
		content string
		adds    []string
		removes []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "apply JOB",
		Short: "Edit the colors of one content without the editor",
		Long: `Edit the colors of one content of a job and save it.

Removals run first, against the rows as loaded. Positions are 1-based
and counted per category. Additions append a row bound to the catalog
item with the given id.

  jobcolor apply J-1001 --content "Box A" --remove Back:1 --add "Sp. Front=14"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedAdds, err := parseAdds(adds)
			if err != nil {
				return err
			}
			parsedRemoves, err := parseRemoves(removes)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ed := app.newEditor()
			defer ed.Close()

			notice, err := ed.LoadJob(ctx, args[0])
			if err != nil {
				return noticeError(notice, err)
			}
			if !ed.Select(content) {
				return fmt.Errorf("content %q not found in job %s", content, ed.Session().JobNumber())
			}

			session := ed.Session()
			if err := applyRemoves(session, parsedRemoves); err != nil {
				return err
			}
			if len(parsedAdds) > 0 {
				res, notice, err := ed.LoadCatalog(ctx)
				if err != nil {
					return noticeError(notice, err)
				}
				if err := applyAdds(session, res.Items, parsedAdds); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if !session.Dirty() {
				fmt.Fprintln(out, formatter.Dim("No changes."))
				return nil
			}

			if dryRun {
				payload, err := session.Build()
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding payload: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			notice, err = ed.Save(ctx)
			if err != nil {
				return noticeError(notice, err)
			}
			fmt.Fprintln(out, formatter.Notice(formatter.LevelSuccess, notice.Message))
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Plan content name to edit (required)")
	cmd.Flags().StringArrayVar(&adds, "add", nil, "add a color as CATEGORY=ITEM_ID (repeatable)")
	cmd.Flags().StringArrayVar(&removes, "remove", nil, "remove a color as CATEGORY:POSITION (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload instead of saving")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

// parseCategory matches s against the four categories ignoring case,
// spaces and dots, so "sp.front" and "SpFront" both name Sp. Front.
func parseCategory(s string) (domain.Category, error) {
	want := normalizeCategory(s)
	for _, cat := range domain.Categories {
		if normalizeCategory(cat.String()) == want {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (want one of Front, Sp. Front, Back, Sp. Back)", s)
}

func normalizeCategory(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}

func parseAdds(specs []string) ([]colorAdd, error) {
	out := make([]colorAdd, 0, len(specs))
	for _, spec := range specs {
		catStr, id, ok := strings.Cut(spec, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid --add %q: want CATEGORY=ITEM_ID", spec)
		}
		cat, err := parseCategory(catStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --add %q: %w", spec, err)
		}
		out = append(out, colorAdd{cat: cat, itemID: strings.TrimSpace(id)})
	}
	return out, nil
}

func parseRemoves(specs []string) ([]colorRemove, error) {
	out := make([]colorRemove, 0, len(specs))
	for _, spec := range specs {
		i := strings.LastIndex(spec, ":")
		if i < 0 {
			return nil, fmt.Errorf("invalid --remove %q: want CATEGORY:POSITION", spec)
		}
		cat, err := parseCategory(spec[:i])
		if err != nil {
			return nil, fmt.Errorf("invalid --remove %q: %w", spec, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(spec[i+1:]))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid --remove %q: position must be a positive number", spec)
		}
		out = append(out, colorRemove{cat: cat, index: n})
	}
	return out, nil
}

// applyRemoves deletes rows from the highest position down so earlier
// positions keep their meaning.
func applyRemoves(session *editor.Session, removes []colorRemove) error {
	sorted := append([]colorRemove(nil), removes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].cat != sorted[j].cat {
			return sorted[i].cat.Index() < sorted[j].cat.Index()
		}
		return sorted[i].index > sorted[j].index
	})

	for i, r := range sorted {
		if i > 0 && sorted[i-1] == r {
			continue
		}
		l := session.List(r.cat)
		if r.index > l.Len() {
			return fmt.Errorf("%s has %d color(s), cannot remove position %d", r.cat, l.Len(), r.index)
		}
		if err := l.RemoveRow(r.index - 1); err != nil {
			return err
		}
	}
	return nil
}

func applyAdds(session *editor.Session, items []domain.CatalogItem, adds []colorAdd) error {
	byID := make(map[string]domain.CatalogItem, len(items))
	for _, it := range items {
		byID[string(it.ID)] = it
	}

	for _, a := range adds {
		item, ok := byID[a.itemID]
		if !ok {
			return fmt.Errorf("item %s is not in the catalog", a.itemID)
		}
		l := session.List(a.cat)
		at, err := l.AddRow(editor.NoAnchor)
		if err != nil {
			return err
		}
		if err := l.BindRow(at, item); err != nil {
			return err
		}
	}
	return nil
}
