package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questboard/internal/engine"
	"questboard/internal/ui"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter engine.Category
			if category != "" {
				c, err := engine.ParseCategory(category)
				if err != nil {
					return err
				}
				filter = c
			}

			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.ListTasks(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quest Log"))
			shown := 0
			for _, t := range tasks {
				if filter != "" && engine.Category(t.Category) != filter {
					continue
				}
				shown++
				fmt.Fprintf(out, "%s %s %s %s\n",
					ui.CategoryIcon(string(t.Category)),
					t.Title,
					ui.XP(t.XPReward),
					ui.Muted.Render(t.ID))
				if t.Description != t.Title {
					fmt.Fprintf(out, "   %s\n", ui.Muted.Render(t.Description))
				}
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No quests. Add one with: qb add <title>"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category")
	return cmd
}
