package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboard/internal/engine"
	"questboard/internal/ui"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	var desc string
	var category string
	var xp int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a boss fight, quest or training task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}
			if desc == "" {
				desc = args[0]
			}
			if !cmd.Flags().Changed("xp") {
				xp = cat.SuggestedXP()
			}

			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:       args[0],
				Description: desc,
				Category:    cat,
				XPReward:    xp,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.CategoryIcon(string(task.Category)),
				task.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", task.ID, task.XPReward)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description (defaults to the title)")
	cmd.Flags().StringVarP(&category, "category", "c", string(engine.CategoryQuest), "Category (boss|quest|training)")
	cmd.Flags().IntVarP(&xp, "xp", "x", 0, "XP reward (default by category: boss 500, quest 200, training 100)")

	return cmd
}
