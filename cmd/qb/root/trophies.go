package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboard/internal/ui"
)

func newTrophiesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trophies",
		Aliases: []string{"achievements"},
		Short:   "List achievements, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.ListAchievements(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Trophy Hall"))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No achievements yet. Defeat a boss to earn one."))
				return nil
			}
			for _, a := range list {
				fmt.Fprintf(out, "%s %s %s %s\n", a.Icon, ui.Gold.Render(a.Title), ui.XP(a.XPEarned), ui.Muted.Render(a.ID))
				fmt.Fprintf(out, "   %s %s\n", a.Description, ui.Muted.Render(a.CompletedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.AddCommand(newTrophyRmCmd(opts))
	return cmd
}

func newTrophyRmCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an achievement",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteAchievement(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted achievement"), ui.Muted.Render(args[0]))
			return nil
		},
	}
}
