package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questboard/internal/ui"
)

func newDoCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Long: `Complete a task and remove it from the board.

Completing a boss fight mints an achievement worth the task's XP.`,
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

			res, err := svc.CompleteTask(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), ui.CategoryIcon(string(res.Category)), ui.Muted.Render(res.TaskID))
			if a := res.Achievement; a != nil {
				fmt.Fprintf(out, "%s %s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement unlocked:"), a.Icon, a.Title, ui.XP(a.XPEarned))
			}
			return nil
		},
	}

	return cmd
}
