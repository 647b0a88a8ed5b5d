package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"questboard/internal/ui"
)

func newStatusCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and open task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			toNext := st.NextLevelXP - st.TotalXP
			if toNext < 0 {
				toNext = 0
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Hero Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next at %d, %d to go)", st.TotalXP, st.NextLevelXP, toNext)))
			fmt.Fprintln(out, ui.LabelValue("Achievements", st.Achievements))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Open tasks"))
			fmt.Fprintf(out, "- %s Boss fights: %d\n", ui.IconBoss, st.BossFights)
			fmt.Fprintf(out, "- %s Quests: %d\n", ui.IconQuest, st.Quests)
			fmt.Fprintf(out, "- %s Training: %d\n", ui.IconTraining, st.Training)
			return nil
		},
	}

	return cmd
}
