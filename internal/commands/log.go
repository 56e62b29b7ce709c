package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/activity"
)

func newLogCommand() *cobra.Command {
	var as string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, as, limit)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "only show actions by this member, by ID or name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show (0 for all)")

	return cmd
}

func runLog(cmd *cobra.Command, as string, limit int) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	var memberID string
	if as != "" {
		m, err := p.member(as)
		if err != nil {
			return err
		}
		memberID = m.ID
	}

	all, err := activity.Read(p.root)
	if err != nil {
		return err
	}
	entries := activity.Recent(all, memberID, limit)

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity")
		return nil
	}

	names := p.cfg.Couple.Names()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMEMBER\tACTION\tEXPENSE\tDETAILS\tCOMMIT")
	for _, e := range entries {
		who := names[e.Member]
		if who == "" {
			who = e.Member
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			who,
			e.Action,
			e.ExpenseID,
			e.Details,
			e.CommitHash,
		)
	}
	return tw.Flush()
}
