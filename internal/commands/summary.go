package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/balance"
	"github.com/juntos-app/juntos/internal/period"
)

func newSummaryCommand() *cobra.Command {
	var periodName string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.Parse(periodName)
			if err != nil {
				return err
			}
			return runSummary(cmd, per)
		},
	}

	cmd.Flags().StringVar(&periodName, "period", string(period.ThisMonth), "all, this-week, this-month, last-month or this-year")

	return cmd
}

func runSummary(cmd *cobra.Command, per period.Period) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	records, err := listPeriod(cmd.Context(), p.expenses, p.cfg.Couple.ID, per)
	if err != nil {
		return err
	}
	s := balance.Summarize(records)

	sym := p.cfg.Currency.Symbol
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Spending (%s)\n", per)
	fmt.Fprintf(out, "Total:   %s\n", formatMoney(sym, s.Total))
	fmt.Fprintf(out, "Count:   %d\n", s.Count)
	fmt.Fprintf(out, "Average: %s\n", formatMoney(sym, s.Average().Round(2)))

	if s.Count == 0 {
		return nil
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL")
	for _, c := range s.Categories() {
		fmt.Fprintf(tw, "%s\t%s\n", c.Label(), formatMoney(sym, s.ByCategory[c]))
	}
	return tw.Flush()
}
