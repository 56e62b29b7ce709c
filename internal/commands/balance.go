package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/balance"
	"github.com/juntos-app/juntos/internal/config"
	"github.com/juntos-app/juntos/internal/period"
)

func newBalanceCommand() *cobra.Command {
	var as, periodName string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show who owes whom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.Parse(periodName)
			if err != nil {
				return err
			}
			return runBalance(cmd, as, per)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "member whose point of view to show, by ID or name (required)")
	cmd.Flags().StringVar(&periodName, "period", string(period.ThisMonth), "all, this-week, this-month, last-month or this-year")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runBalance(cmd *cobra.Command, as string, per period.Period) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	if err := p.cfg.RequireLinked(); err != nil {
		return fmt.Errorf("balance needs both members: %w", err)
	}

	me, err := p.member(as)
	if err != nil {
		return err
	}

	couple := p.cfg.Couple
	partner, ok := couple.Partner(me.ID)
	if !ok {
		return fmt.Errorf("%s has no partner yet: %w", me.Name, config.ErrNotLinked)
	}

	records, err := listPeriod(cmd.Context(), p.expenses, couple.ID, per)
	if err != nil {
		return err
	}

	res, err := balance.Compute(records, couple.MemberA.ID, couple.MemberB.ID, me.ID)
	if err != nil {
		return fmt.Errorf("computing balance: %w", err)
	}

	sym := p.cfg.Currency.Symbol
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Balance for %s with %s (%s, %d expenses)\n\n", me.Name, partner.Name, per, res.Count)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tPAID\tFAIR SHARE\tPERSONAL")
	for _, m := range []string{couple.MemberA.ID, couple.MemberB.ID} {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			couple.Names()[m],
			formatMoney(sym, res.TotalPaid[m]),
			formatMoney(sym, res.FairShare[m].Round(2)),
			formatMoney(sym, res.PersonalTotal[m]),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nShared expenses: %s (%d)\n", formatMoney(sym, res.SharedTotal), res.SharedCount)
	fmt.Fprintln(out, res.SuggestionFor(couple.Names(), sym))
	return nil
}
