package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/juntos-app/juntos/internal/activity"
	"github.com/juntos-app/juntos/internal/expenses"
	"github.com/juntos-app/juntos/internal/model"
	"github.com/juntos-app/juntos/internal/period"
)

func newExpenseCommand() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Record, remove and list expenses",
	}
	expenseCmd.AddCommand(newExpenseAddCommand())
	expenseCmd.AddCommand(newExpenseRmCommand())
	expenseCmd.AddCommand(newExpenseListCommand())
	return expenseCmd
}

func newExpenseAddCommand() *cobra.Command {
	var as, amount, description, category, date string
	var personal bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense paid by a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			var d time.Time
			if date != "" {
				d, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
			}

			return runExpenseAdd(cmd, as, expenses.AddParams{
				Date:        d,
				Description: description,
				Amount:      amt,
				Category:    model.Category(strings.ToLower(category)),
				Shared:      !personal,
			})
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "member who paid, by ID or name (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&description, "description", "", "what it was for (required)")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "food, entertainment, bills, transport, health, shopping, home or other")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&personal, "personal", false, "personal expense, not split with your partner")
	_ = cmd.MarkFlagRequired("as")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runExpenseAdd(cmd *cobra.Command, as string, params expenses.AddParams) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	payer, err := p.member(as)
	if err != nil {
		return err
	}
	params.PaidBy = payer.ID

	ctx := cmd.Context()
	e, err := p.expenses.Add(ctx, params)
	if err != nil {
		return err
	}

	kind := "shared"
	if !e.Shared {
		kind = "personal"
	}
	amount := formatMoney(p.cfg.Currency.Symbol, e.Amount)

	p.record(ctx, activity.Entry{
		Member:    payer.ID,
		Action:    activity.ActionAddExpense,
		Details:   fmt.Sprintf("%s %s %s", e.Description, amount, kind),
		ExpenseID: e.ID,
	}, fmt.Sprintf("expense: add %s %s", e.ID, e.Description))

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s (%s, paid by %s)\n", e.ID, e.Description, amount, kind, payer.Name)
	return nil
}

func newExpenseRmCommand() *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseRm(cmd, as, args[0])
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "member deleting the expense, by ID or name (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runExpenseRm(cmd *cobra.Command, as, expenseID string) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	actor, err := p.member(as)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := p.expenses.Delete(ctx, expenseID); err != nil {
		return err
	}

	p.record(ctx, activity.Entry{
		Member:    actor.ID,
		Action:    activity.ActionDeleteExpense,
		Details:   "deleted by " + actor.Name,
		ExpenseID: expenseID,
	}, "expense: delete "+expenseID)

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", expenseID)
	return nil
}

func newExpenseListCommand() *cobra.Command {
	var periodName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses in a period, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.Parse(periodName)
			if err != nil {
				return err
			}
			return runExpenseList(cmd, per)
		},
	}

	cmd.Flags().StringVar(&periodName, "period", string(period.ThisMonth), "all, this-week, this-month, last-month or this-year")

	return cmd
}

func runExpenseList(cmd *cobra.Command, per period.Period) error {
	p, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	records, err := listPeriod(cmd.Context(), p.expenses, p.cfg.Couple.ID, per)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No expenses (%s)\n", per)
		return nil
	}

	names := p.cfg.Couple.Names()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tPAID BY\tTYPE")
	for _, e := range records {
		kind := "shared"
		if !e.Shared {
			kind = "personal"
		}
		payer := names[e.PaidBy]
		if payer == "" {
			payer = e.PaidBy
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category.Label(),
			formatMoney(p.cfg.Currency.Symbol, e.Amount),
			payer,
			kind,
		)
	}
	return tw.Flush()
}
