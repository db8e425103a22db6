package commands

import (
	"fmt"

	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/spf13/cobra"
)

var debtListAll bool

var debtCmd = &cobra.Command{
	Use:     "debt",
	Aliases: []string{"kasbon"},
	Short:   "List kasbon and record installments",
}

var debtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unsettled kasbon, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			debts []models.DebtRecord
			err   error
		)
		if debtListAll {
			debts, err = current.svc.Debts.ListAll(cmd.Context())
		} else {
			debts, err = current.svc.Debts.ListActive(cmd.Context())
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(debts)
		}
		rows := make([][]string, 0, len(debts))
		for _, d := range debts {
			phone := "-"
			if d.CustomerPhone != nil {
				phone = *d.CustomerPhone
			}
			rows = append(rows, []string{
				fmt.Sprint(d.ID),
				output.StatusIcon(d.Status.String()) + " " + tr(d.Status.String()),
				d.CustomerName,
				phone,
				money(d.TotalAmount),
				money(d.PaidAmount),
				money(d.RemainingDebt),
				d.CreatedAt.Local().Format("2006-01-02"),
			})
		}
		output.Table([]string{"ID", "", "", "", tr("total"), tr("Paid"), tr("debt"), ""}, rows)
		return nil
	},
}

var debtPayCmd = &cobra.Command{
	Use:   "pay <debt-id> <amount>",
	Short: "Record an installment on a kasbon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		d, change, err := current.svc.Debts.ReceiveInstallment(cmd.Context(), id, amount)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(map[string]any{"debt": d, "change": change})
		}
		output.Success("%s #%d %s: %s (%s)", tr("debt"), d.ID, d.CustomerName, money(d.RemainingDebt), tr(d.Status.String()))
		if change > 0 {
			output.Info("%s %s", tr("change"), money(change))
		}
		return nil
	},
}

func init() {
	debtListCmd.Flags().BoolVar(&debtListAll, "all", false, "include settled kasbon")
	debtCmd.AddCommand(debtListCmd, debtPayCmd)
	rootCmd.AddCommand(debtCmd)
}
