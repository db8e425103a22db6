package commands

import (
	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show income and kasbon totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := current.svc.Reports.Summary(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(sum)
		}
		output.Table([]string{"", tr("total")}, [][]string{
			{tr("paid_income"), money(sum.PaidIncome)},
			{tr("kasbon_income"), money(sum.KasbonIncome)},
			{tr("active_kasbon"), money(sum.ActiveKasbon)},
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
