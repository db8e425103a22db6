package commands

import (
	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/services"
	"github.com/spf13/cobra"
)

var (
	checkoutLines []uint
	checkoutAll   bool
	checkoutCash  string
	checkoutName  string
	checkoutPhone string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <tab-id>",
	Short: "Settle selected lines of a tab; any shortfall becomes kasbon",
	Example: `  kasir checkout 3 --all --cash 50000
  kasir checkout 3 --lines 7,8 --cash 10000 --name Budi --phone 0812`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID(args[0])
		if err != nil {
			return err
		}
		cash, err := parseAmount(checkoutCash)
		if err != nil {
			return err
		}
		ids := checkoutLines
		if checkoutAll {
			lines, err := current.svc.Orders.ListForTab(cmd.Context(), tabID)
			if err != nil {
				return err
			}
			ids = nil
			for _, l := range lines {
				if l.Status == models.LineUnpaid {
					ids = append(ids, l.ID)
				}
			}
		}

		res, err := current.svc.Checkout.Checkout(cmd.Context(), services.CheckoutRequest{
			TabID:         tabID,
			LineIDs:       ids,
			CashReceived:  cash,
			CustomerName:  checkoutName,
			CustomerPhone: checkoutPhone,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(res)
		}
		output.Success("%s %s", tr("total"), money(res.Total))
		if res.Change > 0 {
			output.Info("%s %s", tr("change"), money(res.Change))
		}
		if res.Debt != nil {
			output.Warning("%s #%d %s: %s", tr("debt"), res.Debt.ID, res.Debt.CustomerName, money(res.Debt.RemainingDebt))
		}
		if res.TabPaid {
			output.Muted("%s #%d %s", tr("tab"), tabID, tr("Paid"))
		}
		return nil
	},
}

func init() {
	checkoutCmd.Flags().UintSliceVar(&checkoutLines, "lines", nil, "line ids to settle")
	checkoutCmd.Flags().BoolVar(&checkoutAll, "all", false, "settle every unpaid line")
	checkoutCmd.Flags().StringVar(&checkoutCash, "cash", "0", "cash received")
	checkoutCmd.Flags().StringVar(&checkoutName, "name", "", "customer name for kasbon (defaults to the tab alias)")
	checkoutCmd.Flags().StringVar(&checkoutPhone, "phone", "", "customer phone for kasbon")
	checkoutCmd.MarkFlagsMutuallyExclusive("lines", "all")
	rootCmd.AddCommand(checkoutCmd)
}
