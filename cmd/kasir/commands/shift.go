package commands

import (
	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "End-of-shift operations",
}

var shiftCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Archive every paid tab; open tabs and kasbon carry over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := current.svc.Shift.CloseShift(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(sum)
		}
		output.Success("%s: %d", tr("tabs_closed"), sum.TabsClosed)
		output.Info("%s: %d", tr("lines_archived"), sum.LinesArchived)
		output.Info("%s: %s", tr("paid_income"), money(sum.Income))
		output.Info("%s: %s", tr("active_kasbon"), money(sum.ActiveKasbon))
		return nil
	},
}

func init() {
	shiftCmd.AddCommand(shiftCloseCmd)
	rootCmd.AddCommand(shiftCmd)
}
