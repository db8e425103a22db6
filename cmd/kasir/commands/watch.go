package commands

import (
	"github.com/diewo77/warung-ledger/cmd/kasir/tui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live board of open tabs and outstanding kasbon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunBoard(cmd.Context(), current.svc, current.lang)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
