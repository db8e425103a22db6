package commands

import (
	"fmt"

	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/spf13/cobra"
)

var tabCmd = &cobra.Command{
	Use:   "tab",
	Short: "Open, list, rename, merge and delete tabs",
}

var tabOpenCmd = &cobra.Command{
	Use:   "open <alias>",
	Short: "Open a new tab for a customer or table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := current.svc.Tabs.CreateTab(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(map[string]uint{"id": id})
		}
		output.Success("%s #%d %s", tr("tab"), id, args[0])
		return nil
	},
}

var tabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open tabs with their unpaid totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		totals, err := current.svc.Tabs.ListActiveWithTotals(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(totals)
		}
		if len(totals) == 0 {
			output.Muted("-")
			return nil
		}
		rows := make([][]string, 0, len(totals))
		for _, tt := range totals {
			rows = append(rows, []string{
				fmt.Sprint(tt.Tab.ID),
				tt.Tab.Alias,
				tt.Tab.CreatedAt.Local().Format("15:04"),
				money(tt.UnpaidTotal),
			})
		}
		output.Section(tr("open_tabs"))
		output.Table([]string{"ID", tr("tab"), "", tr("total")}, rows)
		return nil
	},
}

var tabRenameCmd = &cobra.Command{
	Use:   "rename <id> <alias>",
	Short: "Change the alias of a tab",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := current.svc.Tabs.Rename(cmd.Context(), id, args[1]); err != nil {
			return err
		}
		output.Success("%s #%d %s", tr("tab"), id, args[1])
		return nil
	},
}

var tabMergeCmd = &cobra.Command{
	Use:   "merge <source-id> <target-id>",
	Short: "Move every line of one tab onto another and remove the first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := parseID(args[0])
		if err != nil {
			return err
		}
		dst, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := current.svc.Tabs.MergeTabs(cmd.Context(), src, dst); err != nil {
			return err
		}
		output.Success("#%d → #%d", src, dst)
		return nil
	},
}

var tabDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tab and its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := current.svc.Tabs.DeleteTab(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("%s #%d", tr("tab"), id)
		return nil
	},
}

func init() {
	tabCmd.AddCommand(tabOpenCmd, tabListCmd, tabRenameCmd, tabMergeCmd, tabDeleteCmd)
	rootCmd.AddCommand(tabCmd)
}

