package commands

import (
	"fmt"

	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/spf13/cobra"
)

var (
	customQty  int
	removeLine bool
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Add, remove and list order lines on a tab",
}

var orderAddCmd = &cobra.Command{
	Use:   "add <tab-id> <menu-item-id>",
	Short: "Order one of a menu item at its current price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID(args[0])
		if err != nil {
			return err
		}
		itemID, err := parseID(args[1])
		if err != nil {
			return err
		}
		line, err := current.svc.Orders.AddCatalogItem(cmd.Context(), tabID, itemID)
		if err != nil {
			return err
		}
		return printLine(line)
	},
}

var orderCustomCmd = &cobra.Command{
	Use:   "custom <tab-id> <name> <price>",
	Short: "Order a free-text item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID(args[0])
		if err != nil {
			return err
		}
		price, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		line, err := current.svc.Orders.AddCustomItemQty(cmd.Context(), tabID, args[1], price, customQty)
		if err != nil {
			return err
		}
		return printLine(line)
	},
}

var orderRemoveCmd = &cobra.Command{
	Use:   "remove <tab-id> <menu-item-id> | remove --line <line-id>",
	Short: "Take one unit off an unpaid line",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if removeLine {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return current.svc.Orders.DecrementLine(cmd.Context(), id)
		}
		if len(args) != 2 {
			return fmt.Errorf("expected <tab-id> <menu-item-id>")
		}
		tabID, err := parseID(args[0])
		if err != nil {
			return err
		}
		itemID, err := parseID(args[1])
		if err != nil {
			return err
		}
		return current.svc.Orders.RemoveOrDecrement(cmd.Context(), tabID, itemID)
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list <tab-id>",
	Short: "List every line of a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tabID, err := parseID(args[0])
		if err != nil {
			return err
		}
		lines, err := current.svc.Orders.ListForTab(cmd.Context(), tabID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(lines)
		}
		rows := make([][]string, 0, len(lines))
		var unpaid []models.OrderLine
		for _, l := range lines {
			rows = append(rows, []string{
				fmt.Sprint(l.ID),
				output.StatusIcon(l.Status.String()) + " " + tr(l.Status.String()),
				l.DisplayName(),
				fmt.Sprint(l.Quantity),
				money(l.PriceAtOrder),
				money(l.Subtotal()),
			})
			if l.Status == models.LineUnpaid {
				unpaid = append(unpaid, l)
			}
		}
		output.Table([]string{"ID", "", "", "Qty", "@", tr("total")}, rows)
		output.Info("%s: %s", tr("Unpaid"), money(models.SumSubtotals(unpaid)))
		return nil
	},
}

func printLine(l *models.OrderLine) error {
	if jsonOutput {
		return output.JSON(l)
	}
	name := l.CustomName
	if !l.IsCustom() {
		name = fmt.Sprintf("menu #%d", *l.MenuItemID)
	}
	output.Success("#%d %s x%d @ %s", l.ID, name, l.Quantity, money(l.PriceAtOrder))
	return nil
}

func init() {
	orderCustomCmd.Flags().IntVarP(&customQty, "qty", "q", 1, "quantity")
	orderRemoveCmd.Flags().BoolVar(&removeLine, "line", false, "address the line by its id")
	orderCmd.AddCommand(orderAddCmd, orderCustomCmd, orderRemoveCmd, orderListCmd)
	rootCmd.AddCommand(orderCmd)
}
