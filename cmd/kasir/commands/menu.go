package commands

import (
	"fmt"

	"github.com/diewo77/warung-ledger/cmd/kasir/output"
	"github.com/spf13/cobra"
)

var (
	menuCategory string
	menuColor    string
	sortOrder    int
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage menu items",
}

var menuAddCmd = &cobra.Command{
	Use:   "add <name> <price>",
	Short: "Add a menu item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		m, err := current.svc.Catalog.CreateMenuItem(cmd.Context(), args[0], price, menuCategory, menuColor)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(m)
		}
		output.Success("#%d %s %s", m.ID, m.Name, money(m.Price))
		return nil
	},
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu items by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.svc.Catalog.ListMenuItems(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(items)
		}
		rows := make([][]string, 0, len(items))
		for _, m := range items {
			rows = append(rows, []string{fmt.Sprint(m.ID), m.Category, m.Name, money(m.Price)})
		}
		output.Table([]string{"ID", "", "", ""}, rows)
		return nil
	},
}

var menuPriceCmd = &cobra.Command{
	Use:   "price <id> <price>",
	Short: "Change the price of a menu item; existing lines keep their price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		price, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		if err := current.svc.Catalog.SetPrice(cmd.Context(), id, price); err != nil {
			return err
		}
		output.Success("#%d %s", id, money(price))
		return nil
	},
}

var menuDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a menu item; ordered lines are kept as custom lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := current.svc.Catalog.DeleteMenuItem(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("#%d", id)
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage menu categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := current.svc.Catalog.CreateCategory(cmd.Context(), args[0], sortOrder)
		if err != nil {
			return err
		}
		output.Success("#%d %s", c.ID, c.Name)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := current.svc.Catalog.ListCategories(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(cats)
		}
		for _, c := range cats {
			output.Muted("%d  %s", c.ID, c.Name)
		}
		return nil
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage order-entry quick picks",
}

var presetAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := current.svc.Catalog.CreatePreset(cmd.Context(), args[0], sortOrder)
		if err != nil {
			return err
		}
		output.Success("#%d %s", p.ID, p.Label)
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := current.svc.Catalog.ListPresets(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(presets)
		}
		for _, p := range presets {
			output.Muted("%d  %s", p.ID, p.Label)
		}
		return nil
	},
}

func init() {
	menuAddCmd.Flags().StringVarP(&menuCategory, "category", "c", "", "category label")
	menuAddCmd.Flags().StringVar(&menuColor, "color", "", "display color, e.g. #F59E0B")
	categoryAddCmd.Flags().IntVar(&sortOrder, "order", 0, "sort position")
	presetAddCmd.Flags().IntVar(&sortOrder, "order", 0, "sort position")

	menuCmd.AddCommand(menuAddCmd, menuListCmd, menuPriceCmd, menuDeleteCmd)
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd)
	presetCmd.AddCommand(presetAddCmd, presetListCmd)
	rootCmd.AddCommand(menuCmd, categoryCmd, presetCmd)
}
