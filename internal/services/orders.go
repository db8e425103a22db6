package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/validation"
)

// OrderService adds and removes order lines on open tabs.
type OrderService struct {
	clock
	store *ledger.Store
	log   *slog.Logger
}

func NewOrderService(store *ledger.Store, log *slog.Logger) *OrderService {
	return &OrderService{store: store, log: log}
}

func openTab(ctx context.Context, tx *ledger.Store, tabID uint) (*models.Tab, error) {
	tab, err := tx.GetTab(ctx, tabID)
	if err != nil {
		return nil, err
	}
	if !tab.IsOpen() {
		return nil, ErrTabClosed
	}
	return tab, nil
}

// AddCatalogItem orders one more of a menu item. An unpaid line for the same
// item is incremented and keeps its original price; otherwise a new line is
// created at the current catalog price.
func (s *OrderService) AddCatalogItem(ctx context.Context, tabID, menuItemID uint) (*models.OrderLine, error) {
	var line *models.OrderLine
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		if _, err := openTab(ctx, tx, tabID); err != nil {
			return err
		}
		item, err := tx.GetMenuItem(ctx, menuItemID)
		if err != nil {
			return err
		}
		existing, err := tx.FindUnpaidLine(ctx, tabID, menuItemID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Quantity++
			line = existing
			return tx.SetLineQuantity(ctx, existing.ID, existing.Quantity)
		}
		line = &models.OrderLine{
			TabID:        tabID,
			MenuItemID:   &item.ID,
			PriceAtOrder: item.Price,
			Quantity:     1,
			CreatedAt:    s.now(),
			Status:       models.LineUnpaid,
		}
		return tx.CreateLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("item added", "action", "add_catalog_item", "tab_id", tabID, "menu_item_id", menuItemID, "line_id", line.ID, "quantity", line.Quantity)
	return line, nil
}

// AddCustomItem always inserts a new free-text line with quantity one.
func (s *OrderService) AddCustomItem(ctx context.Context, tabID uint, name string, price int64) (*models.OrderLine, error) {
	return s.AddCustomItemQty(ctx, tabID, name, price, 1)
}

func (s *OrderService) AddCustomItemQty(ctx context.Context, tabID uint, name string, price int64, qty int) (*models.OrderLine, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.PositiveInt("price", price, v)
	validation.PositiveInt("quantity", int64(qty), v)
	if err := check(v); err != nil {
		return nil, err
	}
	line := &models.OrderLine{
		TabID:        tabID,
		CustomName:   strings.TrimSpace(name),
		PriceAtOrder: price,
		Quantity:     qty,
		CreatedAt:    s.now(),
		Status:       models.LineUnpaid,
	}
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		if _, err := openTab(ctx, tx, tabID); err != nil {
			return err
		}
		return tx.CreateLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("custom item added", "action", "add_custom_item", "tab_id", tabID, "line_id", line.ID, "price", price, "quantity", qty)
	return line, nil
}

// RemoveOrDecrement takes one unit off the unpaid line for a menu item, deleting
// the line when none is left. Nothing happens when there is no such line.
func (s *OrderService) RemoveOrDecrement(ctx context.Context, tabID, menuItemID uint) error {
	return s.store.Transaction(ctx, func(tx *ledger.Store) error {
		line, err := tx.FindUnpaidLine(ctx, tabID, menuItemID)
		if err != nil || line == nil {
			return err
		}
		return s.decrement(ctx, tx, line)
	})
}

// DecrementLine is RemoveOrDecrement addressed by line id. Paid and unknown
// lines are left alone.
func (s *OrderService) DecrementLine(ctx context.Context, lineID uint) error {
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		line, err := tx.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line.Status != models.LineUnpaid {
			return nil
		}
		return s.decrement(ctx, tx, line)
	})
	if isNotFound(err) {
		return nil
	}
	return err
}

func (s *OrderService) decrement(ctx context.Context, tx *ledger.Store, line *models.OrderLine) error {
	if line.Quantity > 1 {
		s.log.Info("item decremented", "action", "decrement_line", "tab_id", line.TabID, "line_id", line.ID, "quantity", line.Quantity-1)
		return tx.SetLineQuantity(ctx, line.ID, line.Quantity-1)
	}
	s.log.Info("item removed", "action", "remove_line", "tab_id", line.TabID, "line_id", line.ID)
	return tx.DeleteLine(ctx, line.ID)
}

// ListForTab returns every line of the tab, paid or not, oldest first.
func (s *OrderService) ListForTab(ctx context.Context, tabID uint) ([]models.OrderLine, error) {
	return s.store.LinesForTab(ctx, tabID)
}

func (s *OrderService) WatchTab(ctx context.Context, tabID uint) *live.Subscription[[]models.OrderLine] {
	return s.store.WatchLinesForTab(ctx, tabID)
}
