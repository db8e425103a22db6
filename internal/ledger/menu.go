package ledger

import (
	"context"
	"errors"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateMenuItem(ctx context.Context, m *models.MenuItem) error {
	if err := s.conn(ctx).Create(m).Error; err != nil {
		return classify("create menu item", err)
	}
	s.touch(live.MenuItems)
	return nil
}

func (s *Store) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var m models.MenuItem
	if err := s.conn(ctx).First(&m, id).Error; err != nil {
		return nil, classify("get menu item", err)
	}
	return &m, nil
}

// UpdateMenuItem writes every column of m. Existing order lines keep their price.
func (s *Store) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	res := s.conn(ctx).Model(&models.MenuItem{}).Where("id = ?", m.ID).Updates(map[string]any{
		"name":     m.Name,
		"price":    m.Price,
		"category": m.Category,
		"color":    m.Color,
	})
	if res.Error != nil {
		return classify("update menu item", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	// Lines preload the item for their display name.
	s.touch(live.MenuItems, live.OrderLines)
	return nil
}

// DeleteMenuItem removes a catalog entry. Lines that referenced it become custom
// lines carrying the item's name, with their price untouched.
func (s *Store) DeleteMenuItem(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.Transaction(ctx, func(tx *Store) error {
		m, err := tx.GetMenuItem(ctx, id)
		if err != nil {
			return err
		}
		res := tx.conn(ctx).Model(&models.OrderLine{}).Where("menu_item_id = ?", id).Updates(map[string]any{
			"custom_name":  gorm.Expr("CASE WHEN custom_name IS NULL OR custom_name = '' THEN ? ELSE custom_name END", m.Name),
			"menu_item_id": nil,
		})
		if res.Error != nil {
			return classify("detach lines", res.Error)
		}
		if res.RowsAffected > 0 {
			tx.touch(live.OrderLines)
		}
		if err := tx.conn(ctx).Delete(&models.MenuItem{}, id).Error; err != nil {
			return classify("delete menu item", err)
		}
		deleted = true
		tx.touch(live.MenuItems)
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return deleted, err
}

// ListMenuItems orders by category then name.
func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.conn(ctx).Order("category").Order("name").Order("id").Find(&items).Error; err != nil {
		return nil, classify("list menu items", err)
	}
	return items, nil
}
