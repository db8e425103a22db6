package ledger

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
)

// CreateTab inserts t and fills in its id.
func (s *Store) CreateTab(ctx context.Context, t *models.Tab) error {
	if err := s.conn(ctx).Create(t).Error; err != nil {
		return classify("create tab", err)
	}
	s.touch(live.Tabs)
	return nil
}

func (s *Store) GetTab(ctx context.Context, id uint) (*models.Tab, error) {
	var t models.Tab
	if err := s.conn(ctx).First(&t, id).Error; err != nil {
		return nil, classify("get tab", err)
	}
	return &t, nil
}

// UpdateTab writes every column of t. It returns ErrNotFound when no row has t's id.
func (s *Store) UpdateTab(ctx context.Context, t *models.Tab) error {
	res := s.conn(ctx).Model(&models.Tab{}).Where("id = ?", t.ID).Updates(map[string]any{
		"alias":      t.Alias,
		"created_at": t.CreatedAt,
		"status":     t.Status,
	})
	if res.Error != nil {
		return classify("update tab", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.touch(live.Tabs)
	return nil
}

// SetTabStatus changes only the status column.
func (s *Store) SetTabStatus(ctx context.Context, id uint, status models.TabStatus) error {
	res := s.conn(ctx).Model(&models.Tab{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return classify("set tab status", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.touch(live.Tabs)
	return nil
}

// DeleteTab removes a tab and its lines. It reports whether a tab was deleted.
func (s *Store) DeleteTab(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).Where("tab_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return classify("delete tab lines", err)
		}
		res := tx.conn(ctx).Delete(&models.Tab{}, id)
		if res.Error != nil {
			return classify("delete tab", res.Error)
		}
		deleted = res.RowsAffected > 0
		if deleted {
			tx.touch(live.Tabs, live.OrderLines)
		}
		return nil
	})
	return deleted, err
}

// DeleteTabsByStatus removes every tab with status and their lines, returning
// the number of tabs removed.
func (s *Store) DeleteTabsByStatus(ctx context.Context, status models.TabStatus) (int64, error) {
	var n int64
	err := s.Transaction(ctx, func(tx *Store) error {
		ids := tx.conn(ctx).Model(&models.Tab{}).Select("id").Where("status = ?", status)
		if err := tx.conn(ctx).Where("tab_id IN (?)", ids).Delete(&models.OrderLine{}).Error; err != nil {
			return classify("delete tab lines", err)
		}
		res := tx.conn(ctx).Where("status = ?", status).Delete(&models.Tab{})
		if res.Error != nil {
			return classify("delete tabs", res.Error)
		}
		n = res.RowsAffected
		if n > 0 {
			tx.touch(live.Tabs, live.OrderLines)
		}
		return nil
	})
	return n, err
}

// TabsByStatus lists tabs newest first.
func (s *Store) TabsByStatus(ctx context.Context, status models.TabStatus) ([]models.Tab, error) {
	var tabs []models.Tab
	err := s.conn(ctx).Where("status = ?", status).Order("created_at DESC").Order("id DESC").Find(&tabs).Error
	if err != nil {
		return nil, classify("list tabs", err)
	}
	return tabs, nil
}
