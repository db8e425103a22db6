package ledger

import (
	"context"
	"errors"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateLine(ctx context.Context, l *models.OrderLine) error {
	if err := s.conn(ctx).Omit("Tab", "MenuItem").Create(l).Error; err != nil {
		return classify("create order line", err)
	}
	s.touch(live.OrderLines)
	return nil
}

func (s *Store) GetLine(ctx context.Context, id uint) (*models.OrderLine, error) {
	var l models.OrderLine
	if err := s.conn(ctx).First(&l, id).Error; err != nil {
		return nil, classify("get order line", err)
	}
	return &l, nil
}

// FindUnpaidLine returns the unpaid line for a catalog item on a tab, or nil
// when there is none.
func (s *Store) FindUnpaidLine(ctx context.Context, tabID, menuItemID uint) (*models.OrderLine, error) {
	var l models.OrderLine
	err := s.conn(ctx).
		Where("tab_id = ? AND menu_item_id = ? AND status = ?", tabID, menuItemID, models.LineUnpaid).
		Order("id").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find order line", err)
	}
	return &l, nil
}

func (s *Store) SetLineQuantity(ctx context.Context, id uint, qty int) error {
	res := s.conn(ctx).Model(&models.OrderLine{}).Where("id = ?", id).Update("quantity", qty)
	if res.Error != nil {
		return classify("set line quantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.touch(live.OrderLines)
	return nil
}

func (s *Store) DeleteLine(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.OrderLine{}, id)
	if res.Error != nil {
		return classify("delete order line", res.Error)
	}
	if res.RowsAffected > 0 {
		s.touch(live.OrderLines)
	}
	return nil
}

// LinesForTab returns every line of a tab, oldest first, with the menu item preloaded.
func (s *Store) LinesForTab(ctx context.Context, tabID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := s.conn(ctx).Preload("MenuItem").
		Where("tab_id = ?", tabID).
		Order("created_at").Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, classify("list order lines", err)
	}
	return lines, nil
}

// UnpaidLinesByIDs returns the subset of ids that are unpaid lines of tabID.
// Inside a transaction the returned rows stay locked until it ends.
func (s *Store) UnpaidLinesByIDs(ctx context.Context, tabID uint, ids []uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if len(ids) == 0 {
		return lines, nil
	}
	err := s.forUpdate(s.conn(ctx)).
		Where("tab_id = ? AND status = ? AND id IN ?", tabID, models.LineUnpaid, ids).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, classify("select order lines", err)
	}
	return lines, nil
}

// MarkLinesPaid flips the given unpaid lines to paid and returns how many changed.
func (s *Store) MarkLinesPaid(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.conn(ctx).Model(&models.OrderLine{}).
		Where("id IN ? AND status = ?", ids, models.LineUnpaid).
		Update("status", models.LinePaid)
	if res.Error != nil {
		return 0, classify("mark lines paid", res.Error)
	}
	if res.RowsAffected > 0 {
		s.touch(live.OrderLines)
	}
	return res.RowsAffected, nil
}

// ReassignLines moves every line of one tab to another.
func (s *Store) ReassignLines(ctx context.Context, fromTabID, toTabID uint) (int64, error) {
	res := s.conn(ctx).Model(&models.OrderLine{}).Where("tab_id = ?", fromTabID).Update("tab_id", toTabID)
	if res.Error != nil {
		return 0, classify("reassign lines", res.Error)
	}
	if res.RowsAffected > 0 {
		s.touch(live.OrderLines)
	}
	return res.RowsAffected, nil
}

func (s *Store) CountUnpaidLines(ctx context.Context, tabID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.OrderLine{}).
		Where("tab_id = ? AND status = ?", tabID, models.LineUnpaid).
		Count(&n).Error
	if err != nil {
		return 0, classify("count unpaid lines", err)
	}
	return n, nil
}

// LineStats totals the lines of every tab with the given status.
func (s *Store) LineStats(ctx context.Context, status models.TabStatus) (count int64, total int64, err error) {
	var row struct {
		Count int64
		Total int64
	}
	ids := s.conn(ctx).Model(&models.Tab{}).Select("id").Where("status = ?", status)
	err = s.conn(ctx).Model(&models.OrderLine{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price_at_order * quantity), 0) AS total").
		Where("tab_id IN (?)", ids).
		Scan(&row).Error
	if err != nil {
		return 0, 0, classify("line stats", err)
	}
	return row.Count, row.Total, nil
}
