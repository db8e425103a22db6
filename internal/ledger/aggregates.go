package ledger

import (
	"context"
	"time"

	"github.com/diewo77/warung-ledger/internal/models"
)

type tabTotalRow struct {
	ID          uint
	Alias       string
	CreatedAt   time.Time
	Status      models.TabStatus
	UnpaidTotal int64
}

// TabsWithUnpaidTotal returns every tab with status alongside the sum of its
// unpaid lines, newest first.
func (s *Store) TabsWithUnpaidTotal(ctx context.Context, status models.TabStatus) ([]models.TabTotal, error) {
	var rows []tabTotalRow
	err := s.conn(ctx).Table("tabs").
		Select("tabs.id, tabs.alias, tabs.created_at, tabs.status, "+
			"COALESCE(SUM(CASE WHEN order_lines.status = ? THEN order_lines.price_at_order * order_lines.quantity ELSE 0 END), 0) AS unpaid_total",
			models.LineUnpaid).
		Joins("LEFT JOIN order_lines ON order_lines.tab_id = tabs.id").
		Where("tabs.status = ?", status).
		Group("tabs.id, tabs.alias, tabs.created_at, tabs.status").
		Order("tabs.created_at DESC").Order("tabs.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, classify("tabs with totals", err)
	}
	out := make([]models.TabTotal, len(rows))
	for i, r := range rows {
		out[i] = models.TabTotal{
			Tab:         models.Tab{ID: r.ID, Alias: r.Alias, CreatedAt: r.CreatedAt, Status: r.Status},
			UnpaidTotal: r.UnpaidTotal,
		}
	}
	return out, nil
}

// TotalPaidIncome sums price times quantity over every paid line.
func (s *Store) TotalPaidIncome(ctx context.Context) (int64, error) {
	var total int64
	err := s.conn(ctx).Model(&models.OrderLine{}).
		Select("COALESCE(SUM(price_at_order * quantity), 0)").
		Where("status = ?", models.LinePaid).
		Scan(&total).Error
	if err != nil {
		return 0, classify("paid income", err)
	}
	return total, nil
}

// TotalKasbonIncome sums what has been collected on debts so far.
func (s *Store) TotalKasbonIncome(ctx context.Context) (int64, error) {
	return s.sumDebts(ctx, "paid_amount")
}

// TotalActiveKasbon sums what is still owed.
func (s *Store) TotalActiveKasbon(ctx context.Context) (int64, error) {
	return s.sumDebts(ctx, "remaining_debt")
}

func (s *Store) sumDebts(ctx context.Context, column string) (int64, error) {
	var total int64
	err := s.conn(ctx).Model(&models.DebtRecord{}).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, classify("sum "+column, err)
	}
	return total, nil
}
