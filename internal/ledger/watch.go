package ledger

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
)

// WatchTabsWithUnpaidTotal is the live form of TabsWithUnpaidTotal.
func (s *Store) WatchTabsWithUnpaidTotal(ctx context.Context, status models.TabStatus) *live.Subscription[[]models.TabTotal] {
	return live.Watch(ctx, s.hub, func(ctx context.Context) ([]models.TabTotal, error) {
		return s.TabsWithUnpaidTotal(ctx, status)
	}, live.Tabs, live.OrderLines)
}

// WatchLinesForTab is the live form of LinesForTab.
func (s *Store) WatchLinesForTab(ctx context.Context, tabID uint) *live.Subscription[[]models.OrderLine] {
	return live.Watch(ctx, s.hub, func(ctx context.Context) ([]models.OrderLine, error) {
		return s.LinesForTab(ctx, tabID)
	}, live.OrderLines, live.MenuItems)
}

func (s *Store) WatchActiveDebts(ctx context.Context) *live.Subscription[[]models.DebtRecord] {
	return live.Watch(ctx, s.hub, s.ActiveDebts, live.DebtRecords)
}

func (s *Store) WatchMenuItems(ctx context.Context) *live.Subscription[[]models.MenuItem] {
	return live.Watch(ctx, s.hub, s.ListMenuItems, live.MenuItems)
}

func (s *Store) WatchTotalPaidIncome(ctx context.Context) *live.Subscription[int64] {
	return live.Watch(ctx, s.hub, s.TotalPaidIncome, live.OrderLines)
}

func (s *Store) WatchTotalKasbonIncome(ctx context.Context) *live.Subscription[int64] {
	return live.Watch(ctx, s.hub, s.TotalKasbonIncome, live.DebtRecords)
}

func (s *Store) WatchTotalActiveKasbon(ctx context.Context) *live.Subscription[int64] {
	return live.Watch(ctx, s.hub, s.TotalActiveKasbon, live.DebtRecords)
}
