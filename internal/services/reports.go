package services

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/live"
)

// Summary holds the money totals shown on the report screen.
type Summary struct {
	PaidIncome   int64 `json:"paid_income"`
	KasbonIncome int64 `json:"kasbon_income"`
	ActiveKasbon int64 `json:"active_kasbon"`
}

// ReportService reads income and kasbon totals.
type ReportService struct {
	store *ledger.Store
}

func NewReportService(store *ledger.Store) *ReportService {
	return &ReportService{store: store}
}

// Summary reads all three totals from one consistent snapshot.
func (s *ReportService) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		var err error
		if sum.PaidIncome, err = tx.TotalPaidIncome(ctx); err != nil {
			return err
		}
		if sum.KasbonIncome, err = tx.TotalKasbonIncome(ctx); err != nil {
			return err
		}
		sum.ActiveKasbon, err = tx.TotalActiveKasbon(ctx)
		return err
	})
	return sum, err
}

func (s *ReportService) WatchPaidIncome(ctx context.Context) *live.Subscription[int64] {
	return s.store.WatchTotalPaidIncome(ctx)
}

func (s *ReportService) WatchKasbonIncome(ctx context.Context) *live.Subscription[int64] {
	return s.store.WatchTotalKasbonIncome(ctx)
}

func (s *ReportService) WatchActiveKasbon(ctx context.Context) *live.Subscription[int64] {
	return s.store.WatchTotalActiveKasbon(ctx)
}
