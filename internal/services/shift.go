package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/models"
)

// ShiftSummary reports what a shift close archived.
type ShiftSummary struct {
	TabsClosed    int64
	LinesArchived int64
	Income        int64
	ActiveKasbon  int64
	ClosedAt      time.Time
}

// ShiftService archives settled tabs at the end of a shift.
type ShiftService struct {
	clock
	store *ledger.Store
	log   *slog.Logger
}

func NewShiftService(store *ledger.Store, log *slog.Logger) *ShiftService {
	return &ShiftService{store: store, log: log}
}

// CloseShift deletes every paid tab with its lines. Active tabs, the menu and
// all debts are left in place. Closing again with nothing paid is a no-op.
func (s *ShiftService) CloseShift(ctx context.Context) (ShiftSummary, error) {
	sum := ShiftSummary{ClosedAt: s.now()}
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		var err error
		if sum.LinesArchived, sum.Income, err = tx.LineStats(ctx, models.TabPaid); err != nil {
			return err
		}
		if sum.TabsClosed, err = tx.DeleteTabsByStatus(ctx, models.TabPaid); err != nil {
			return err
		}
		sum.ActiveKasbon, err = tx.TotalActiveKasbon(ctx)
		return err
	})
	if err != nil {
		return ShiftSummary{}, err
	}
	s.log.Info("shift closed", "action", "close_shift", "tabs", sum.TabsClosed, "lines", sum.LinesArchived,
		"income", sum.Income, "active_kasbon", sum.ActiveKasbon)
	return sum, nil
}
