package services

import (
	"context"
	"log/slog"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/validation"
)

// DebtService collects installments on kasbon records.
type DebtService struct {
	store *ledger.Store
	log   *slog.Logger
}

func NewDebtService(store *ledger.Store, log *slog.Logger) *DebtService {
	return &DebtService{store: store, log: log}
}

// ReceiveInstallment applies amount to a debt. Anything above the remaining
// balance is returned as change and not recorded, so paid plus remaining stays
// equal to the total.
func (s *DebtService) ReceiveInstallment(ctx context.Context, debtID uint, amount int64) (*models.DebtRecord, int64, error) {
	v := validation.Violations{}
	validation.PositiveInt("amount", amount, v)
	if err := check(v); err != nil {
		return nil, 0, err
	}
	var (
		debt   *models.DebtRecord
		change int64
	)
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		d, err := tx.LockDebt(ctx, debtID)
		if err != nil {
			return err
		}
		debt = d
		if d.IsSettled() {
			change = amount
			return nil
		}
		change = d.ApplyInstallment(amount)
		return tx.UpdateDebt(ctx, d)
	})
	if err != nil {
		return nil, 0, err
	}
	s.log.Info("installment received", "action", "receive_installment", "debt_id", debtID,
		"amount", amount, "change", change, "remaining", debt.RemainingDebt, "status", debt.Status.String())
	return debt, change, nil
}

func (s *DebtService) Get(ctx context.Context, id uint) (*models.DebtRecord, error) {
	return s.store.GetDebt(ctx, id)
}

// ListActive returns debts that are not yet settled, newest first.
func (s *DebtService) ListActive(ctx context.Context) ([]models.DebtRecord, error) {
	return s.store.ActiveDebts(ctx)
}

func (s *DebtService) ListAll(ctx context.Context) ([]models.DebtRecord, error) {
	return s.store.AllDebts(ctx)
}

func (s *DebtService) WatchActive(ctx context.Context) *live.Subscription[[]models.DebtRecord] {
	return s.store.WatchActiveDebts(ctx)
}
