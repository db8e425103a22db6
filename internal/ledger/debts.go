package ledger

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
)

func (s *Store) CreateDebt(ctx context.Context, d *models.DebtRecord) error {
	if err := s.conn(ctx).Create(d).Error; err != nil {
		return classify("create debt", err)
	}
	s.touch(live.DebtRecords)
	return nil
}

func (s *Store) GetDebt(ctx context.Context, id uint) (*models.DebtRecord, error) {
	var d models.DebtRecord
	if err := s.conn(ctx).First(&d, id).Error; err != nil {
		return nil, classify("get debt", err)
	}
	return &d, nil
}

// LockDebt is GetDebt holding the row until the surrounding transaction ends.
func (s *Store) LockDebt(ctx context.Context, id uint) (*models.DebtRecord, error) {
	var d models.DebtRecord
	if err := s.forUpdate(s.conn(ctx)).First(&d, id).Error; err != nil {
		return nil, classify("lock debt", err)
	}
	return &d, nil
}

// UpdateDebt writes the balance columns of d.
func (s *Store) UpdateDebt(ctx context.Context, d *models.DebtRecord) error {
	res := s.conn(ctx).Model(&models.DebtRecord{}).Where("id = ?", d.ID).Updates(map[string]any{
		"customer_name":  d.CustomerName,
		"customer_phone": d.CustomerPhone,
		"paid_amount":    d.PaidAmount,
		"remaining_debt": d.RemainingDebt,
		"status":         d.Status,
	})
	if res.Error != nil {
		return classify("update debt", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.touch(live.DebtRecords)
	return nil
}

// ActiveDebts lists debts that are not settled, newest first.
func (s *Store) ActiveDebts(ctx context.Context) ([]models.DebtRecord, error) {
	var debts []models.DebtRecord
	err := s.conn(ctx).Where("status <> ?", models.DebtLunas).
		Order("created_at DESC").Order("id DESC").
		Find(&debts).Error
	if err != nil {
		return nil, classify("list active debts", err)
	}
	return debts, nil
}

func (s *Store) AllDebts(ctx context.Context) ([]models.DebtRecord, error) {
	var debts []models.DebtRecord
	if err := s.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&debts).Error; err != nil {
		return nil, classify("list debts", err)
	}
	return debts, nil
}
