package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/validation"
)

// CheckoutRequest settles LineIDs of a tab against CashReceived. The customer
// fields are only used when a debt is recorded.
type CheckoutRequest struct {
	TabID         uint
	LineIDs       []uint
	CashReceived  int64
	CustomerName  string
	CustomerPhone string
}

// CheckoutResult describes a completed checkout. Change is reported, not stored.
type CheckoutResult struct {
	TabID        uint
	Total        int64
	CashReceived int64
	Change       int64
	Debt         *models.DebtRecord
	TabPaid      bool
}

// CheckoutService settles order lines and records kasbon for any shortfall.
type CheckoutService struct {
	clock
	store *ledger.Store
	log   *slog.Logger

	mu    sync.Mutex
	hooks []func(CheckoutResult)
}

func NewCheckoutService(store *ledger.Store, log *slog.Logger) *CheckoutService {
	return &CheckoutService{store: store, log: log}
}

// OnComplete registers fn to run after every committed checkout.
func (s *CheckoutService) OnComplete(fn func(CheckoutResult)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Checkout marks the selected lines paid, records a debt when the cash falls
// short, and closes the tab once nothing on it is unpaid. Either all of it
// happens or none of it does.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	ids := uniqueIDs(req.LineIDs)
	if len(ids) == 0 {
		return CheckoutResult{}, ErrEmptySelection
	}
	v := validation.Violations{}
	validation.NonNegativeInt("cash_received", req.CashReceived, v)
	if err := check(v); err != nil {
		return CheckoutResult{}, err
	}

	res := CheckoutResult{TabID: req.TabID, CashReceived: req.CashReceived}
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		tab, err := tx.GetTab(ctx, req.TabID)
		if err != nil {
			return err
		}
		lines, err := tx.UnpaidLinesByIDs(ctx, req.TabID, ids)
		if err != nil {
			return err
		}
		if len(lines) != len(ids) {
			return ErrLineNotPayable
		}
		res.Total = models.SumSubtotals(lines)
		paid, err := tx.MarkLinesPaid(ctx, ids)
		if err != nil {
			return err
		}
		if paid != int64(len(ids)) {
			return ErrLineNotPayable
		}

		if req.CashReceived < res.Total {
			res.Debt = newDebt(tab, req, res.Total, s.now())
			if err := tx.CreateDebt(ctx, res.Debt); err != nil {
				return err
			}
		} else {
			res.Change = req.CashReceived - res.Total
		}

		remaining, err := tx.CountUnpaidLines(ctx, req.TabID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			res.TabPaid = true
			if tab.IsOpen() {
				return tx.SetTabStatus(ctx, tab.ID, models.TabPaid)
			}
		}
		return nil
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	attrs := []any{"action", "checkout", "tab_id", req.TabID, "lines", len(ids), "total", res.Total, "cash", req.CashReceived, "tab_paid", res.TabPaid}
	if res.Debt != nil {
		attrs = append(attrs, "debt_id", res.Debt.ID, "debt", res.Debt.RemainingDebt)
	}
	s.log.Info("checkout completed", attrs...)

	s.mu.Lock()
	hooks := append([]func(CheckoutResult){}, s.hooks...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(res)
	}
	return res, nil
}

// newDebt records the shortfall of a checkout. A blank name falls back to the
// tab alias and a blank phone is stored as NULL.
func newDebt(tab *models.Tab, req CheckoutRequest, total int64, now time.Time) *models.DebtRecord {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = tab.Alias
	}
	var phone *string
	if p := strings.TrimSpace(req.CustomerPhone); p != "" {
		phone = &p
	}
	return &models.DebtRecord{
		CustomerName:  name,
		CustomerPhone: phone,
		TotalAmount:   total,
		PaidAmount:    req.CashReceived,
		RemainingDebt: total - req.CashReceived,
		Status:        models.DebtUnpaid,
		CreatedAt:     now,
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
