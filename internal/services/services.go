// Package services holds the tab, order, checkout, debt and shift commands that
// collaborators call. Each command that touches several rows runs in one
// store transaction.
package services

import (
	"log/slog"
	"time"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/logger"
)

// Services bundles every command service over one store.
type Services struct {
	Tabs     *TabService
	Orders   *OrderService
	Checkout *CheckoutService
	Debts    *DebtService
	Shift    *ShiftService
	Catalog  *CatalogService
	Reports  *ReportService
}

// New wires every service to store. A nil log discards output.
func New(store *ledger.Store, log *slog.Logger) *Services {
	if log == nil {
		log = logger.Discard()
	}
	return &Services{
		Tabs:     NewTabService(store, log),
		Orders:   NewOrderService(store, log),
		Checkout: NewCheckoutService(store, log),
		Debts:    NewDebtService(store, log),
		Shift:    NewShiftService(store, log),
		Catalog:  NewCatalogService(store, log),
		Reports:  NewReportService(store),
	}
}

// clock is embedded by services that stamp records. Now may be replaced in tests.
type clock struct {
	Now func() time.Time
}

func (c clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
