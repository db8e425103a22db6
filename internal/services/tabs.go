package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/diewo77/warung-ledger/internal/validation"
)

// TabService manages the lifecycle of tabs.
type TabService struct {
	clock
	store *ledger.Store
	log   *slog.Logger
}

func NewTabService(store *ledger.Store, log *slog.Logger) *TabService {
	return &TabService{store: store, log: log}
}

// CreateTab opens a new active tab and returns its id.
func (s *TabService) CreateTab(ctx context.Context, alias string) (uint, error) {
	v := validation.Violations{}
	validation.Required("alias", alias, v)
	if err := check(v); err != nil {
		return 0, err
	}
	tab := &models.Tab{Alias: strings.TrimSpace(alias), CreatedAt: s.now(), Status: models.TabActive}
	if err := s.store.CreateTab(ctx, tab); err != nil {
		return 0, err
	}
	s.log.Info("tab opened", "action", "create_tab", "tab_id", tab.ID, "alias", tab.Alias)
	return tab.ID, nil
}

func (s *TabService) Get(ctx context.Context, id uint) (*models.Tab, error) {
	return s.store.GetTab(ctx, id)
}

// RenameOrUpdate replaces every field of an existing tab. A paid tab cannot be
// made active again.
func (s *TabService) RenameOrUpdate(ctx context.Context, tab models.Tab) error {
	v := validation.Violations{}
	validation.Required("alias", tab.Alias, v)
	if err := check(v); err != nil {
		return err
	}
	tab.Alias = strings.TrimSpace(tab.Alias)
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		cur, err := tx.GetTab(ctx, tab.ID)
		if err != nil {
			return err
		}
		if !cur.IsOpen() && tab.IsOpen() {
			return ErrTabClosed
		}
		if tab.CreatedAt.IsZero() {
			tab.CreatedAt = cur.CreatedAt
		}
		return tx.UpdateTab(ctx, &tab)
	})
	if err != nil {
		return err
	}
	s.log.Info("tab updated", "action", "update_tab", "tab_id", tab.ID, "alias", tab.Alias, "status", tab.Status.String())
	return nil
}

// Rename changes only the alias.
func (s *TabService) Rename(ctx context.Context, id uint, alias string) error {
	tab, err := s.store.GetTab(ctx, id)
	if err != nil {
		return err
	}
	tab.Alias = alias
	return s.RenameOrUpdate(ctx, *tab)
}

// DeleteTab removes a tab and its lines. Unknown ids are ignored.
func (s *TabService) DeleteTab(ctx context.Context, id uint) error {
	deleted, err := s.store.DeleteTab(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.log.Info("tab deleted", "action", "delete_tab", "tab_id", id)
	}
	return nil
}

// MergeTabs moves every line of source onto target and removes source. Lines
// keep their id, price, quantity and status. A missing source or target leaves
// everything unchanged.
func (s *TabService) MergeTabs(ctx context.Context, sourceID, targetID uint) error {
	v := validation.Violations{}
	validation.Distinct("target_id", sourceID, targetID, v)
	if err := check(v); err != nil {
		return err
	}
	var moved int64
	err := s.store.Transaction(ctx, func(tx *ledger.Store) error {
		if _, err := tx.GetTab(ctx, sourceID); err != nil {
			return err
		}
		target, err := tx.GetTab(ctx, targetID)
		if err != nil {
			return err
		}
		if !target.IsOpen() {
			unpaid, err := tx.CountUnpaidLines(ctx, sourceID)
			if err != nil {
				return err
			}
			if unpaid > 0 {
				return ErrTabClosed
			}
		}
		if moved, err = tx.ReassignLines(ctx, sourceID, targetID); err != nil {
			return err
		}
		_, err = tx.DeleteTab(ctx, sourceID)
		return err
	})
	if isNotFound(err) {
		s.log.Debug("merge skipped", "action", "merge_tabs", "source_id", sourceID, "target_id", targetID)
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("tabs merged", "action", "merge_tabs", "source_id", sourceID, "target_id", targetID, "lines", moved)
	return nil
}

// MarkPaid closes a tab. Marking a paid tab again is a no-op.
func (s *TabService) MarkPaid(ctx context.Context, id uint) error {
	tab, err := s.store.GetTab(ctx, id)
	if err != nil {
		return err
	}
	if !tab.IsOpen() {
		s.log.Debug("tab already paid", "action", "mark_paid", "tab_id", id)
		return nil
	}
	if err := s.store.SetTabStatus(ctx, id, models.TabPaid); err != nil {
		return err
	}
	s.log.Info("tab paid", "action", "mark_paid", "tab_id", id)
	return nil
}

// DeletePaidGroups removes every paid tab with its lines. Debts are kept.
func (s *TabService) DeletePaidGroups(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteTabsByStatus(ctx, models.TabPaid)
	if err != nil {
		return 0, err
	}
	s.log.Info("paid tabs removed", "action", "delete_paid_groups", "count", n)
	return n, nil
}

// ListActiveWithTotals returns the open tabs with their unpaid totals, newest first.
func (s *TabService) ListActiveWithTotals(ctx context.Context) ([]models.TabTotal, error) {
	return s.store.TabsWithUnpaidTotal(ctx, models.TabActive)
}

func (s *TabService) WatchActiveWithTotals(ctx context.Context) *live.Subscription[[]models.TabTotal] {
	return s.store.WatchTabsWithUnpaidTotal(ctx, models.TabActive)
}
