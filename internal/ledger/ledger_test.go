package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/warung-ledger/internal/config"
	"github.com/diewo77/warung-ledger/internal/db"
	"github.com/diewo77/warung-ledger/internal/logger"
	"github.com/diewo77/warung-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)}
	gdb, err := db.Open(cfg, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(gdb)
}

func addTab(t *testing.T, s *Store, alias string, created time.Time) *models.Tab {
	t.Helper()
	tab := &models.Tab{Alias: alias, CreatedAt: created}
	require.NoError(t, s.CreateTab(context.Background(), tab))
	return tab
}

func addLine(t *testing.T, s *Store, tabID uint, price int64, qty int, status models.LineStatus) *models.OrderLine {
	t.Helper()
	l := &models.OrderLine{TabID: tabID, CustomName: "item", PriceAtOrder: price, Quantity: qty, Status: status, CreatedAt: time.Now()}
	require.NoError(t, s.CreateLine(context.Background(), l))
	return l
}

func TestTabsWithUnpaidTotal(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	older := addTab(t, s, "Meja 1", base)
	newer := addTab(t, s, "Meja 2", base.Add(time.Minute))
	paid := addTab(t, s, "Meja 3", base.Add(2*time.Minute))
	require.NoError(t, s.SetTabStatus(ctx, paid.ID, models.TabPaid))

	addLine(t, s, older.ID, 10000, 2, models.LineUnpaid)
	addLine(t, s, older.ID, 5000, 1, models.LinePaid)
	addLine(t, s, older.ID, 3000, 3, models.LineUnpaid)

	totals, err := s.TabsWithUnpaidTotal(ctx, models.TabActive)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, newer.ID, totals[0].Tab.ID)
	assert.Equal(t, int64(0), totals[0].UnpaidTotal)
	assert.Equal(t, older.ID, totals[1].Tab.ID)
	assert.Equal(t, "Meja 1", totals[1].Tab.Alias)
	assert.Equal(t, models.TabActive, totals[1].Tab.Status)
	assert.Equal(t, int64(29000), totals[1].UnpaidTotal)

	lines, err := s.LinesForTab(ctx, older.ID)
	require.NoError(t, err)
	var unpaid []models.OrderLine
	for _, l := range lines {
		if l.Status == models.LineUnpaid {
			unpaid = append(unpaid, l)
		}
	}
	assert.Equal(t, models.SumSubtotals(unpaid), totals[1].UnpaidTotal)
}

func TestIncomeAndKasbonTotals(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	income, err := s.TotalPaidIncome(ctx)
	require.NoError(t, err)
	assert.Zero(t, income)

	tab := addTab(t, s, "Meja 1", time.Now())
	addLine(t, s, tab.ID, 10000, 2, models.LinePaid)
	addLine(t, s, tab.ID, 7000, 1, models.LineUnpaid)
	require.NoError(t, s.CreateDebt(ctx, &models.DebtRecord{CustomerName: "Budi", TotalAmount: 15000, PaidAmount: 5000, RemainingDebt: 10000, CreatedAt: time.Now()}))
	require.NoError(t, s.CreateDebt(ctx, &models.DebtRecord{CustomerName: "Sari", TotalAmount: 8000, PaidAmount: 8000, Status: models.DebtLunas, CreatedAt: time.Now()}))

	income, err = s.TotalPaidIncome(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), income)

	kasbon, err := s.TotalKasbonIncome(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13000), kasbon)

	active, err := s.TotalActiveKasbon(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), active)

	debts, err := s.ActiveDebts(ctx)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, "Budi", debts[0].CustomerName)
}

func TestDeleteTabCascadesLines(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	tab := addTab(t, s, "Meja 1", time.Now())
	l := addLine(t, s, tab.ID, 1000, 1, models.LineUnpaid)

	deleted, err := s.DeleteTab(ctx, tab.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = s.GetLine(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = s.DeleteTab(ctx, tab.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteTabsByStatus(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	active := addTab(t, s, "Meja 1", time.Now())
	paid := addTab(t, s, "Meja 2", time.Now())
	require.NoError(t, s.SetTabStatus(ctx, paid.ID, models.TabPaid))
	addLine(t, s, active.ID, 1000, 1, models.LineUnpaid)
	addLine(t, s, paid.ID, 1000, 1, models.LinePaid)

	n, err := s.DeleteTabsByStatus(ctx, models.TabPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetTab(ctx, paid.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	lines, err := s.LinesForTab(ctx, active.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMarkLinesPaidCountsOnlyUnpaid(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	tab := addTab(t, s, "Meja 1", time.Now())
	a := addLine(t, s, tab.ID, 1000, 1, models.LineUnpaid)
	b := addLine(t, s, tab.ID, 2000, 1, models.LinePaid)

	n, err := s.MarkLinesPaid(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.MarkLinesPaid(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	err = s.Transaction(ctx, func(tx *Store) error {
		lines, err := tx.UnpaidLinesByIDs(ctx, tab.ID, []uint{a.ID, b.ID})
		assert.Empty(t, lines)
		return err
	})
	require.NoError(t, err)
}

func TestDeleteMenuItemKeepsLines(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	item := &models.MenuItem{Name: "Es Teh", Price: 4000, Category: "Minuman"}
	require.NoError(t, s.CreateMenuItem(ctx, item))
	tab := addTab(t, s, "Meja 1", time.Now())
	l := &models.OrderLine{TabID: tab.ID, MenuItemID: &item.ID, PriceAtOrder: 4000, Quantity: 2, CreatedAt: time.Now()}
	require.NoError(t, s.CreateLine(ctx, l))

	deleted, err := s.DeleteMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := s.GetLine(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MenuItemID)
	assert.Equal(t, "Es Teh", got.CustomName)
	assert.Equal(t, int64(4000), got.PriceAtOrder)

	deleted, err = s.DeleteMenuItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConstraintError(t *testing.T) {
	s := newStore(t)
	tab := addTab(t, s, "Meja 1", time.Now())
	err := s.CreateLine(context.Background(), &models.OrderLine{TabID: tab.ID, CustomName: "x", PriceAtOrder: 1, Quantity: 0, CreatedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, IsConstraint(err), "got %v", err)

	err = s.CreateLine(context.Background(), &models.OrderLine{TabID: 4242, CustomName: "x", PriceAtOrder: 1, Quantity: 1, CreatedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, IsConstraint(err), "got %v", err)
}

func TestNotFound(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.GetTab(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.UpdateTab(ctx, &models.Tab{ID: 99, Alias: "x", CreatedAt: time.Now()}), ErrNotFound)
	_, err = s.GetDebt(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionRollbackPublishesNothing(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := s.WatchTabsWithUnpaidTotal(ctx, models.TabActive)
	defer sub.Cancel()
	first := <-sub.C
	assert.Empty(t, first)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx *Store) error {
		assert.True(t, tx.InTransaction())
		require.NoError(t, tx.CreateTab(ctx, &models.Tab{Alias: "ghost", CreatedAt: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	select {
	case snap := <-sub.C:
		t.Fatalf("unexpected snapshot after rollback: %v", snap)
	case <-time.After(100 * time.Millisecond):
	}

	tabs, err := s.TabsByStatus(ctx, models.TabActive)
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestTransactionCommitPublishesOnce(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := s.WatchTabsWithUnpaidTotal(ctx, models.TabActive)
	defer sub.Cancel()
	<-sub.C

	err := s.Transaction(ctx, func(tx *Store) error {
		tab := &models.Tab{Alias: "Meja 1", CreatedAt: time.Now()}
		if err := tx.CreateTab(ctx, tab); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.Transaction(ctx, func(inner *Store) error {
			return inner.CreateLine(ctx, &models.OrderLine{TabID: tab.ID, CustomName: "Kopi", PriceAtOrder: 5000, Quantity: 2, CreatedAt: time.Now()})
		})
	})
	require.NoError(t, err)

	select {
	case snap := <-sub.C:
		require.Len(t, snap, 1)
		assert.Equal(t, int64(10000), snap[0].UnpaidTotal)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after commit")
	}
}

func TestWatchLinesForTabFollowsWrites(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tab := addTab(t, s, "Meja 1", time.Now())

	sub := s.WatchLinesForTab(ctx, tab.ID)
	assert.Empty(t, <-sub.C)

	addLine(t, s, tab.ID, 2000, 1, models.LineUnpaid)
	select {
	case lines := <-sub.C:
		assert.Len(t, lines, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after insert")
	}

	sub.Cancel()
	_, ok := <-sub.C
	assert.False(t, ok)
	assert.Equal(t, 0, s.Hub().Watchers())
	assert.NoError(t, sub.Err())
}
