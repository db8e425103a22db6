// Package ledger is the durable store behind tabs, order lines, the menu and
// kasbon records. Writes publish the tables they touch so live queries refresh.
package ledger

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/live"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a gorm connection. A Store obtained inside Transaction is bound
// to that transaction and must not be used after fn returns.
type Store struct {
	db  *gorm.DB
	hub *live.Hub

	// pending collects touched tables while inside a transaction.
	pending map[live.Table]struct{}
}

// New returns a store publishing to its own hub.
func New(db *gorm.DB) *Store {
	return &Store{db: db, hub: live.NewHub()}
}

// Hub exposes the change hub, mainly for custom live queries.
func (s *Store) Hub() *live.Hub { return s.hub }

// InTransaction reports whether s is bound to an open transaction.
func (s *Store) InTransaction() bool { return s.pending != nil }

// Transaction runs fn atomically. Calls made on the Store passed to fn share
// one database transaction; nested calls join it. Changes are published once
// after commit and never on rollback. Errors returned by fn come back as is.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.pending != nil {
		return fn(s)
	}
	pending := make(map[live.Table]struct{})
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		fnErr = fn(&Store{db: gtx, hub: s.hub, pending: pending})
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		return classify("commit", err)
	}
	tables := make([]live.Table, 0, len(pending))
	for t := range pending {
		tables = append(tables, t)
	}
	s.hub.Publish(tables...)
	return nil
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// forUpdate locks the rows q selects until the surrounding transaction ends.
// Outside a transaction, and on sqlite where writers are already serialised,
// q is returned unchanged.
func (s *Store) forUpdate(q *gorm.DB) *gorm.DB {
	if s.pending == nil || s.db.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// touch records a change to tables, publishing immediately outside a transaction.
func (s *Store) touch(tables ...live.Table) {
	if s.pending != nil {
		for _, t := range tables {
			s.pending[t] = struct{}{}
		}
		return
	}
	s.hub.Publish(tables...)
}
