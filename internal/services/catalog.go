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

// CatalogService maintains menu items, categories and order-entry presets.
type CatalogService struct {
	store *ledger.Store
	log   *slog.Logger
}

func NewCatalogService(store *ledger.Store, log *slog.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

func validateMenuItem(m *models.MenuItem) error {
	v := validation.Violations{}
	validation.Required("name", m.Name, v)
	validation.PositiveInt("price", m.Price, v)
	return check(v)
}

// CreateMenuItem adds a catalog entry. An empty color is stored as NULL.
func (s *CatalogService) CreateMenuItem(ctx context.Context, name string, price int64, category, color string) (*models.MenuItem, error) {
	m := &models.MenuItem{Name: strings.TrimSpace(name), Price: price, Category: strings.TrimSpace(category)}
	if c := strings.TrimSpace(color); c != "" {
		m.Color = &c
	}
	if err := validateMenuItem(m); err != nil {
		return nil, err
	}
	if err := s.store.CreateMenuItem(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("menu item created", "action", "create_menu_item", "menu_item_id", m.ID, "name", m.Name, "price", m.Price)
	return m, nil
}

// UpdateMenuItem edits a catalog entry. Lines already ordered keep their price.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	m.Name = strings.TrimSpace(m.Name)
	if err := validateMenuItem(m); err != nil {
		return err
	}
	if err := s.store.UpdateMenuItem(ctx, m); err != nil {
		return err
	}
	s.log.Info("menu item updated", "action", "update_menu_item", "menu_item_id", m.ID, "price", m.Price)
	return nil
}

// SetPrice changes only the price of a menu item.
func (s *CatalogService) SetPrice(ctx context.Context, id uint, price int64) error {
	return s.store.Transaction(ctx, func(tx *ledger.Store) error {
		m, err := tx.GetMenuItem(ctx, id)
		if err != nil {
			return err
		}
		m.Price = price
		return NewCatalogService(tx, s.log).UpdateMenuItem(ctx, m)
	})
}

// DeleteMenuItem removes a catalog entry. Lines that referenced it stay on
// their tabs as custom lines. Unknown ids are ignored.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id uint) error {
	deleted, err := s.store.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.log.Info("menu item deleted", "action", "delete_menu_item", "menu_item_id", id)
	}
	return nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

// ListMenuItems returns the catalog ordered by category then name.
func (s *CatalogService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

func (s *CatalogService) WatchMenuItems(ctx context.Context) *live.Subscription[[]models.MenuItem] {
	return s.store.WatchMenuItems(ctx)
}

// CreateCategory adds a category. Names are unique.
func (s *CatalogService) CreateCategory(ctx context.Context, name string, sortOrder int) (*models.Category, error) {
	v := validation.Violations{}
	validation.Required("name", name, v)
	if err := check(v); err != nil {
		return nil, err
	}
	c := &models.Category{Name: strings.TrimSpace(name), SortOrder: sortOrder}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("category created", "action", "create_category", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.store.DeleteCategory(ctx, id)
}

// CreatePreset adds a quick-pick label for order entry.
func (s *CatalogService) CreatePreset(ctx context.Context, label string, sortOrder int) (*models.SuggestionPreset, error) {
	v := validation.Violations{}
	validation.Required("label", label, v)
	if err := check(v); err != nil {
		return nil, err
	}
	p := &models.SuggestionPreset{Label: strings.TrimSpace(label), SortOrder: sortOrder}
	if err := s.store.CreatePreset(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("preset created", "action", "create_preset", "preset_id", p.ID, "label", p.Label)
	return p, nil
}

func (s *CatalogService) ListPresets(ctx context.Context) ([]models.SuggestionPreset, error) {
	return s.store.ListPresets(ctx)
}

func (s *CatalogService) DeletePreset(ctx context.Context, id uint) error {
	return s.store.DeletePreset(ctx, id)
}
