package ledger

import (
	"context"

	"github.com/diewo77/warung-ledger/internal/live"
	"github.com/diewo77/warung-ledger/internal/models"
)

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := s.conn(ctx).Create(c).Error; err != nil {
		return classify("create category", err)
	}
	s.touch(live.Categories)
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.conn(ctx).Order("sort_order").Order("name").Find(&cats).Error; err != nil {
		return nil, classify("list categories", err)
	}
	return cats, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return classify("delete category", res.Error)
	}
	if res.RowsAffected > 0 {
		s.touch(live.Categories)
	}
	return nil
}

func (s *Store) CreatePreset(ctx context.Context, p *models.SuggestionPreset) error {
	if err := s.conn(ctx).Create(p).Error; err != nil {
		return classify("create preset", err)
	}
	s.touch(live.SuggestionPresets)
	return nil
}

func (s *Store) ListPresets(ctx context.Context) ([]models.SuggestionPreset, error) {
	var presets []models.SuggestionPreset
	if err := s.conn(ctx).Order("sort_order").Order("id").Find(&presets).Error; err != nil {
		return nil, classify("list presets", err)
	}
	return presets, nil
}

func (s *Store) DeletePreset(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.SuggestionPreset{}, id)
	if res.Error != nil {
		return classify("delete preset", res.Error)
	}
	if res.RowsAffected > 0 {
		s.touch(live.SuggestionPresets)
	}
	return nil
}
