package models

import "time"

// MenuItem is a catalog entry. Price is in the smallest currency unit.
type MenuItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:120;not null" json:"name"`
	Price    int64  `gorm:"not null" json:"price"`
	Category string `gorm:"size:80;index" json:"category"`
	// Color is an optional display color such as "#F59E0B".
	Color *string `gorm:"size:16" json:"color,omitempty"`
}

// Tab is an open running bill for a customer or table.
type Tab struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Alias     string    `gorm:"size:120;not null" json:"alias"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	Status    TabStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

// IsOpen reports whether items may still be ordered against the tab.
func (t *Tab) IsOpen() bool { return t.Status == TabActive }

// TabTotal pairs a tab with the sum of its unpaid lines.
type TabTotal struct {
	Tab         Tab   `json:"tab"`
	UnpaidTotal int64 `json:"unpaid_total"`
}

// Category is a menu grouping label.
type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:80;not null;uniqueIndex" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

// SuggestionPreset is a quick-pick label offered during order entry.
type SuggestionPreset struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Label     string `gorm:"size:120;not null" json:"label"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}
