package models

import "time"

// OrderLine is one item ordered against a tab.
type OrderLine struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	TabID uint `gorm:"index;not null" json:"tab_id"`
	Tab   *Tab `gorm:"foreignKey:TabID;constraint:OnDelete:CASCADE" json:"-"`

	// Optional catalog reference. Nil means a custom line named by CustomName.
	MenuItemID *uint     `gorm:"index" json:"menu_item_id,omitempty"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:SET NULL" json:"menu_item,omitempty"`
	CustomName string    `gorm:"size:200" json:"custom_name,omitempty"`

	// PriceAtOrder is frozen when the line is created.
	PriceAtOrder int64      `gorm:"not null" json:"price_at_order"`
	Quantity     int        `gorm:"not null;check:quantity > 0" json:"quantity"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	Status       LineStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

// Subtotal is price times quantity.
func (l *OrderLine) Subtotal() int64 {
	return l.PriceAtOrder * int64(l.Quantity)
}

// IsCustom reports whether the line has no catalog reference.
func (l *OrderLine) IsCustom() bool { return l.MenuItemID == nil }

// DisplayName returns the catalog name when preloaded, otherwise the custom name.
func (l *OrderLine) DisplayName() string {
	if l.MenuItem != nil {
		return l.MenuItem.Name
	}
	return l.CustomName
}

// SumSubtotals totals a set of lines.
func SumSubtotals(lines []OrderLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].Subtotal()
	}
	return total
}
