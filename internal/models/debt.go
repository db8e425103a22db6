package models

import "time"

// DebtRecord is a kasbon: the unpaid part of a checkout owed by a customer.
type DebtRecord struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CustomerName  string     `gorm:"size:120;not null" json:"customer_name"`
	CustomerPhone *string    `gorm:"size:40" json:"customer_phone,omitempty"`
	TotalAmount   int64      `gorm:"not null" json:"total_amount"`
	PaidAmount    int64      `gorm:"not null;default:0" json:"paid_amount"`
	RemainingDebt int64      `gorm:"not null;check:remaining_debt >= 0" json:"remaining_debt"`
	Status        DebtStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"created_at"`
}

// IsSettled reports whether nothing is left to collect.
func (d *DebtRecord) IsSettled() bool { return d.Status == DebtLunas }

// ApplyInstallment records a repayment and returns the part of amount that exceeded
// the remaining balance. Paid plus remaining always equals the total afterwards.
func (d *DebtRecord) ApplyInstallment(amount int64) (change int64) {
	applied := amount
	if applied > d.RemainingDebt {
		applied = d.RemainingDebt
	}
	d.PaidAmount += applied
	d.RemainingDebt -= applied
	if d.RemainingDebt <= 0 {
		d.RemainingDebt = 0
		d.Status = DebtLunas
	} else {
		d.Status = DebtPartiallyPaid
	}
	return amount - applied
}
