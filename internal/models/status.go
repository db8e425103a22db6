package models

import (
	"database/sql/driver"
	"fmt"
)

// TabStatus is the lifecycle state of a tab. The zero value is TabActive.
type TabStatus uint8

const (
	TabActive TabStatus = iota
	TabPaid
)

var tabStatusLabels = [...]string{TabActive: "Active", TabPaid: "Paid"}

func (s TabStatus) String() string {
	if int(s) < len(tabStatusLabels) {
		return tabStatusLabels[s]
	}
	return fmt.Sprintf("TabStatus(%d)", s)
}

// Value stores the status as its label.
func (s TabStatus) Value() (driver.Value, error) {
	if int(s) >= len(tabStatusLabels) {
		return nil, fmt.Errorf("invalid tab status %d", s)
	}
	return tabStatusLabels[s], nil
}

// Scan parses a stored label.
func (s *TabStatus) Scan(src any) error {
	i, err := scanLabel(src, tabStatusLabels[:])
	if err != nil {
		return fmt.Errorf("tab status: %w", err)
	}
	*s = TabStatus(i)
	return nil
}

// LineStatus is the payment state of an order line. The zero value is LineUnpaid.
type LineStatus uint8

const (
	LineUnpaid LineStatus = iota
	LinePaid
)

var lineStatusLabels = [...]string{LineUnpaid: "Unpaid", LinePaid: "Paid"}

func (s LineStatus) String() string {
	if int(s) < len(lineStatusLabels) {
		return lineStatusLabels[s]
	}
	return fmt.Sprintf("LineStatus(%d)", s)
}

func (s LineStatus) Value() (driver.Value, error) {
	if int(s) >= len(lineStatusLabels) {
		return nil, fmt.Errorf("invalid line status %d", s)
	}
	return lineStatusLabels[s], nil
}

func (s *LineStatus) Scan(src any) error {
	i, err := scanLabel(src, lineStatusLabels[:])
	if err != nil {
		return fmt.Errorf("line status: %w", err)
	}
	*s = LineStatus(i)
	return nil
}

// DebtStatus tracks how much of a kasbon has been repaid. The zero value is DebtUnpaid.
type DebtStatus uint8

const (
	DebtUnpaid DebtStatus = iota
	DebtPartiallyPaid
	// DebtLunas means the record is fully settled.
	DebtLunas
)

var debtStatusLabels = [...]string{DebtUnpaid: "Unpaid", DebtPartiallyPaid: "PartiallyPaid", DebtLunas: "Lunas"}

func (s DebtStatus) String() string {
	if int(s) < len(debtStatusLabels) {
		return debtStatusLabels[s]
	}
	return fmt.Sprintf("DebtStatus(%d)", s)
}

func (s DebtStatus) Value() (driver.Value, error) {
	if int(s) >= len(debtStatusLabels) {
		return nil, fmt.Errorf("invalid debt status %d", s)
	}
	return debtStatusLabels[s], nil
}

func (s *DebtStatus) Scan(src any) error {
	i, err := scanLabel(src, debtStatusLabels[:])
	if err != nil {
		return fmt.Errorf("debt status: %w", err)
	}
	*s = DebtStatus(i)
	return nil
}

func scanLabel(src any, labels []string) (int, error) {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	case nil:
		return 0, fmt.Errorf("unexpected NULL")
	default:
		return 0, fmt.Errorf("unsupported type %T", src)
	}
	for i, l := range labels {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q", label)
}
