package ledger

import (
	"fmt"
	"time"

	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// Period identifies the month a recurring charge belongs to.
// It is a value object - two periods with the same month and year are equal.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod creates a validated billing period
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks that the period is within the supported range
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Month must be between 1 and 12, got %d", p.Month))
	}
	if p.Year < 2000 || p.Year > 2100 {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Year must be between 2000 and 2100, got %d", p.Year))
	}
	return nil
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// Before reports whether p is chronologically before other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String returns the period in YYYY-MM form
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// MonthName returns the English month name used in history views
func (p Period) MonthName() string {
	return time.Month(p.Month).String()
}
