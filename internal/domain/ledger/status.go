package ledger

// BillStatus is the settlement state of a tenant billing period.
// The set is closed: anything that is not paid counts as unpaid in summaries.
type BillStatus string

const (
	BillStatusUnpaid BillStatus = "unpaid"
	BillStatusPaid   BillStatus = "paid"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// PaymentStatus is the settlement state of a property lease payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentType categorizes what a property payment covers
type PaymentType string

const (
	PaymentTypeRent        PaymentType = "rent"
	PaymentTypeWater       PaymentType = "water"
	PaymentTypeSewer       PaymentType = "sewer"
	PaymentTypeMaintenance PaymentType = "maintenance"
	PaymentTypeDeposit     PaymentType = "deposit"
	PaymentTypeOther       PaymentType = "other"
)

// IsValid checks if the type is a valid PaymentType
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeWater, PaymentTypeSewer,
		PaymentTypeMaintenance, PaymentTypeDeposit, PaymentTypeOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}
