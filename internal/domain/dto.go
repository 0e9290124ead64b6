package domain

type CustomerStatusType string

const (
	CustomerStatusActive   CustomerStatusType = "active"
	CustomerStatusInactive CustomerStatusType = "inactive"
)

type SaleStatusType string

const (
	SaleStatusCompleted SaleStatusType = "completed"
)

type PaymentStatusType string

const (
	PaymentStatusSucceeded PaymentStatusType = "succeeded"
	PaymentStatusPending   PaymentStatusType = "pending"
	PaymentStatusFailed    PaymentStatusType = "failed"
	PaymentStatusRefunded  PaymentStatusType = "refunded"
)

// IsValid проверяет, что статус входит в список известных системе.
func (p PaymentStatusType) IsValid() bool {
	switch p {
	case PaymentStatusSucceeded, PaymentStatusPending, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

const (
	CurrencyBOB       = "BOB"
	DefaultMemberRole = "Member"
)
