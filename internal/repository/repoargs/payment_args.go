package repoargs

import (
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
)

type PaymentCreate struct {
	CustomerID     uuid.UUID
	SubscriptionID *uuid.UUID
	SaleID         *uuid.UUID
	AmountCents    int64
	Currency       string
	Status         domain.PaymentStatusType
	PaidAt         time.Time
}

// PaymentUpdate частичное обновление платежа. nil поля не меняются.
type PaymentUpdate struct {
	AmountCents *int64
	Status      *domain.PaymentStatusType
}

// IsEmpty сообщает, что обновлять нечего.
func (p PaymentUpdate) IsEmpty() bool {
	return p.AmountCents == nil && p.Status == nil
}
