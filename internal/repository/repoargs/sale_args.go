package repoargs

import (
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
)

type SaleCreate struct {
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	AmountCents int64
	Status      domain.SaleStatusType
	Note        *string
	SoldAt      time.Time
}

// SaleUpdate изменяемые поля продажи. Продукт и клиент продажи не меняются.
type SaleUpdate struct {
	AmountCents int64
	Note        *string
}

type EarningCreate struct {
	MemberID    uuid.UUID
	SaleID      uuid.UUID
	Position    int
	AmountCents int64
}

// MemberEarningsSum сумма начислений участника за период.
type MemberEarningsSum struct {
	MemberID    uuid.UUID
	AmountCents int64
}
