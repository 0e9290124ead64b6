package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID
	CreatedAt time.Time
	ExpiresAt *time.Time
	ProductID *uuid.UUID
	UserID    *uuid.UUID
	Code      *string
	Status    CustomerStatusType
}

type Subscription struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	PlanID     string
	Status     string
	StartedAt  time.Time
	CanceledAt *time.Time
}

// Sale одно событие выручки. AmountCents всегда положительна, ProductID фиксируется на момент создания.
type Sale struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	AmountCents int64
	Status      SaleStatusType
	Note        *string
	SoldAt      time.Time
}

type Payment struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	SubscriptionID *uuid.UUID
	SaleID         *uuid.UUID
	AmountCents    int64
	Currency       string
	Status         PaymentStatusType
	PaidAt         time.Time
}

// Earning доля одного участника в одной продаже. Position - порядковый номер участника в разбиении,
// участник с позицией 0 получает остаток.
type Earning struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	MemberID    uuid.UUID
	SaleID      uuid.UUID
	Position    int
	AmountCents int64
}

type TeamMember struct {
	ID     uuid.UUID
	Name   string
	Role   string
	Active bool
}

type Profile struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Name      *string
	AvatarURL *string
}

// SaleDetails продажа и участники её текущего разбиения в порядке разбиения.
type SaleDetails struct {
	Sale      Sale
	MemberIDs []uuid.UUID
}

// PaymentOverview строка сводки платежей для дашборда.
type PaymentOverview struct {
	ID               uuid.UUID
	PaidAt           time.Time
	CustomerID       uuid.UUID
	CustomerName     *string
	CustomerPhone    *string
	ProductShortCode *string
	ProductName      *string
	SaleID           *uuid.UUID
	AmountCents      int64
	Status           PaymentStatusType
}

type MemberEarnings struct {
	MemberID    uuid.UUID
	MemberName  string
	AmountCents int64
}
