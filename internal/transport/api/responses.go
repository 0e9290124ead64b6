package api

import (
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/money"
	"github.com/google/uuid"
)

// Суммы передаются целыми сентаво в amount_cents, amount_display только для отображения.

type SaleResponse struct {
	ID            uuid.UUID             `json:"id"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	ProductID     uuid.UUID             `json:"product_id"`
	AmountCents   int64                 `json:"amount_cents"`
	AmountDisplay string                `json:"amount_display"`
	Status        domain.SaleStatusType `json:"status"`
	Note          *string               `json:"note,omitempty"`
	SoldAt        time.Time             `json:"sold_at"`
	MemberIDs     []uuid.UUID           `json:"member_ids"`
}

func newSaleResponse(d *domain.SaleDetails) SaleResponse {
	memberIDs := d.MemberIDs
	if memberIDs == nil {
		memberIDs = []uuid.UUID{}
	}
	return SaleResponse{
		ID:            d.Sale.ID,
		CustomerID:    d.Sale.CustomerID,
		ProductID:     d.Sale.ProductID,
		AmountCents:   d.Sale.AmountCents,
		AmountDisplay: money.FormatBs(d.Sale.AmountCents),
		Status:        d.Sale.Status,
		Note:          d.Sale.Note,
		SoldAt:        d.Sale.SoldAt,
		MemberIDs:     memberIDs,
	}
}

type PaymentResponse struct {
	ID             uuid.UUID                `json:"id"`
	CustomerID     uuid.UUID                `json:"customer_id"`
	SubscriptionID *uuid.UUID               `json:"subscription_id,omitempty"`
	SaleID         *uuid.UUID               `json:"sale_id,omitempty"`
	AmountCents    int64                    `json:"amount_cents"`
	AmountDisplay  string                   `json:"amount_display"`
	Currency       string                   `json:"currency"`
	Status         domain.PaymentStatusType `json:"status"`
	PaidAt         time.Time                `json:"paid_at"`
}

func newPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		SubscriptionID: p.SubscriptionID,
		SaleID:         p.SaleID,
		AmountCents:    p.AmountCents,
		AmountDisplay:  money.FormatBs(p.AmountCents),
		Currency:       p.Currency,
		Status:         p.Status,
		PaidAt:         p.PaidAt,
	}
}

type PaymentOverviewResponse struct {
	ID               uuid.UUID                `json:"id"`
	PaidAt           time.Time                `json:"paid_at"`
	CustomerID       uuid.UUID                `json:"customer_id"`
	CustomerName     *string                  `json:"customer_name"`
	CustomerPhone    *string                  `json:"customer_phone"`
	ProductShortCode *string                  `json:"product_short_code"`
	ProductName      *string                  `json:"product_name"`
	SaleID           *uuid.UUID               `json:"sale_id"`
	AmountCents      int64                    `json:"amount_cents"`
	AmountDisplay    string                   `json:"amount_display"`
	Status           domain.PaymentStatusType `json:"status"`
}

type TeamMemberResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type MemberEarningsResponse struct {
	MemberID      uuid.UUID `json:"member_id"`
	MemberName    string    `json:"member_name"`
	AmountCents   int64     `json:"amount_cents"`
	AmountDisplay string    `json:"amount_display"`
}

type SessionResponse struct {
	UserID      uuid.UUID           `json:"user_id"`
	Email       string              `json:"email"`
	Role        domain.Role         `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
	ExpiresAt   *time.Time          `json:"expires_at,omitempty"`
}
