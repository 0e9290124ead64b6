package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/service"
	"github.com/fsdevblog/lynx-sales/internal/session"
)

type SaleServicer interface {
	RegisterSaleWithSplit(ctx context.Context, args service.RegisterSaleArgs) (*service.RegisteredSale, error)
	FetchSaleDetails(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetails, error)
	UpdateSaleSplit(ctx context.Context, args service.UpdateSaleSplitArgs) error
	EditSale(ctx context.Context, args service.EditSaleArgs) (*domain.Payment, error)
	DeletePaymentCascade(ctx context.Context, paymentID uuid.UUID, saleID *uuid.UUID) error
}

type PaymentServicer interface {
	CreatePayment(ctx context.Context, args service.CreatePaymentArgs) (*domain.Payment, error)
	PrepayMonths(ctx context.Context, args service.PrepayMonthsArgs) (*domain.Payment, error)
	UpdatePaymentRecord(
		ctx context.Context,
		paymentID uuid.UUID,
		args service.UpdatePaymentArgs,
	) (*domain.Payment, error)
	ListPaymentsSince(ctx context.Context, since time.Time) ([]domain.PaymentOverview, error)
}

type TeamServicer interface {
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	EarningsThisMonth(ctx context.Context) ([]domain.MemberEarnings, error)
}

// SessionResolver интерфейс исключительно для моков, см. middlewares.SessionResolver.
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) *session.Session
}
