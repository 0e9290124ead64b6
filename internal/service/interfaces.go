package service

import (
	"context"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/lock"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
}

type SaleRepository interface {
	Create(ctx context.Context, sale repoargs.SaleCreate) (*domain.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	Update(ctx context.Context, id uuid.UUID, upd repoargs.SaleUpdate) (*domain.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EarningRepository interface {
	BatchCreate(ctx context.Context, earnings []repoargs.EarningCreate, fn repoargs.BatchExecQueryRow)
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) (int64, error)
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]domain.Earning, error)
	SumByMemberSince(ctx context.Context, since time.Time) ([]repoargs.MemberEarningsSum, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment repoargs.PaymentCreate) (*domain.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	Update(ctx context.Context, id uuid.UUID, upd repoargs.PaymentUpdate) (*domain.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	OverviewSince(ctx context.Context, since time.Time) ([]domain.PaymentOverview, error)
}

type TeamMemberRepository interface {
	ListActive(ctx context.Context) ([]domain.TeamMember, error)
	ListAll(ctx context.Context) ([]domain.TeamMember, error)
	BatchCreate(ctx context.Context, members []repoargs.TeamMemberCreate, fn repoargs.BatchExecQueryRow)
}

type ProfileRepository interface {
	ListOldestFirst(ctx context.Context) ([]domain.Profile, error)
}

// Locker блокировка, сериализующая изменения одной продажи.
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}
