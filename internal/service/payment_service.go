package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/google/uuid"
)

type PaymentService struct {
	uow         uow.UOW
	paymentRepo PaymentRepository
	now         func() time.Time
	retryDelay  time.Duration
}

func NewPaymentService(u uow.UOW) (*PaymentService, error) {
	paymentRepo, err := uow.GetRepositoryAs[PaymentRepository](u, uow.RepositoryName(repoargs.PaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PaymentService{
		uow:         u,
		paymentRepo: paymentRepo,
		now:         time.Now,
		retryDelay:  defaultTransientRetryDelay,
	}, nil
}

// SetRetryDelay устанавливает задержку перед повтором после временной ошибки хранилища.
func (p *PaymentService) SetRetryDelay(d time.Duration) *PaymentService {
	p.retryDelay = d
	return p
}

// SetClock подменяет источник времени.
func (p *PaymentService) SetClock(now func() time.Time) *PaymentService {
	p.now = now
	return p
}

type CreatePaymentArgs struct {
	CustomerID     uuid.UUID
	SubscriptionID *uuid.UUID
	AmountCents    int64
}

// CreatePayment создаёт самостоятельный платёж без продажи и разбиения. Если указана подписка,
// она должна принадлежать тому же клиенту, иначе возвращается domain.PreconditionError.
func (p *PaymentService) CreatePayment(ctx context.Context, args CreatePaymentArgs) (*domain.Payment, error) {
	if args.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "must be a positive integer")
	}

	var payment *domain.Payment
	create := func(c context.Context, repo PaymentRepository) error {
		var createErr error
		payment, createErr = repo.Create(c, repoargs.PaymentCreate{
			CustomerID:     args.CustomerID,
			SubscriptionID: args.SubscriptionID,
			AmountCents:    args.AmountCents,
			Currency:       domain.CurrencyBOB,
			Status:         domain.PaymentStatusSucceeded,
			PaidAt:         p.now(),
		})
		return createErr //nolint:wrapcheck
	}

	err := retryTransient(ctx, p.retryDelay, func() error {
		if args.SubscriptionID == nil {
			return create(ctx, p.paymentRepo)
		}
		return p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			customerRepo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			sub, findErr := customerRepo.FindSubscription(c, *args.SubscriptionID)
			if findErr != nil {
				return findErr //nolint:wrapcheck
			}
			if sub.CustomerID != args.CustomerID {
				return domain.NewPreconditionError("subscription " + sub.ID.String() +
					" belongs to another customer")
			}

			paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			return create(c, paymentRepo)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

type PrepayMonthsArgs struct {
	SubscriptionID  uuid.UUID
	Months          int
	MonthPriceCents int64
}

// PrepayMonths создаёт платёж за несколько месяцев подписки вперёд на сумму Months * MonthPriceCents.
func (p *PaymentService) PrepayMonths(ctx context.Context, args PrepayMonthsArgs) (*domain.Payment, error) {
	if args.Months < 1 {
		return nil, domain.NewValidationError("months", "must be at least 1")
	}
	if args.MonthPriceCents <= 0 {
		return nil, domain.NewValidationError("month_price_cents", "must be a positive integer")
	}
	if args.MonthPriceCents > math.MaxInt64/int64(args.Months) {
		return nil, domain.NewValidationError("month_price_cents", "total amount overflows")
	}

	var payment *domain.Payment
	err := retryTransient(ctx, p.retryDelay, func() error {
		return p.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			customerRepo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			sub, findErr := customerRepo.FindSubscription(c, args.SubscriptionID)
			if findErr != nil {
				return findErr //nolint:wrapcheck
			}

			paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			var createErr error
			payment, createErr = paymentRepo.Create(c, repoargs.PaymentCreate{
				CustomerID:     sub.CustomerID,
				SubscriptionID: &sub.ID,
				AmountCents:    args.MonthPriceCents * int64(args.Months),
				Currency:       domain.CurrencyBOB,
				Status:         domain.PaymentStatusSucceeded,
				PaidAt:         p.now(),
			})
			return createErr //nolint:wrapcheck
		})
	})
	if err != nil {
		return nil, fmt.Errorf("prepay months: %w", err)
	}
	return payment, nil
}

type UpdatePaymentArgs struct {
	AmountCents *int64
	Status      *domain.PaymentStatusType
}

// UpdatePaymentRecord меняет сумму и/или статус платежа. Разбиение связанной продажи не трогает,
// для согласованного изменения используется SaleService.EditSale.
func (p *PaymentService) UpdatePaymentRecord(
	ctx context.Context,
	paymentID uuid.UUID,
	args UpdatePaymentArgs,
) (*domain.Payment, error) {
	upd := repoargs.PaymentUpdate(args)
	if upd.IsEmpty() {
		return nil, domain.NewValidationError("payment", "nothing to update")
	}
	if args.AmountCents != nil && *args.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "must be a positive integer")
	}
	if args.Status != nil && !args.Status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown payment status")
	}

	var payment *domain.Payment
	err := retryTransient(ctx, p.retryDelay, func() error {
		var updErr error
		payment, updErr = p.paymentRepo.Update(ctx, paymentID, upd)
		return updErr //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return payment, nil
}

// ListPaymentsSince возвращает сводку платежей, начиная с since, новые первыми.
func (p *PaymentService) ListPaymentsSince(ctx context.Context, since time.Time) ([]domain.PaymentOverview, error) {
	var rows []domain.PaymentOverview
	err := retryTransient(ctx, p.retryDelay, func() error {
		var listErr error
		rows, listErr = p.paymentRepo.OverviewSince(ctx, since)
		return listErr //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("list payments since: %w", err)
	}
	return rows, nil
}
