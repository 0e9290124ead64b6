package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/earnings"
	"github.com/fsdevblog/lynx-sales/internal/lock"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

type SaleService struct {
	uow         uow.UOW
	saleRepo    SaleRepository
	earningRepo EarningRepository
	locker      Locker
	l           *logrus.Entry
	now         func() time.Time
	retryDelay  time.Duration
}

func NewSaleService(u uow.UOW, locker Locker, l *logrus.Logger) (*SaleService, error) {
	saleRepo, err := uow.GetRepositoryAs[SaleRepository](u, uow.RepositoryName(repoargs.SaleRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	earningRepo, err := uow.GetRepositoryAs[EarningRepository](u, uow.RepositoryName(repoargs.EarningRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &SaleService{
		uow:         u,
		saleRepo:    saleRepo,
		earningRepo: earningRepo,
		locker:      locker,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "sale",
		}),
		now:        time.Now,
		retryDelay: defaultTransientRetryDelay,
	}, nil
}

// SetRetryDelay устанавливает задержку перед повтором после временной ошибки хранилища.
func (s *SaleService) SetRetryDelay(d time.Duration) *SaleService {
	s.retryDelay = d
	return s
}

// SetClock подменяет источник времени.
func (s *SaleService) SetClock(now func() time.Time) *SaleService {
	s.now = now
	return s
}

// PaymentLink платёж, создаваемый вместе с продажей.
type PaymentLink struct {
	SubscriptionID *uuid.UUID
}

type RegisterSaleArgs struct {
	CustomerID  uuid.UUID
	AmountCents int64
	Note        *string
	MemberIDs   []uuid.UUID
	Payment     *PaymentLink
}

type RegisteredSale struct {
	SaleID    uuid.UUID
	PaymentID *uuid.UUID
}

// RegisterSaleWithSplit регистрирует продажу и делит её сумму между участниками.
//
// Алгоритм работы:
//  1. Проверяет сумму и список участников до обращения к хранилищу.
//  2. В одной транзакции находит клиента и его продукт, создаёт продажу со статусом completed,
//     вставляет начисления батч запросом и, если передан args.Payment, создаёт связанный платёж.
//
// Клиент без продукта даёт *domain.PreconditionError, неизвестный участник *domain.ValidationError.
func (s *SaleService) RegisterSaleWithSplit(ctx context.Context, args RegisterSaleArgs) (*RegisteredSale, error) {
	shares, err := earnings.Split(args.AmountCents, args.MemberIDs)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var result RegisteredSale
	txErr := retryTransient(ctx, s.retryDelay, func() error {
		return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			customerRepo, repoErr := uow.GetAs[CustomerRepository](tx, uow.RepositoryName(repoargs.CustomerRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			customer, findErr := customerRepo.FindByID(c, args.CustomerID)
			if findErr != nil {
				return findErr //nolint:wrapcheck
			}
			if customer.ProductID == nil {
				return domain.NewPreconditionError("customer has no product assigned")
			}

			saleRepo, repoErr := uow.GetAs[SaleRepository](tx, uow.RepositoryName(repoargs.SaleRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			now := s.now()
			sale, createErr := saleRepo.Create(c, repoargs.SaleCreate{
				CustomerID:  customer.ID,
				ProductID:   *customer.ProductID,
				AmountCents: args.AmountCents,
				Status:      domain.SaleStatusCompleted,
				Note:        args.Note,
				SoldAt:      now,
			})
			if createErr != nil {
				return createErr //nolint:wrapcheck
			}

			if splitErr := insertSplit(c, tx, sale.ID, shares); splitErr != nil {
				return splitErr
			}

			result = RegisteredSale{SaleID: sale.ID}
			if args.Payment == nil {
				return nil
			}

			paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
			if repoErr != nil {
				return repoErr //nolint:wrapcheck
			}
			payment, payErr := paymentRepo.Create(c, repoargs.PaymentCreate{
				CustomerID:     customer.ID,
				SubscriptionID: args.Payment.SubscriptionID,
				SaleID:         &sale.ID,
				AmountCents:    args.AmountCents,
				Currency:       domain.CurrencyBOB,
				Status:         domain.PaymentStatusSucceeded,
				PaidAt:         now,
			})
			if payErr != nil {
				return payErr //nolint:wrapcheck
			}
			result.PaymentID = &payment.ID
			return nil
		})
	})
	if txErr != nil {
		return nil, fmt.Errorf("register sale: %w", txErr)
	}
	return &result, nil
}

// FetchSaleDetails возвращает продажу и участников её разбиения в порядке разбиения.
func (s *SaleService) FetchSaleDetails(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetails, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("fetch sale details: %w", err)
	}
	rows, err := s.earningRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("fetch sale details: %w", err)
	}

	memberIDs := make([]uuid.UUID, len(rows))
	for i, e := range rows {
		memberIDs[i] = e.MemberID
	}
	return &domain.SaleDetails{Sale: *sale, MemberIDs: memberIDs}, nil
}

type UpdateSaleSplitArgs struct {
	SaleID      uuid.UUID
	AmountCents int64
	Note        *string
	MemberIDs   []uuid.UUID
}

// UpdateSaleSplit заменяет разбиение продажи целиком и обновляет её сумму и заметку.
// Старые начисления удаляются, новые вставляются в той же транзакции, поэтому после успешного вызова
// сумма начислений равна новой сумме продажи.
func (s *SaleService) UpdateSaleSplit(ctx context.Context, args UpdateSaleSplitArgs) error {
	shares, err := earnings.Split(args.AmountCents, args.MemberIDs)
	if err != nil {
		return err //nolint:wrapcheck
	}

	err = s.withSaleLock(ctx, args.SaleID, func() error {
		return retryTransient(ctx, s.retryDelay, func() error {
			return s.uow.Do(uow.WithIsoLevel(ctx, pgx.RepeatableRead), func(c context.Context, tx uow.TX) error {
				return replaceSplit(c, tx, args.SaleID, args.AmountCents, args.Note, shares)
			})
		})
	})
	if err != nil {
		return fmt.Errorf("update sale split: %w", err)
	}
	return nil
}

type EditSaleArgs struct {
	PaymentID uuid.UUID
	// SaleID продажа, связанная с платежом. Если задана, разбиение заменяется вместе с платежом.
	SaleID      *uuid.UUID
	AmountCents int64
	Status      *domain.PaymentStatusType
	Note        *string
	MemberIDs   []uuid.UUID
}

// EditSale изменяет платёж и, если он связан с продажей, заменяет её разбиение. Оба изменения
// выполняются в одной транзакции, суммы платежа и продажи не расходятся.
func (s *SaleService) EditSale(ctx context.Context, args EditSaleArgs) (*domain.Payment, error) {
	if args.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "must be a positive integer")
	}
	if args.Status != nil && !args.Status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown payment status")
	}
	var shares []earnings.Share
	if args.SaleID != nil {
		var err error
		if shares, err = earnings.Split(args.AmountCents, args.MemberIDs); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	var payment *domain.Payment
	edit := func() error {
		return retryTransient(ctx, s.retryDelay, func() error {
			return s.uow.Do(uow.WithIsoLevel(ctx, pgx.RepeatableRead), func(c context.Context, tx uow.TX) error {
				paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
				if repoErr != nil {
					return repoErr //nolint:wrapcheck
				}
				current, findErr := paymentRepo.FindByID(c, args.PaymentID)
				if findErr != nil {
					return findErr //nolint:wrapcheck
				}
				if linkErr := checkSaleLink(current, args.SaleID); linkErr != nil {
					return linkErr
				}

				amount := args.AmountCents
				updated, updErr := paymentRepo.Update(c, args.PaymentID, repoargs.PaymentUpdate{
					AmountCents: &amount,
					Status:      args.Status,
				})
				if updErr != nil {
					return updErr //nolint:wrapcheck
				}
				payment = updated

				if args.SaleID == nil {
					return nil
				}
				return replaceSplit(c, tx, *args.SaleID, args.AmountCents, args.Note, shares)
			})
		})
	}

	var err error
	if args.SaleID != nil {
		err = s.withSaleLock(ctx, *args.SaleID, edit)
	} else {
		err = edit()
	}
	if err != nil {
		return nil, fmt.Errorf("edit sale: %w", err)
	}
	return payment, nil
}

// DeletePaymentCascade удаляет платёж вместе со связанной продажей. Порядок удаления: начисления, продажа, платёж.
// Платёж, связанный с продажей, удаляется только с переданным saleID, чтобы продажа была заблокирована.
func (s *SaleService) DeletePaymentCascade(ctx context.Context, paymentID uuid.UUID, saleID *uuid.UUID) error {
	del := func() error {
		return retryTransient(ctx, s.retryDelay, func() error {
			return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
				paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
				if repoErr != nil {
					return repoErr //nolint:wrapcheck
				}
				payment, findErr := paymentRepo.FindByID(c, paymentID)
				if findErr != nil {
					return findErr //nolint:wrapcheck
				}
				if linkErr := checkSaleLink(payment, saleID); linkErr != nil {
					return linkErr
				}
				if payment.SaleID != nil {
					if delErr := deleteSale(c, tx, *payment.SaleID); delErr != nil {
						return delErr
					}
				}
				return paymentRepo.Delete(c, paymentID) //nolint:wrapcheck
			})
		})
	}

	var err error
	if saleID != nil {
		err = s.withSaleLock(ctx, *saleID, del)
	} else {
		err = del()
	}
	if err != nil {
		return fmt.Errorf("delete payment cascade: %w", err)
	}
	return nil
}

// withSaleLock выполняет fn под блокировкой продажи.
func (s *SaleService) withSaleLock(ctx context.Context, saleID uuid.UUID, fn func() error) error {
	release, err := s.locker.Acquire(ctx, lock.SaleKey(saleID))
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			s.l.WithError(relErr).WithField("sale_id", saleID).Warn("releasing sale lock")
		}
	}()
	return fn()
}

// checkSaleLink проверяет, что платёж связан именно с продажей saleID. Платёж, связанный с продажей,
// нельзя менять без неё.
func checkSaleLink(payment *domain.Payment, saleID *uuid.UUID) error {
	switch {
	case saleID == nil && payment.SaleID != nil:
		return domain.NewPreconditionError("payment is linked to sale " + payment.SaleID.String() +
			", the split must be edited together with it")
	case saleID != nil && (payment.SaleID == nil || *payment.SaleID != *saleID):
		return domain.NewPreconditionError("payment is not linked to sale " + saleID.String())
	}
	return nil
}

// replaceSplit блокирует строку продажи, удаляет её начисления, вставляет новые и обновляет продажу.
func replaceSplit(
	ctx context.Context,
	tx uow.TX,
	saleID uuid.UUID,
	amountCents int64,
	note *string,
	shares []earnings.Share,
) error {
	saleRepo, err := uow.GetAs[SaleRepository](tx, uow.RepositoryName(repoargs.SaleRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	if _, err = saleRepo.LockByID(ctx, saleID); err != nil {
		return err //nolint:wrapcheck
	}

	earningRepo, err := uow.GetAs[EarningRepository](tx, uow.RepositoryName(repoargs.EarningRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	deleted, err := earningRepo.DeleteBySaleID(ctx, saleID)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if deleted == 0 {
		return domain.NewPreconditionError("sale " + saleID.String() + " has no split to edit")
	}

	if err = insertSplit(ctx, tx, saleID, shares); err != nil {
		return err
	}

	_, err = saleRepo.Update(ctx, saleID, repoargs.SaleUpdate{AmountCents: amountCents, Note: note})
	return err //nolint:wrapcheck
}

// insertSplit вставляет начисления батч запросом. Позиция начисления равна индексу участника в разбиении.
// Возвращает первую ошибку батча, ссылка на несуществующего участника становится *domain.ValidationError.
func insertSplit(ctx context.Context, tx uow.TX, saleID uuid.UUID, shares []earnings.Share) error {
	earningRepo, err := uow.GetAs[EarningRepository](tx, uow.RepositoryName(repoargs.EarningRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}

	rows := make([]repoargs.EarningCreate, len(shares))
	for i, sh := range shares {
		rows[i] = repoargs.EarningCreate{
			MemberID:    sh.MemberID,
			SaleID:      saleID,
			Position:    i,
			AmountCents: sh.AmountCents,
		}
	}

	var batchErr error
	earningRepo.BatchCreate(ctx, rows, func(i int, err error) {
		if err == nil || batchErr != nil {
			return
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			batchErr = domain.NewValidationError("member_ids", "unknown member "+rows[i].MemberID.String())
			return
		}
		batchErr = err
	})
	return batchErr
}

// deleteSale удаляет начисления продажи, затем саму продажу.
func deleteSale(ctx context.Context, tx uow.TX, saleID uuid.UUID) error {
	earningRepo, err := uow.GetAs[EarningRepository](tx, uow.RepositoryName(repoargs.EarningRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	if _, err = earningRepo.DeleteBySaleID(ctx, saleID); err != nil {
		return err //nolint:wrapcheck
	}

	saleRepo, err := uow.GetAs[SaleRepository](tx, uow.RepositoryName(repoargs.SaleRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	return saleRepo.Delete(ctx, saleID) //nolint:wrapcheck
}
