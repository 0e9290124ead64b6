package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/lock"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/internal/service/mocks"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	uowmocks "github.com/fsdevblog/lynx-sales/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockUOW          *uowmocks.MockUOW
	mockTX           *uowmocks.MockTX
	mockCustomerRepo *mocks.MockCustomerRepository
	mockSaleRepo     *mocks.MockSaleRepository
	mockEarningRepo  *mocks.MockEarningRepository
	mockPaymentRepo  *mocks.MockPaymentRepository
	mockLocker       *mocks.MockLocker
	service          *SaleService

	now      time.Time
	members  []uuid.UUID
	releases int
}

func TestSaleServiceSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockCustomerRepo = mocks.NewMockCustomerRepository(s.mockCtrl)
	s.mockSaleRepo = mocks.NewMockSaleRepository(s.mockCtrl)
	s.mockEarningRepo = mocks.NewMockEarningRepository(s.mockCtrl)
	s.mockPaymentRepo = mocks.NewMockPaymentRepository(s.mockCtrl)
	s.mockLocker = mocks.NewMockLocker(s.mockCtrl)

	// Репозитории вне транзакции запрашиваются при инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.SaleRepoName)).
		Return(s.mockSaleRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.EarningRepoName)).
		Return(s.mockEarningRepo, nil).AnyTimes()

	// Репозитории внутри транзакции.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.CustomerRepoName)).Return(s.mockCustomerRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.SaleRepoName)).Return(s.mockSaleRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.EarningRepoName)).Return(s.mockEarningRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.PaymentRepoName)).Return(s.mockPaymentRepo, nil).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	s.now = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)
	s.releases = 0
	s.members = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	service, err := NewSaleService(s.mockUOW, s.mockLocker, l)
	s.Require().NoError(err)
	s.service = service.SetRetryDelay(0).SetClock(func() time.Time { return s.now })
}

func (s *SaleServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTx настраивает мок UOW обертку, которая выполняет функцию с моком транзакции.
func (s *SaleServiceTestSuite) expectTx(times int, isoLevel pgx.TxIsoLevel) {
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			s.Equal(isoLevel, uow.IsoLevelFrom(ctx))
			return fn(ctx, s.mockTX)
		},
	).Times(times)
}

// expectLock настраивает захват блокировки продажи. Освобождения считаются в s.releases.
func (s *SaleServiceTestSuite) expectLock(saleID uuid.UUID) {
	s.mockLocker.EXPECT().Acquire(gomock.Any(), lock.SaleKey(saleID)).
		Return(lock.ReleaseFunc(func(context.Context) error {
			s.releases++
			return nil
		}), nil)
}

// expectSplit проверяет, что начисления вставлены в порядке участников с остатком у первого.
func (s *SaleServiceTestSuite) expectSplit(saleID uuid.UUID, members []uuid.UUID, amounts []int64) {
	s.mockEarningRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rows []repoargs.EarningCreate, fn repoargs.BatchExecQueryRow) {
			s.Require().Len(rows, len(members))
			for i, row := range rows {
				s.Equal(saleID, row.SaleID)
				s.Equal(members[i], row.MemberID)
				s.Equal(i, row.Position)
				s.Equal(amounts[i], row.AmountCents)
				fn(i, nil)
			}
		},
	)
}

func (s *SaleServiceTestSuite) TestRegisterSaleWithSplit() {
	productID := uuid.New()
	customer := &domain.Customer{ID: uuid.New(), ProductID: &productID, Status: domain.CustomerStatusActive}
	saleID := uuid.New()
	note := "annual plan"

	s.expectTx(1, "")
	s.mockCustomerRepo.EXPECT().FindByID(gomock.Any(), customer.ID).Return(customer, nil)
	s.mockSaleRepo.EXPECT().Create(gomock.Any(), repoargs.SaleCreate{
		CustomerID:  customer.ID,
		ProductID:   productID,
		AmountCents: 100,
		Status:      domain.SaleStatusCompleted,
		Note:        &note,
		SoldAt:      s.now,
	}).Return(&domain.Sale{ID: saleID, CustomerID: customer.ID, ProductID: productID, AmountCents: 100}, nil)
	s.expectSplit(saleID, s.members, []int64{34, 33, 33})

	paymentID := uuid.New()
	s.mockPaymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, args repoargs.PaymentCreate) (*domain.Payment, error) {
			s.Equal(customer.ID, args.CustomerID)
			s.Equal(&saleID, args.SaleID)
			s.Equal(int64(100), args.AmountCents)
			s.Equal(domain.CurrencyBOB, args.Currency)
			s.Equal(domain.PaymentStatusSucceeded, args.Status)
			return &domain.Payment{ID: paymentID, SaleID: &saleID}, nil
		},
	)

	res, err := s.service.RegisterSaleWithSplit(s.T().Context(), RegisterSaleArgs{
		CustomerID:  customer.ID,
		AmountCents: 100,
		Note:        &note,
		MemberIDs:   s.members,
		Payment:     &PaymentLink{},
	})
	s.Require().NoError(err)
	s.Equal(saleID, res.SaleID)
	s.Equal(&paymentID, res.PaymentID)
}

func (s *SaleServiceTestSuite) TestRegisterSaleWithSplit_ValidationBeforeStore() {
	// ни одного ожидания на моках: любое обращение к хранилищу провалит тест.
	cases := []struct {
		name    string
		amount  int64
		members []uuid.UUID
	}{
		{name: "no members", amount: 100, members: nil},
		{name: "zero amount", amount: 0, members: s.members},
		{name: "duplicate member", amount: 100, members: []uuid.UUID{s.members[0], s.members[0]}},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			res, err := s.service.RegisterSaleWithSplit(s.T().Context(), RegisterSaleArgs{
				CustomerID:  uuid.New(),
				AmountCents: c.amount,
				MemberIDs:   c.members,
			})
			s.Nil(res)
			var vErr *domain.ValidationError
			s.True(errors.As(err, &vErr))
		})
	}
}

func (s *SaleServiceTestSuite) TestRegisterSaleWithSplit_CustomerWithoutProduct() {
	customer := &domain.Customer{ID: uuid.New()}

	s.expectTx(1, "")
	s.mockCustomerRepo.EXPECT().FindByID(gomock.Any(), customer.ID).Return(customer, nil)

	_, err := s.service.RegisterSaleWithSplit(s.T().Context(), RegisterSaleArgs{
		CustomerID:  customer.ID,
		AmountCents: 500,
		MemberIDs:   s.members[:1],
	})
	var pErr *domain.PreconditionError
	s.True(errors.As(err, &pErr))
}

func (s *SaleServiceTestSuite) TestRegisterSaleWithSplit_UnknownMember() {
	productID := uuid.New()
	customer := &domain.Customer{ID: uuid.New(), ProductID: &productID}

	s.expectTx(1, "")
	s.mockCustomerRepo.EXPECT().FindByID(gomock.Any(), customer.ID).Return(customer, nil)
	s.mockSaleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Sale{ID: uuid.New()}, nil)
	s.mockEarningRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rows []repoargs.EarningCreate, fn repoargs.BatchExecQueryRow) {
			fn(0, nil)
			fn(1, fmt.Errorf("[repository/creating earning] %w", domain.ErrRecordNotFound))
			fn(2, errors.New("current transaction is aborted"))
		},
	)

	_, err := s.service.RegisterSaleWithSplit(s.T().Context(), RegisterSaleArgs{
		CustomerID:  customer.ID,
		AmountCents: 100,
		MemberIDs:   s.members,
	})
	var vErr *domain.ValidationError
	s.Require().True(errors.As(err, &vErr))
	s.Equal("member_ids", vErr.Field)
	s.Contains(vErr.Reason, s.members[1].String())
}

func (s *SaleServiceTestSuite) TestRegisterSaleWithSplit_TransientRetriedOnce() {
	productID := uuid.New()
	customer := &domain.Customer{ID: uuid.New(), ProductID: &productID}
	saleID := uuid.New()

	s.expectTx(2, "")
	gomock.InOrder(
		s.mockCustomerRepo.EXPECT().FindByID(gomock.Any(), customer.ID).
			Return(nil, fmt.Errorf("[repository/finding customer] %w", domain.ErrTransient)),
		s.mockCustomerRepo.EXPECT().FindByID(gomock.Any(), customer.ID).Return(customer, nil),
	)
	s.mockSaleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Sale{ID: saleID}, nil)
	s.expectSplit(saleID, s.members[:2], []int64{250, 250})

	res, err := s.service.RegisterSaleWithSplit(s.T().Context(), RegisterSaleArgs{
		CustomerID:  customer.ID,
		AmountCents: 500,
		MemberIDs:   s.members[:2],
	})
	s.Require().NoError(err)
	s.Equal(saleID, res.SaleID)
	s.Nil(res.PaymentID)
}

func (s *SaleServiceTestSuite) TestUpdateSaleSplit() {
	saleID := uuid.New()
	note := "upgraded"

	s.expectLock(saleID)
	s.expectTx(1, pgx.RepeatableRead)
	gomock.InOrder(
		s.mockSaleRepo.EXPECT().LockByID(gomock.Any(), saleID).Return(&domain.Sale{ID: saleID, AmountCents: 100}, nil),
		s.mockEarningRepo.EXPECT().DeleteBySaleID(gomock.Any(), saleID).Return(int64(2), nil),
		s.mockEarningRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rows []repoargs.EarningCreate, fn repoargs.BatchExecQueryRow) {
				// 90 на троих без остатка, предыдущие строки по 50 удалены.
				s.Require().Len(rows, 3)
				for i, row := range rows {
					s.Equal(int64(30), row.AmountCents)
					fn(i, nil)
				}
			},
		),
		s.mockSaleRepo.EXPECT().Update(gomock.Any(), saleID, repoargs.SaleUpdate{AmountCents: 90, Note: &note}).
			Return(&domain.Sale{ID: saleID, AmountCents: 90}, nil),
	)

	err := s.service.UpdateSaleSplit(s.T().Context(), UpdateSaleSplitArgs{
		SaleID:      saleID,
		AmountCents: 90,
		Note:        &note,
		MemberIDs:   s.members,
	})
	s.Require().NoError(err)
	s.Equal(1, s.releases)
}

func (s *SaleServiceTestSuite) TestUpdateSaleSplit_NoExistingSplit() {
	saleID := uuid.New()

	s.expectLock(saleID)
	s.expectTx(1, pgx.RepeatableRead)
	s.mockSaleRepo.EXPECT().LockByID(gomock.Any(), saleID).Return(&domain.Sale{ID: saleID}, nil)
	s.mockEarningRepo.EXPECT().DeleteBySaleID(gomock.Any(), saleID).Return(int64(0), nil)

	err := s.service.UpdateSaleSplit(s.T().Context(), UpdateSaleSplitArgs{
		SaleID:      saleID,
		AmountCents: 90,
		MemberIDs:   s.members,
	})
	var pErr *domain.PreconditionError
	s.True(errors.As(err, &pErr))
	s.Equal(1, s.releases)
}

func (s *SaleServiceTestSuite) TestUpdateSaleSplit_SaleBusy() {
	saleID := uuid.New()
	s.mockLocker.EXPECT().Acquire(gomock.Any(), lock.SaleKey(saleID)).
		Return(nil, fmt.Errorf("acquire: %w", domain.ErrSaleBusy))

	err := s.service.UpdateSaleSplit(s.T().Context(), UpdateSaleSplitArgs{
		SaleID:      saleID,
		AmountCents: 90,
		MemberIDs:   s.members,
	})
	s.ErrorIs(err, domain.ErrSaleBusy)
}

func (s *SaleServiceTestSuite) TestEditSale() {
	saleID := uuid.New()
	paymentID := uuid.New()
	status := domain.PaymentStatusRefunded

	s.expectLock(saleID)
	s.expectTx(1, pgx.RepeatableRead)
	gomock.InOrder(
		s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
			Return(&domain.Payment{ID: paymentID, SaleID: &saleID, AmountCents: 100}, nil),
		s.mockPaymentRepo.EXPECT().Update(gomock.Any(), paymentID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, upd repoargs.PaymentUpdate) (*domain.Payment, error) {
				s.Equal(int64(200), *upd.AmountCents)
				s.Equal(status, *upd.Status)
				return &domain.Payment{ID: paymentID, SaleID: &saleID, AmountCents: 200, Status: status}, nil
			},
		),
		s.mockSaleRepo.EXPECT().LockByID(gomock.Any(), saleID).Return(&domain.Sale{ID: saleID}, nil),
		s.mockEarningRepo.EXPECT().DeleteBySaleID(gomock.Any(), saleID).Return(int64(1), nil),
	)
	s.expectSplit(saleID, []uuid.UUID{s.members[1], s.members[0]}, []int64{100, 100})
	s.mockSaleRepo.EXPECT().Update(gomock.Any(), saleID, gomock.Any()).Return(&domain.Sale{ID: saleID}, nil)

	payment, err := s.service.EditSale(s.T().Context(), EditSaleArgs{
		PaymentID:   paymentID,
		SaleID:      &saleID,
		AmountCents: 200,
		Status:      &status,
		MemberIDs:   []uuid.UUID{s.members[1], s.members[0]},
	})
	s.Require().NoError(err)
	s.Equal(int64(200), payment.AmountCents)
	s.Equal(1, s.releases)
}

func (s *SaleServiceTestSuite) TestEditSale_LinkMismatch() {
	paymentID := uuid.New()
	linkedSale := uuid.New()

	s.Run("payment linked but sale omitted", func() {
		s.expectTx(1, pgx.RepeatableRead)
		s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
			Return(&domain.Payment{ID: paymentID, SaleID: &linkedSale}, nil)

		_, err := s.service.EditSale(s.T().Context(), EditSaleArgs{PaymentID: paymentID, AmountCents: 100})
		var pErr *domain.PreconditionError
		s.True(errors.As(err, &pErr))
	})

	s.Run("payment linked to another sale", func() {
		other := uuid.New()
		s.expectLock(other)
		s.expectTx(1, pgx.RepeatableRead)
		s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
			Return(&domain.Payment{ID: paymentID, SaleID: &linkedSale}, nil)

		_, err := s.service.EditSale(s.T().Context(), EditSaleArgs{
			PaymentID:   paymentID,
			SaleID:      &other,
			AmountCents: 100,
			MemberIDs:   s.members,
		})
		var pErr *domain.PreconditionError
		s.True(errors.As(err, &pErr))
	})
}

func (s *SaleServiceTestSuite) TestEditSale_Validation() {
	bad := domain.PaymentStatusType("lost")
	saleID := uuid.New()

	cases := []struct {
		name string
		args EditSaleArgs
	}{
		{name: "zero amount", args: EditSaleArgs{PaymentID: uuid.New(), AmountCents: 0}},
		{name: "unknown status", args: EditSaleArgs{PaymentID: uuid.New(), AmountCents: 10, Status: &bad}},
		{name: "sale without members", args: EditSaleArgs{PaymentID: uuid.New(), SaleID: &saleID, AmountCents: 10}},
	}
	for _, c := range cases {
		s.Run(c.name, func() {
			_, err := s.service.EditSale(s.T().Context(), c.args)
			var vErr *domain.ValidationError
			s.True(errors.As(err, &vErr))
		})
	}
}

func (s *SaleServiceTestSuite) TestDeletePaymentCascade() {
	saleID := uuid.New()
	paymentID := uuid.New()

	s.expectLock(saleID)
	s.expectTx(1, "")
	gomock.InOrder(
		s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
			Return(&domain.Payment{ID: paymentID, SaleID: &saleID}, nil),
		s.mockEarningRepo.EXPECT().DeleteBySaleID(gomock.Any(), saleID).Return(int64(3), nil),
		s.mockSaleRepo.EXPECT().Delete(gomock.Any(), saleID).Return(nil),
		s.mockPaymentRepo.EXPECT().Delete(gomock.Any(), paymentID).Return(nil),
	)

	s.Require().NoError(s.service.DeletePaymentCascade(s.T().Context(), paymentID, &saleID))
	s.Equal(1, s.releases)
}

func (s *SaleServiceTestSuite) TestDeletePaymentCascade_WithoutSale() {
	paymentID := uuid.New()

	s.expectTx(1, "")
	gomock.InOrder(
		s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).Return(&domain.Payment{ID: paymentID}, nil),
		s.mockPaymentRepo.EXPECT().Delete(gomock.Any(), paymentID).Return(nil),
	)

	s.Require().NoError(s.service.DeletePaymentCascade(s.T().Context(), paymentID, nil))
}

func (s *SaleServiceTestSuite) TestDeletePaymentCascade_LinkedWithoutSaleID() {
	saleID := uuid.New()
	paymentID := uuid.New()

	s.expectTx(1, "")
	s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
		Return(&domain.Payment{ID: paymentID, SaleID: &saleID}, nil)
	s.mockEarningRepo.EXPECT().DeleteBySaleID(gomock.Any(), gomock.Any()).Times(0)
	s.mockSaleRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
	s.mockPaymentRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	err := s.service.DeletePaymentCascade(s.T().Context(), paymentID, nil)
	var pErr *domain.PreconditionError
	s.Require().ErrorAs(err, &pErr)
	s.Equal(0, s.releases)
}

func (s *SaleServiceTestSuite) TestDeletePaymentCascade_MissingPayment() {
	paymentID := uuid.New()

	s.expectTx(1, "")
	s.mockPaymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).
		Return(nil, fmt.Errorf("[repository/finding payment] %w", domain.ErrRecordNotFound))

	err := s.service.DeletePaymentCascade(s.T().Context(), paymentID, nil)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *SaleServiceTestSuite) TestFetchSaleDetails() {
	saleID := uuid.New()
	sale := &domain.Sale{ID: saleID, AmountCents: 100}

	s.mockSaleRepo.EXPECT().FindByID(gomock.Any(), saleID).Return(sale, nil)
	s.mockEarningRepo.EXPECT().GetBySaleID(gomock.Any(), saleID).Return([]domain.Earning{
		{MemberID: s.members[2], Position: 0, AmountCents: 34},
		{MemberID: s.members[0], Position: 1, AmountCents: 33},
		{MemberID: s.members[1], Position: 2, AmountCents: 33},
	}, nil)

	details, err := s.service.FetchSaleDetails(s.T().Context(), saleID)
	s.Require().NoError(err)
	s.Equal(*sale, details.Sale)
	s.Equal([]uuid.UUID{s.members[2], s.members[0], s.members[1]}, details.MemberIDs)
}
