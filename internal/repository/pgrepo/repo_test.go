package pgrepo

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	uowmocks "github.com/fsdevblog/lynx-sales/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

// fakeBatchResults отдаёт заранее заданные ошибки для каждого Exec.
type fakeBatchResults struct {
	errs   []error
	i      int
	closed bool
}

func (f *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	err := f.errs[f.i]
	f.i++
	return pgconn.NewCommandTag("INSERT 0 1"), err
}

func (f *fakeBatchResults) Query() (pgx.Rows, error) { return nil, nil }
func (f *fakeBatchResults) QueryRow() pgx.Row        { return nil }
func (f *fakeBatchResults) Close() error {
	f.closed = true
	return nil
}

// emptyRows пустой результат запроса.
type emptyRows struct {
	closed bool
}

func (r *emptyRows) Close()                                       { r.closed = true }
func (r *emptyRows) Err() error                                   { return nil }
func (r *emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (r *emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *emptyRows) Next() bool                                   { return false }
func (r *emptyRows) Scan(...any) error                            { return nil }
func (r *emptyRows) Values() ([]any, error)                       { return nil, nil }
func (r *emptyRows) RawValues() [][]byte                          { return nil }
func (r *emptyRows) Conn() *pgx.Conn                              { return nil }

type RepositoryTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockDB   *uowmocks.MockDBTX
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDB = uowmocks.NewMockDBTX(s.mockCtrl)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *RepositoryTestSuite) TestEarningBatchCreate() {
	saleID := uuid.New()
	earnings := []repoargs.EarningCreate{
		{MemberID: uuid.New(), SaleID: saleID, Position: 0, AmountCents: 34},
		{MemberID: uuid.New(), SaleID: saleID, Position: 1, AmountCents: 33},
		{MemberID: uuid.New(), SaleID: saleID, Position: 2, AmountCents: 33},
	}
	results := &fakeBatchResults{errs: []error{nil, &pgconn.PgError{Code: "23505"}, nil}}

	s.mockDB.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *pgx.Batch) pgx.BatchResults {
			s.Equal(len(earnings), b.Len())
			return results
		})

	var got = make([]error, len(earnings))
	NewEarningRepository(s.mockDB).BatchCreate(context.Background(), earnings, func(i int, err error) {
		got[i] = err
	})

	s.NoError(got[0])
	s.ErrorIs(got[1], domain.ErrDuplicateKey)
	s.NoError(got[2])
	s.True(results.closed)
}

func (s *RepositoryTestSuite) TestDeleteMissing() {
	id := uuid.New()

	s.Run("sale", func() {
		s.mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), id).Return(pgconn.NewCommandTag("DELETE 0"), nil)
		s.ErrorIs(NewSaleRepository(s.mockDB).Delete(context.Background(), id), domain.ErrRecordNotFound)
	})

	s.Run("payment", func() {
		s.mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), id).Return(pgconn.NewCommandTag("DELETE 0"), nil)
		s.ErrorIs(NewPaymentRepository(s.mockDB).Delete(context.Background(), id), domain.ErrRecordNotFound)
	})
}

func (s *RepositoryTestSuite) TestDeleteEarningsBySale() {
	saleID := uuid.New()
	s.mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), saleID).Return(pgconn.NewCommandTag("DELETE 3"), nil)

	n, err := NewEarningRepository(s.mockDB).DeleteBySaleID(context.Background(), saleID)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
}

func (s *RepositoryTestSuite) TestDeleteTransientError() {
	saleID := uuid.New()
	s.mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), saleID).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "40001"})

	_, err := NewEarningRepository(s.mockDB).DeleteBySaleID(context.Background(), saleID)
	s.ErrorIs(err, domain.ErrTransient)
}

func (s *RepositoryTestSuite) TestSumByMemberSinceUsesSaleDate() {
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := &emptyRows{}

	s.mockDB.EXPECT().Query(gomock.Any(), gomock.Any(), since).
		DoAndReturn(func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			s.Contains(sql, "JOIN sales s ON s.id = e.sale_id")
			s.Contains(sql, "s.sold_at >= $1")
			s.NotContains(sql, "created_at")
			return rows, nil
		})

	sums, err := NewEarningRepository(s.mockDB).SumByMemberSince(context.Background(), since)
	s.Require().NoError(err)
	s.Empty(sums)
	s.True(rows.closed)
}
