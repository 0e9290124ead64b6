package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type earningRow struct {
	ID          uuid.UUID `db:"id"`
	CreatedAt   time.Time `db:"created_at"`
	MemberID    uuid.UUID `db:"member_id"`
	SaleID      uuid.UUID `db:"sale_id"`
	Position    int       `db:"position"`
	AmountCents int64     `db:"amount_cents"`
}

type memberSumRow struct {
	MemberID    uuid.UUID `db:"member_id"`
	AmountCents int64     `db:"amount_cents"`
}

type EarningRepository struct {
	db uow.DBTX
}

func NewEarningRepository(db uow.DBTX) *EarningRepository {
	return &EarningRepository{db: db}
}

const earningCreateQuery = `
INSERT INTO earnings (member_id, sale_id, position, amount_cents)
VALUES ($1, $2, $3, $4)`

// BatchCreate вставляет начисления одним батч запросом. fn вызывается для каждой строки в порядке earnings.
func (r *EarningRepository) BatchCreate(
	ctx context.Context,
	earnings []repoargs.EarningCreate,
	fn repoargs.BatchExecQueryRow,
) {
	batch := new(pgx.Batch)
	for _, e := range earnings {
		batch.Queue(earningCreateQuery, e.MemberID, e.SaleID, e.Position, e.AmountCents)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for i, e := range earnings {
		_, err := br.Exec()
		fn(i, convertErr(err, "creating earning for member `%s` of sale `%s`", e.MemberID, e.SaleID))
	}
}

// DeleteBySaleID удаляет все начисления продажи и возвращает их количество.
func (r *EarningRepository) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM earnings WHERE sale_id = $1`, saleID)
	if err != nil {
		return 0, convertErr(err, "deleting earnings of sale `%s`", saleID)
	}
	return tag.RowsAffected(), nil
}

// GetBySaleID возвращает начисления продажи в порядке разбиения.
func (r *EarningRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]domain.Earning, error) {
	rows, _ := r.db.Query(ctx, `
SELECT id, created_at, member_id, sale_id, position, amount_cents
FROM earnings
WHERE sale_id = $1
ORDER BY position`, saleID)

	dbEarnings, err := pgx.CollectRows(rows, pgx.RowToStructByName[earningRow])
	if err != nil {
		return nil, convertErr(err, "getting earnings of sale `%s`", saleID)
	}
	var earnings = make([]domain.Earning, len(dbEarnings))
	for i, e := range dbEarnings {
		earnings[i] = domain.Earning{
			ID:          e.ID,
			CreatedAt:   e.CreatedAt,
			MemberID:    e.MemberID,
			SaleID:      e.SaleID,
			Position:    e.Position,
			AmountCents: e.AmountCents,
		}
	}
	return earnings, nil
}

// SumByMemberSince суммирует начисления по участникам за продажи, совершённые начиная с since.
// Период определяется датой продажи, а не временем вставки начисления, которое меняется при правке разбиения.
func (r *EarningRepository) SumByMemberSince(
	ctx context.Context,
	since time.Time,
) ([]repoargs.MemberEarningsSum, error) {
	rows, _ := r.db.Query(ctx, `
SELECT e.member_id, COALESCE(SUM(e.amount_cents), 0)::bigint AS amount_cents
FROM earnings e
JOIN sales s ON s.id = e.sale_id
WHERE s.sold_at >= $1
GROUP BY e.member_id
ORDER BY amount_cents DESC`, since)

	dbSums, err := pgx.CollectRows(rows, pgx.RowToStructByName[memberSumRow])
	if err != nil {
		return nil, convertErr(err, "summing earnings since %s", since.Format(time.RFC3339))
	}
	var sums = make([]repoargs.MemberEarningsSum, len(dbSums))
	for i, s := range dbSums {
		sums[i] = repoargs.MemberEarningsSum(s)
	}
	return sums, nil
}
