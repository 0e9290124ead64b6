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

type saleRow struct {
	ID          uuid.UUID `db:"id"`
	CustomerID  uuid.UUID `db:"customer_id"`
	ProductID   uuid.UUID `db:"product_id"`
	AmountCents int64     `db:"amount_cents"`
	Status      string    `db:"status"`
	Note        *string   `db:"note"`
	SoldAt      time.Time `db:"sold_at"`
}

func (s saleRow) toDomain() *domain.Sale {
	return &domain.Sale{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		ProductID:   s.ProductID,
		AmountCents: s.AmountCents,
		Status:      domain.SaleStatusType(s.Status),
		Note:        s.Note,
		SoldAt:      s.SoldAt,
	}
}

const saleColumns = `id, customer_id, product_id, amount_cents, status, note, sold_at`

type SaleRepository struct {
	db uow.DBTX
}

func NewSaleRepository(db uow.DBTX) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, sale repoargs.SaleCreate) (*domain.Sale, error) {
	rows, _ := r.db.Query(ctx, `
INSERT INTO sales (customer_id, product_id, amount_cents, status, note, sold_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+saleColumns,
		sale.CustomerID, sale.ProductID, sale.AmountCents, string(sale.Status), sale.Note, sale.SoldAt,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[saleRow])
	if err != nil {
		return nil, convertErr(err, "creating sale for customer `%s`", sale.CustomerID)
	}
	return row.toDomain(), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[saleRow])
	if err != nil {
		return nil, convertErr(err, "finding sale `%s`", id)
	}
	return row.toDomain(), nil
}

// LockByID возвращает продажу, блокируя строку до конца транзакции. Вне транзакции работает как FindByID.
func (r *SaleRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[saleRow])
	if err != nil {
		return nil, convertErr(err, "locking sale `%s`", id)
	}
	return row.toDomain(), nil
}

func (r *SaleRepository) Update(ctx context.Context, id uuid.UUID, upd repoargs.SaleUpdate) (*domain.Sale, error) {
	rows, _ := r.db.Query(ctx, `
UPDATE sales SET amount_cents = $2, note = $3
WHERE id = $1
RETURNING `+saleColumns,
		id, upd.AmountCents, upd.Note,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[saleRow])
	if err != nil {
		return nil, convertErr(err, "updating sale `%s`", id)
	}
	return row.toDomain(), nil
}

func (r *SaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting sale `%s`", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting sale `%s`", id)
	}
	return nil
}
