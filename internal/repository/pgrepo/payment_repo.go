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

type paymentRow struct {
	ID             uuid.UUID  `db:"id"`
	CustomerID     uuid.UUID  `db:"customer_id"`
	SubscriptionID *uuid.UUID `db:"subscription_id"`
	SaleID         *uuid.UUID `db:"sale_id"`
	AmountCents    int64      `db:"amount_cents"`
	Currency       string     `db:"currency"`
	Status         string     `db:"status"`
	PaidAt         time.Time  `db:"paid_at"`
}

func (p paymentRow) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		SubscriptionID: p.SubscriptionID,
		SaleID:         p.SaleID,
		AmountCents:    p.AmountCents,
		Currency:       p.Currency,
		Status:         domain.PaymentStatusType(p.Status),
		PaidAt:         p.PaidAt,
	}
}

type paymentOverviewRow struct {
	ID               uuid.UUID  `db:"id"`
	PaidAt           time.Time  `db:"paid_at"`
	CustomerID       uuid.UUID  `db:"customer_id"`
	CustomerName     *string    `db:"customer_name"`
	CustomerPhone    *string    `db:"customer_phone"`
	ProductShortCode *string    `db:"product_short_code"`
	ProductName      *string    `db:"product_name"`
	SaleID           *uuid.UUID `db:"sale_id"`
	AmountCents      int64      `db:"amount_cents"`
	Status           string     `db:"status"`
}

const paymentColumns = `id, customer_id, subscription_id, sale_id, amount_cents, currency, status, paid_at`

type PaymentRepository struct {
	db uow.DBTX
}

func NewPaymentRepository(db uow.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment repoargs.PaymentCreate) (*domain.Payment, error) {
	rows, _ := r.db.Query(ctx, `
INSERT INTO payments (customer_id, subscription_id, sale_id, amount_cents, currency, status, paid_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+paymentColumns,
		payment.CustomerID, payment.SubscriptionID, payment.SaleID, payment.AmountCents,
		payment.Currency, string(payment.Status), payment.PaidAt,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		return nil, convertErr(err, "creating payment for customer `%s`", payment.CustomerID)
	}
	return row.toDomain(), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		return nil, convertErr(err, "finding payment `%s`", id)
	}
	return row.toDomain(), nil
}

// Update меняет только заданные в upd поля.
func (r *PaymentRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	upd repoargs.PaymentUpdate,
) (*domain.Payment, error) {
	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}
	rows, _ := r.db.Query(ctx, `
UPDATE payments
SET amount_cents = COALESCE($2, amount_cents),
    status       = COALESCE($3, status)
WHERE id = $1
RETURNING `+paymentColumns,
		id, upd.AmountCents, status,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		return nil, convertErr(err, "updating payment `%s`", id)
	}
	return row.toDomain(), nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting payment `%s`", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting payment `%s`", id)
	}
	return nil
}

// OverviewSince возвращает платежи начиная с since, новые первыми, с данными клиента и продукта.
func (r *PaymentRepository) OverviewSince(ctx context.Context, since time.Time) ([]domain.PaymentOverview, error) {
	rows, _ := r.db.Query(ctx, `
SELECT p.id,
       p.paid_at,
       p.customer_id,
       cp.name       AS customer_name,
       cp.phone      AS customer_phone,
       pr.short_code AS product_short_code,
       pr.name       AS product_name,
       p.sale_id,
       p.amount_cents,
       p.status
FROM payments p
         LEFT JOIN customers c ON c.id = p.customer_id
         LEFT JOIN customer_profiles cp ON cp.customer_id = p.customer_id
         LEFT JOIN products pr ON pr.id = c.product_id
WHERE p.paid_at >= $1
ORDER BY p.paid_at DESC`, since)

	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[paymentOverviewRow])
	if err != nil {
		return nil, convertErr(err, "listing payments since %s", since.Format(time.RFC3339))
	}
	var overview = make([]domain.PaymentOverview, len(dbRows))
	for i, row := range dbRows {
		overview[i] = domain.PaymentOverview{
			ID:               row.ID,
			PaidAt:           row.PaidAt,
			CustomerID:       row.CustomerID,
			CustomerName:     row.CustomerName,
			CustomerPhone:    row.CustomerPhone,
			ProductShortCode: row.ProductShortCode,
			ProductName:      row.ProductName,
			SaleID:           row.SaleID,
			AmountCents:      row.AmountCents,
			Status:           domain.PaymentStatusType(row.Status),
		}
	}
	return overview, nil
}
