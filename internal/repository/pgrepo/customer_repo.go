package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type customerRow struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt *time.Time `db:"expires_at"`
	ProductID *uuid.UUID `db:"product_id"`
	UserID    *uuid.UUID `db:"user_id"`
	Code      *string    `db:"code"`
	Status    string     `db:"status"`
}

type subscriptionRow struct {
	ID         uuid.UUID  `db:"id"`
	CustomerID uuid.UUID  `db:"customer_id"`
	PlanID     string     `db:"plan_id"`
	Status     string     `db:"status"`
	StartedAt  time.Time  `db:"started_at"`
	CanceledAt *time.Time `db:"canceled_at"`
}

type CustomerRepository struct {
	db uow.DBTX
}

func NewCustomerRepository(db uow.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerFindByIDQuery = `
SELECT id, created_at, expires_at, product_id, user_id, code, status
FROM customers
WHERE id = $1`

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	rows, _ := r.db.Query(ctx, customerFindByIDQuery, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[customerRow])
	if err != nil {
		return nil, convertErr(err, "finding customer `%s`", id)
	}
	return &domain.Customer{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
		ProductID: row.ProductID,
		UserID:    row.UserID,
		Code:      row.Code,
		Status:    domain.CustomerStatusType(row.Status),
	}, nil
}

const subscriptionFindByIDQuery = `
SELECT id, customer_id, plan_id, status, started_at, canceled_at
FROM subscriptions
WHERE id = $1`

func (r *CustomerRepository) FindSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	rows, _ := r.db.Query(ctx, subscriptionFindByIDQuery, id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[subscriptionRow])
	if err != nil {
		return nil, convertErr(err, "finding subscription `%s`", id)
	}
	return &domain.Subscription{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		PlanID:     row.PlanID,
		Status:     row.Status,
		StartedAt:  row.StartedAt,
		CanceledAt: row.CanceledAt,
	}, nil
}
