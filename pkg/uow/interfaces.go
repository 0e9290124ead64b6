package uow

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrRepositoryNotRegistered     = errors.New("[uow] repository not registered")
	ErrRepositoryAlreadyRegistered = errors.New("[uow] repository already registered")
	ErrInvalidRepositoryType       = errors.New("[uow] invalid repository type")
)

// TX транзакция, открытая UOW.Do. Репозитории, полученные через Get, работают внутри неё.
type TX interface {
	Get(name RepositoryName) (Repository, error)
}

// DBTX общая часть pgxpool.Pool и pgx.Tx, которой пользуются репозитории.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

type UOW interface {
	Register(name RepositoryName, factory RepositoryFactory) error
	// Do выполняет fn в транзакции с уровнем изоляции из ctx (WithIsoLevel). Ошибка fn откатывает транзакцию.
	Do(ctx context.Context, fn func(ctx context.Context, tx TX) error) error
	// GetRepository возвращает репозиторий, работающий на пуле вне транзакции.
	GetRepository(name RepositoryName) (Repository, error)
}
