package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type isoLevelKey struct{}

// WithIsoLevel задаёт уровень изоляции для транзакций, открытых через Do с этим контекстом.
// Сигнатура Do при этом остаётся прежней, что упрощает её подмену в тестах.
func WithIsoLevel(ctx context.Context, level pgx.TxIsoLevel) context.Context {
	return context.WithValue(ctx, isoLevelKey{}, level)
}

// IsoLevelFrom возвращает уровень изоляции, заданный в контексте, или пустую строку.
func IsoLevelFrom(ctx context.Context) pgx.TxIsoLevel {
	level, _ := ctx.Value(isoLevelKey{}).(pgx.TxIsoLevel)
	return level
}

func txOptionsFrom(ctx context.Context) pgx.TxOptions {
	return pgx.TxOptions{IsoLevel: IsoLevelFrom(ctx)}
}
