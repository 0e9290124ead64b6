package pgrepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: domain.ErrRecordNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: domain.ErrRecordNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrRecordNotFound},
		{name: "serialization", err: &pgconn.PgError{Code: "40001"}, want: domain.ErrTransient},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: domain.ErrTransient},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: domain.ErrTransient},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}, want: domain.ErrUnknown},
		{name: "plain error", err: errors.New("boom"), want: domain.ErrUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := convertErr(c.err, "sale %d", 1)
			assert.ErrorIs(t, got, c.want)
			assert.Contains(t, got.Error(), "[repository/sale 1]")
		})
	}

	assert.NoError(t, convertErr(nil, "noop"))
}
