package earnings

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SplitSuite struct {
	suite.Suite
	a, b, c uuid.UUID
}

func (s *SplitSuite) SetupTest() {
	s.a = uuid.New()
	s.b = uuid.New()
	s.c = uuid.New()
}

func TestSplitSuite(t *testing.T) {
	suite.Run(t, new(SplitSuite))
}

func (s *SplitSuite) TestSplit() {
	cases := []struct {
		name    string
		amount  int64
		members []uuid.UUID
		want    []Share
	}{
		{
			name:    "remainder to first",
			amount:  100,
			members: []uuid.UUID{s.a, s.b, s.c},
			want:    []Share{{s.a, 34}, {s.b, 33}, {s.c, 33}},
		},
		{
			name:    "reordered members move remainder",
			amount:  100,
			members: []uuid.UUID{s.b, s.a, s.c},
			want:    []Share{{s.b, 34}, {s.a, 33}, {s.c, 33}},
		},
		{
			name:    "single member takes all",
			amount:  500,
			members: []uuid.UUID{s.a},
			want:    []Share{{s.a, 500}},
		},
		{
			name:    "amount below member count",
			amount:  2,
			members: []uuid.UUID{s.a, s.b, s.c},
			want:    []Share{{s.a, 2}, {s.b, 0}, {s.c, 0}},
		},
		{
			name:    "even split",
			amount:  3500,
			members: []uuid.UUID{s.a, s.b},
			want:    []Share{{s.a, 1750}, {s.b, 1750}},
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			got, err := Split(c.amount, c.members)
			s.Require().NoError(err)
			s.Equal(c.want, got)
		})
	}
}

func (s *SplitSuite) TestSplitRejects() {
	cases := []struct {
		name    string
		amount  int64
		members []uuid.UUID
		field   string
	}{
		{name: "zero amount", amount: 0, members: []uuid.UUID{s.a}, field: "amount_cents"},
		{name: "negative amount", amount: -10, members: []uuid.UUID{s.a}, field: "amount_cents"},
		{name: "no members", amount: 100, members: nil, field: "member_ids"},
		{name: "duplicate member", amount: 100, members: []uuid.UUID{s.a, s.b, s.a}, field: "member_ids"},
		{name: "nil member", amount: 100, members: []uuid.UUID{uuid.Nil}, field: "member_ids"},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			got, err := Split(c.amount, c.members)
			s.Nil(got)
			var vErr *domain.ValidationError
			s.Require().True(errors.As(err, &vErr))
			s.Equal(c.field, vErr.Field)
		})
	}
}

func (s *SplitSuite) TestSplitWithPolicy() {
	last := func(n int) int { return n - 1 }
	got, err := SplitWith(100, []uuid.UUID{s.a, s.b, s.c}, last)
	s.Require().NoError(err)
	s.Equal([]Share{{s.a, 33}, {s.b, 33}, {s.c, 34}}, got)
}

func (s *SplitSuite) TestSplitInvariants() {
	for range 200 {
		amount := int64(gofakeit.IntRange(1, 10_000_000))
		n := gofakeit.IntRange(1, 12)
		members := make([]uuid.UUID, n)
		for i := range members {
			members[i] = uuid.New()
		}

		shares, err := Split(amount, members)
		s.Require().NoError(err)
		s.Require().Len(shares, n)
		s.Equal(amount, Total(shares))

		base := amount / int64(n)
		for i, sh := range shares {
			s.Equal(members[i], sh.MemberID)
			s.GreaterOrEqual(sh.AmountCents, int64(0))
			if i > 0 {
				s.Equal(base, sh.AmountCents)
			}
		}
	}
}
