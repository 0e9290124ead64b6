// Package earnings делит сумму продажи между участниками команды.
package earnings

import (
	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
)

// Share доля одного участника в целых минорных единицах (центах).
type Share struct {
	MemberID    uuid.UUID
	AmountCents int64
}

// RemainderPolicy возвращает индекс участника, который получает остаток от целочисленного деления.
// n всегда > 0.
type RemainderPolicy func(n int) int

// RemainderToFirst остаток получает первый участник в переданном порядке. Перестановка списка меняет получателя.
func RemainderToFirst(int) int {
	return 0
}

// Split делит amount между members по политике RemainderToFirst.
func Split(amount int64, members []uuid.UUID) ([]Share, error) {
	return SplitWith(amount, members, RemainderToFirst)
}

// SplitWith делит amount поровну между members, остаток целиком уходит участнику, выбранному policy.
// Сумма долей всегда равна amount, результат сохраняет порядок members.
//
// Возвращает *domain.ValidationError, если amount <= 0, список пуст или содержит повторы.
func SplitWith(amount int64, members []uuid.UUID, policy RemainderPolicy) ([]Share, error) {
	if err := Validate(amount, members); err != nil {
		return nil, err
	}

	n := int64(len(members))
	base := amount / n
	remainder := amount - base*n
	lucky := policy(len(members))

	shares := make([]Share, len(members))
	for i, id := range members {
		shares[i] = Share{MemberID: id, AmountCents: base}
		if i == lucky {
			shares[i].AmountCents += remainder
		}
	}
	return shares, nil
}

// Validate проверяет входные данные разбиения без вычислений. Используется сервисным слоем до обращения к хранилищу.
func Validate(amount int64, members []uuid.UUID) error {
	if amount <= 0 {
		return domain.NewValidationError("amount_cents", "must be a positive integer")
	}
	if len(members) == 0 {
		return domain.NewValidationError("member_ids", "at least one member is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(members))
	for _, id := range members {
		if id == uuid.Nil {
			return domain.NewValidationError("member_ids", "member id must not be empty")
		}
		if _, dup := seen[id]; dup {
			return domain.NewValidationError("member_ids", "member "+id.String()+" is listed twice")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Total сумма долей.
func Total(shares []Share) int64 {
	var sum int64
	for _, s := range shares {
		sum += s.AmountCents
	}
	return sum
}
