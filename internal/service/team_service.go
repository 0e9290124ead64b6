package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/sirupsen/logrus"
)

// memberNameFallbackLen сколько символов id показывать вместо имени участника, которого нет в team_members.
const memberNameFallbackLen = 8

type TeamService struct {
	teamRepo    TeamMemberRepository
	profileRepo ProfileRepository
	earningRepo EarningRepository
	l           *logrus.Entry
	now         func() time.Time
}

func NewTeamService(u uow.UOW, l *logrus.Logger) (*TeamService, error) {
	teamRepo, err := uow.GetRepositoryAs[TeamMemberRepository](u, uow.RepositoryName(repoargs.TeamMemberRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, uow.RepositoryName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	earningRepo, err := uow.GetRepositoryAs[EarningRepository](u, uow.RepositoryName(repoargs.EarningRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &TeamService{
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		earningRepo: earningRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "team",
		}),
		now: time.Now,
	}, nil
}

// SetClock подменяет источник времени.
func (t *TeamService) SetClock(now func() time.Time) *TeamService {
	t.now = now
	return t
}

// ListTeamMembers возвращает активных участников команды, отсортированных по имени, сверяя их с профилями
// пользователей.
//
// Алгоритм работы:
//  1. Читает активных участников. Ошибка чтения возвращается вызывающему.
//  2. Читает профили. Если профилей нет или их не удалось прочитать, возвращает участников как есть.
//  3. Имена профилей, которых нет среди участников (без учёта регистра), добавляются в команду с ролью Member.
//     Ошибка вставки не фатальна.
//  4. Результат фильтруется по именам профилей, если после фильтрации список не пуст.
func (t *TeamService) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := t.teamRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	profiles, err := t.profileRepo.ListOldestFirst(ctx)
	if err != nil {
		t.l.WithError(err).Warn("profiles are not available, returning team members as is")
		return members, nil
	}

	profileNames := make([]string, 0, len(profiles))
	profileSet := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if p.Name == nil {
			continue
		}
		name := strings.TrimSpace(*p.Name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, dup := profileSet[key]; dup {
			continue
		}
		profileSet[key] = struct{}{}
		profileNames = append(profileNames, name)
	}
	if len(profileNames) == 0 {
		return members, nil
	}

	existing := make(map[string]struct{}, len(members))
	for _, m := range members {
		existing[normalizeName(m.Name)] = struct{}{}
	}
	var missing []repoargs.TeamMemberCreate
	for _, name := range profileNames {
		if _, ok := existing[strings.ToLower(name)]; !ok {
			missing = append(missing, repoargs.TeamMemberCreate{
				Name:   name,
				Role:   domain.DefaultMemberRole,
				Active: true,
			})
		}
	}

	if len(missing) > 0 {
		members = t.insertMissing(ctx, members, missing)
	}

	filtered := make([]domain.TeamMember, 0, len(members))
	for _, m := range members {
		if _, ok := profileSet[normalizeName(m.Name)]; ok {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) > 0 {
		return filtered, nil
	}
	return members, nil
}

// insertMissing добавляет недостающих участников и перечитывает список. При любой ошибке возвращает current.
func (t *TeamService) insertMissing(
	ctx context.Context,
	current []domain.TeamMember,
	missing []repoargs.TeamMemberCreate,
) []domain.TeamMember {
	var insertErr error
	t.teamRepo.BatchCreate(ctx, missing, func(_ int, err error) {
		if err != nil && insertErr == nil {
			insertErr = err
		}
	})
	if insertErr != nil {
		t.l.WithError(insertErr).Warn("inserting missing team members")
		return current
	}

	refreshed, err := t.teamRepo.ListActive(ctx)
	if err != nil {
		t.l.WithError(err).Warn("re-reading team members")
		return current
	}
	return refreshed
}

// EarningsThisMonth возвращает сумму начислений каждого участника с начала текущего месяца.
// Участникам, которых не удалось найти в команде, вместо имени ставится начало их id.
func (t *TeamService) EarningsThisMonth(ctx context.Context) ([]domain.MemberEarnings, error) {
	now := t.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sums, err := t.earningRepo.SumByMemberSince(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("earnings this month: %w", err)
	}

	names := make(map[string]string)
	members, err := t.teamRepo.ListAll(ctx)
	if err != nil {
		t.l.WithError(err).Warn("team members are not available, falling back to ids")
	}
	for _, m := range members {
		names[m.ID.String()] = m.Name
	}

	result := make([]domain.MemberEarnings, len(sums))
	for i, s := range sums {
		id := s.MemberID.String()
		name, ok := names[id]
		if !ok || name == "" {
			name = id[:memberNameFallbackLen]
		}
		result[i] = domain.MemberEarnings{
			MemberID:    s.MemberID,
			MemberName:  name,
			AmountCents: s.AmountCents,
		}
	}
	return result, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
