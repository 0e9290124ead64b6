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

type teamMemberRow struct {
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
	Role   string    `db:"role"`
	Active bool      `db:"active"`
}

type profileRow struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      *string   `db:"name"`
	AvatarURL *string   `db:"avatar_url"`
}

type TeamMemberRepository struct {
	db uow.DBTX
}

func NewTeamMemberRepository(db uow.DBTX) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// ListActive возвращает активных участников, отсортированных по имени.
func (r *TeamMemberRepository) ListActive(ctx context.Context) ([]domain.TeamMember, error) {
	rows, _ := r.db.Query(ctx, `
SELECT id, name, role, active
FROM team_members
WHERE active
ORDER BY name`)
	return collectTeamMembers(rows, "listing active team members")
}

// ListAll возвращает всех участников, включая неактивных.
func (r *TeamMemberRepository) ListAll(ctx context.Context) ([]domain.TeamMember, error) {
	rows, _ := r.db.Query(ctx, `SELECT id, name, role, active FROM team_members ORDER BY name`)
	return collectTeamMembers(rows, "listing team members")
}

func (r *TeamMemberRepository) BatchCreate(
	ctx context.Context,
	members []repoargs.TeamMemberCreate,
	fn repoargs.BatchExecQueryRow,
) {
	batch := new(pgx.Batch)
	for _, m := range members {
		batch.Queue(`INSERT INTO team_members (name, role, active) VALUES ($1, $2, $3)`, m.Name, m.Role, m.Active)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for i, m := range members {
		_, err := br.Exec()
		fn(i, convertErr(err, "creating team member `%s`", m.Name))
	}
}

func collectTeamMembers(rows pgx.Rows, msg string) ([]domain.TeamMember, error) {
	dbMembers, err := pgx.CollectRows(rows, pgx.RowToStructByName[teamMemberRow])
	if err != nil {
		return nil, convertErr(err, "%s", msg)
	}
	var members = make([]domain.TeamMember, len(dbMembers))
	for i, m := range dbMembers {
		members[i] = domain.TeamMember(m)
	}
	return members, nil
}

type ProfileRepository struct {
	db uow.DBTX
}

func NewProfileRepository(db uow.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ListOldestFirst возвращает профили пользователей в порядке создания.
func (r *ProfileRepository) ListOldestFirst(ctx context.Context) ([]domain.Profile, error) {
	rows, _ := r.db.Query(ctx, `SELECT id, created_at, name, avatar_url FROM profiles ORDER BY created_at`)
	dbProfiles, err := pgx.CollectRows(rows, pgx.RowToStructByName[profileRow])
	if err != nil {
		return nil, convertErr(err, "listing profiles")
	}
	var profiles = make([]domain.Profile, len(dbProfiles))
	for i, p := range dbProfiles {
		profiles[i] = domain.Profile(p)
	}
	return profiles, nil
}
