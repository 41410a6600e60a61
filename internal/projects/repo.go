package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	sugdomain "github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	PublicID  string    `json:"public_id"`
	Name      string    `json:"name"`
	Urgent    bool      `json:"is_urgent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Member struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	AddedAt     time.Time `json:"added_at"`
}

func (r *Repo) Create(ctx context.Context, userID, name string, urgent bool) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("proj")
		if err != nil {
			return nil, err
		}

		const q = `
with created as (
  insert into projects (public_id, owner_id, name, is_urgent)
  values ($1, $2::uuid, $3, $4)
  returning id, public_id, name, is_urgent, created_at, updated_at
), owner_membership as (
  insert into project_members (project_id, user_id, role)
  select id, $2::uuid, 'owner' from created
)
select public_id, name, is_urgent, created_at, updated_at from created;
`
		var p Project
		err = r.db.QueryRow(ctx, q, publicID, userID, name, urgent).
			Scan(&p.PublicID, &p.Name, &p.Urgent, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userID string) ([]Project, error) {
	const q = `
select p.public_id, p.name, p.is_urgent, p.created_at, p.updated_at
from projects p
join project_members m on m.project_id = p.id
where m.user_id = $1::uuid and p.deleted_at is null
order by p.created_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.PublicID, &p.Name, &p.Urgent, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Rename(ctx context.Context, userID, publicID, newName string) (*Project, error) {
	const q = `
update projects
set name = $3, updated_at = now()
where owner_id = $1::uuid and public_id = $2 and deleted_at is null
returning public_id, name, is_urgent, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userID, publicID, newName).
		Scan(&p.PublicID, &p.Name, &p.Urgent, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where owner_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) AddMember(ctx context.Context, publicID, userID, role string) (*Member, error) {
	const q = `
insert into project_members (project_id, user_id, role)
select p.id, $2::uuid, $3
from projects p
where p.public_id = $1 and p.deleted_at is null
on conflict (project_id, user_id) do update set role = excluded.role
returning user_id::text, role, added_at;
`
	var m Member
	err := r.db.QueryRow(ctx, q, publicID, userID, role).
		Scan(&m.UserID, &m.Role, &m.AddedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListMembers(ctx context.Context, publicID string) ([]Member, error) {
	const q = `
select m.user_id::text, coalesce(u.display_name, ''), m.role, m.added_at
from project_members m
join projects p on p.id = m.project_id
left join users u on u.id = m.user_id
where p.public_id = $1 and p.deleted_at is null
order by m.added_at asc;
`
	rows, err := r.db.Query(ctx, q, publicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Member, 0, 8)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ProjectRoster returns the membership store's candidate projection for
// the assignee ranker: role plus active and lifetime task counts.
func (r *Repo) ProjectRoster(ctx context.Context, publicID string) ([]sugdomain.CandidateProfile, error) {
	const q = `
select
  m.user_id::text,
  coalesce(u.display_name, ''),
  m.role,
  count(t.id) filter (where t.status not in ('done', 'cancelled')) as active_tasks,
  count(t.id) as total_tasks
from project_members m
join projects p on p.id = m.project_id
left join users u on u.id = m.user_id
left join tasks t on t.project_id = m.project_id
  and t.assignee_id = m.user_id
  and t.deleted_at is null
where p.public_id = $1 and p.deleted_at is null
group by m.user_id, u.display_name, m.role
order by m.user_id;
`
	rows, err := r.db.Query(ctx, q, publicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sugdomain.CandidateProfile, 0, 8)
	for rows.Next() {
		var c sugdomain.CandidateProfile
		var role string
		if err := rows.Scan(&c.UserID, &c.DisplayName, &role, &c.ActiveTasks, &c.TotalTasks); err != nil {
			return nil, err
		}
		c.Role = sugdomain.ProjectRole(role)
		out = append(out, c)
	}
	return out, rows.Err()
}
