package users

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpsertUser struct {
	ID          string
	Email       string
	DisplayName string
}

// EnsureUser upserts the user's profile row. The id comes from the
// upstream identity provider and is trusted here.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (*Profile, error) {
	if u.ID == "" {
		return nil, fmt.Errorf("user id required")
	}

	const q = `
insert into users (id, email, display_name, updated_at)
values ($1::uuid, nullif($2,''), nullif($3,''), now())
on conflict (id) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = now()
returning id::text, coalesce(email, ''), coalesce(display_name, ''), updated_at;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, u.ID, u.Email, u.DisplayName).
		Scan(&p.ID, &p.Email, &p.DisplayName, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
