package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
)

const (
	getUserByUsername = `
SELECT id, username, password_hash, role, created_at, updated_at
FROM users
WHERE username = ?`

	createUser = `
INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

	updateUserRole = `
UPDATE users SET role = ?, updated_at = ? WHERE username = ?`

	countUsers = `SELECT COUNT(*) FROM users`
)

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.q.QueryRowContext(ctx, getUserByUsername, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, createUser,
		u.ID,
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateRole(ctx context.Context, username string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx, updateUserRole, string(role), time.Now().UTC(), username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
