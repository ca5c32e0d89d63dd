package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, password_hash, role`

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	uow *UnitOfWork
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := r.uow.querier().QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetAll lista todos los usuarios.
func (r *UserRepo) GetAll(ctx context.Context) ([]*entity.User, error) {
	return r.Find(ctx, entity.UserFilter{})
}

// Find lista usuarios que cumplen el filtro.
func (r *UserRepo) Find(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	var w where
	if filter.Username != "" {
		w.add("username = $%d", filter.Username)
	}
	rows, err := r.uow.querier().Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Add registra la inserción del usuario.
func (r *UserRepo) Add(_ context.Context, u *entity.User) error {
	r.uow.register(change{key: u, apply: func(ctx context.Context, q Querier) (int64, error) {
		err := q.QueryRow(ctx,
			`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id`,
			u.Username, u.PasswordHash, u.Role,
		).Scan(&u.ID)
		if err != nil {
			return 0, translateError("insert user", err, domain.ErrAlreadyExists)
		}
		return 1, nil
	}})
	return nil
}

// Update registra la actualización de hash y rol.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.uow.register(change{key: u, apply: func(ctx context.Context, q Querier) (int64, error) {
		cmd, err := q.Exec(ctx, `UPDATE users SET password_hash = $2, role = $3 WHERE id = $1`,
			u.ID, u.PasswordHash, u.Role)
		if err != nil {
			return 0, fmt.Errorf("update user: %w", err)
		}
		return cmd.RowsAffected(), nil
	}})
	return nil
}
