// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func uniqueErr(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "users_email_key" {
			return domain.ErrEmailAlreadyExists
		}
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO users (
    name,
    email
) VALUES (
    $1, $2
) RETURNING id, name, email, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Name, arg.Email)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, uniqueErr(err)
	}

	return u, nil
}

const getQuery = `
SELECT 
	id, name, email, created_at 
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listQuery = `
SELECT 
	id, name, email, created_at 
FROM users
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns the specified page of users.
func (r *RepoPGS) List(ctx context.Context, limit int32, offset int64) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.User{}

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, u)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countQuery = `SELECT count(*) FROM users`

// Count returns the total number of users.
func (r *RepoPGS) Count(ctx context.Context) (int64, error) {
	l := zerolog.Ctx(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return total, nil
}

const updateQuery = `
UPDATE users
SET name = $2, email = $3
WHERE id = $1
RETURNING id, name, email, created_at
`

// Update replaces name and email of the user.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.Name, arg.Email)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}

		return domain.User{}, uniqueErr(err)
	}

	return u, nil
}

// deleteQuery locks the transaction rows of the user's accounts first, then the
// cascade takes the account rows.
const deleteQuery = `
WITH locked AS (
    SELECT t.id FROM transactions t
    JOIN accounts a ON a.id = t.account_id
    WHERE a.user_id = $1
    ORDER BY t.id
    FOR UPDATE OF t
)
DELETE FROM users
WHERE id = $1 AND (SELECT count(*) FROM locked) >= 0
`

// Delete removes the user with the given id.
//
// Accounts of the user and their transactions are removed by the ON DELETE CASCADE
// foreign keys in the same statement.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
