// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Balance,
		&a.CreatedAt,
	)

	return a, err
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, user_id, name, balance, created_at
`

// AddBalance changes the account's balance by delta and returns the changed account.
//
// The increment happens in a single statement, so concurrent calls on the same
// account never lose updates.
func (r *RepoPGS) AddBalance(ctx context.Context, delta decimal.Decimal, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, delta, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "numeric_value_out_of_range" {
			return domain.Account{}, domain.ErrConstraintViolation
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const createQuery = `
INSERT INTO 
    accounts (user_id, name, balance)
VALUES
    ($1, $2, $3)
RETURNING id, user_id, name, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, createQuery, arg.UserID, arg.Name, arg.Balance))
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_user_id_fkey" {
				return domain.Account{}, domain.ErrOwnerNotFound
			}
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT 
	id, user_id, name, balance, created_at 
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT 
	id, user_id, name, balance, created_at 
FROM accounts
WHERE $1 = 0 OR user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified page of accounts, optionally of one user only.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
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

const countQuery = `
SELECT count(*) FROM accounts
WHERE $1 = 0 OR user_id = $1
`

// Count returns the number of accounts, optionally of one user only.
func (r *RepoPGS) Count(ctx context.Context, userID int32) (int64, error) {
	l := zerolog.Ctx(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return total, nil
}

const updateQuery = `
UPDATE accounts
SET 
	name = COALESCE($2, name),
	balance = COALESCE($3, balance)
WHERE id = $1
RETURNING id, user_id, name, balance, created_at
`

// Update changes only the supplied fields of the account.
//
// Setting the balance here bypasses the ledger and is meant for manual correction.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.Name, arg.Balance))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

// deleteQuery locks the account's transaction rows before the account row,
// matching the lock order of ledger operations.
const deleteQuery = `
WITH locked AS (
    SELECT id FROM transactions
    WHERE account_id = $1
    ORDER BY id
    FOR UPDATE
)
DELETE FROM accounts
WHERE id = $1 AND (SELECT count(*) FROM locked) >= 0
`

// Delete removes the account with the given id together with its transactions.
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
		return domain.ErrAccountNotFound
	}

	return nil
}
