// Package transactionrepo manages repository layer of transactions.
//
// Rows of the transactions table are never written outside of the ledger
// operations in ledger.go, which pair every row change with its balance delta.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an open db transaction.
// Only row level queries are usable on it.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

func scanTransaction(row interface{ Scan(...any) error }) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.CategoryID,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
	)

	return t, err
}

// writeErr translates integrity failures of insert and update statements.
func writeErr(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "transactions_account_id_fkey":
			return domain.ErrAccountNotFound
		case "transactions_category_id_fkey":
			return domain.ErrCategoryNotFound
		}

		switch pqErr.Code.Class() {
		case "23", "22":
			// integrity_constraint_violation, data_exception
			return domain.ErrConstraintViolation
		}
	}

	return errorspkg.ErrInternal
}

const insertQuery = `
INSERT INTO
    transactions (account_id, category_id, amount, description)
VALUES
    ($1, $2, $3, $4)
RETURNING id, account_id, category_id, amount, description, created_at
`

func (r *RepoPGS) insert(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, insertQuery, arg.AccountID, arg.CategoryID, arg.Amount, arg.Description)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("insert(ctx, %+v)", arg)
		return domain.Transaction{}, writeErr(err)
	}

	return t, nil
}

const getQuery = `
SELECT 
	id, account_id, category_id, amount, description, created_at 
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// getForUpdate reads the row and locks it until the surrounding db transaction ends.
func (r *RepoPGS) getForUpdate(ctx context.Context, id int64) (domain.Transaction, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const updateQuery = `
UPDATE transactions
SET category_id = $2, amount = $3, description = $4
WHERE id = $1
RETURNING id, account_id, category_id, amount, description, created_at
`

func (r *RepoPGS) update(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, t.ID, t.CategoryID, t.Amount, t.Description)

	updated, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("update(ctx, %+v)", t)

		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		return domain.Transaction{}, writeErr(err)
	}

	return updated, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
RETURNING id, account_id, category_id, amount, description, created_at
`

// remove deletes the row and returns it as it was.
// A concurrent second delete of the same id gets ErrTransactionNotFound.
func (r *RepoPGS) remove(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, deleteQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT 
	id, account_id, category_id, amount, description, created_at 
FROM transactions
WHERE $1 = 0 OR account_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

// List returns the specified page of transactions, optionally of one account only.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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
SELECT count(*) FROM transactions
WHERE $1 = 0 OR account_id = $1
`

// Count returns the number of transactions, optionally of one account only.
func (r *RepoPGS) Count(ctx context.Context, accountID int32) (int64, error) {
	l := zerolog.Ctx(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, accountID).Scan(&total); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return total, nil
}
