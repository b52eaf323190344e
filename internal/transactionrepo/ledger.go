package transactionrepo

import (
	"context"
	"errors"

	"github.com/go-petr/pet-finance/internal/accountrepo"
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ledger"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// txRepos holds the repositories bound to one db transaction.
type txRepos struct {
	transactions *RepoPGS
	accounts     *accountrepo.RepoPGS
}

// execTx executes fn within a database transaction.
//
// Any error returned by fn rolls the transaction back, so neither the transaction
// row nor the balance change of a failed operation is ever visible.
func (r *RepoPGS) execTx(ctx context.Context, fn func(q txRepos) error) error {
	l := zerolog.Ctx(ctx)

	if r.conn == nil {
		l.Error().Msg("transaction repo has no connection to begin transactions")
		return errorspkg.ErrInternal
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		if err := tx.Rollback(); err != nil {
			l.Error().Err(err).Send()
		}
	}()

	q := txRepos{
		transactions: NewTxRepoPGS(tx),
		accounts:     accountrepo.NewRepoPGS(tx),
	}

	if err := fn(q); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	committed = true

	return nil
}

// applyDelta is the only place balances change on behalf of transactions.
// A zero delta does not touch the account row and only reads it back.
func (q txRepos) applyDelta(ctx context.Context, accountID int32, m ledger.Mutation) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	delta := m.Delta()

	l.Debug().
		Str("mutation", m.Kind.String()).
		Int32("account_id", accountID).
		Str("delta", delta.String()).
		Msg("apply balance delta")

	if m.IsNoop() {
		return q.accounts.Get(ctx, accountID)
	}

	return q.accounts.AddBalance(ctx, delta, accountID)
}

// Create posts a new transaction and credits or debits the owning account.
//
// It inserts the transaction row and updates the account balance within
// a single db transaction.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	var result domain.TransactionTxResult

	err := r.execTx(ctx, func(q txRepos) error {
		var err error

		result.Transaction, err = q.transactions.insert(ctx, arg)
		if err != nil {
			return err
		}

		result.Account, err = q.applyDelta(ctx, arg.AccountID, ledger.Created(result.Transaction.Amount))

		return err
	})
	if err != nil {
		return domain.TransactionTxResult{}, err
	}

	return result, nil
}

// Update changes the supplied fields of a transaction and adjusts the owning
// account by the difference between the new and the stored amount.
//
// The stored row is locked first, so concurrent updates or deletes of the same
// transaction are applied one after another.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateTransactionParams) (domain.TransactionTxResult, error) {
	var result domain.TransactionTxResult

	err := r.execTx(ctx, func(q txRepos) error {
		current, err := q.transactions.getForUpdate(ctx, arg.ID)
		if err != nil {
			return err
		}

		next := merge(current, arg)

		result.Account, err = q.applyDelta(ctx, current.AccountID, ledger.Updated(current.Amount, next.Amount))
		if err != nil {
			return err
		}

		result.Transaction, err = q.transactions.update(ctx, next)

		return err
	})
	if err != nil {
		return domain.TransactionTxResult{}, err
	}

	return result, nil
}

// Delete removes a transaction and reverses its effect on the owning account.
func (r *RepoPGS) Delete(ctx context.Context, id int64) (domain.TransactionTxResult, error) {
	var result domain.TransactionTxResult

	err := r.execTx(ctx, func(q txRepos) error {
		var err error

		result.Transaction, err = q.transactions.remove(ctx, id)
		if err != nil {
			return err
		}

		result.Account, err = q.applyDelta(ctx, result.Transaction.AccountID, ledger.Deleted(result.Transaction.Amount))
		if errors.Is(err, domain.ErrAccountNotFound) {
			// The row references its account through a foreign key.
			return errorspkg.ErrInternal
		}

		return err
	})
	if err != nil {
		return domain.TransactionTxResult{}, err
	}

	return result, nil
}

// merge applies the supplied fields of arg to the stored transaction.
func merge(current domain.Transaction, arg domain.UpdateTransactionParams) domain.Transaction {
	next := current

	if arg.Amount != nil {
		next.Amount = *arg.Amount
	}

	if arg.CategoryID != nil {
		next.CategoryID = *arg.CategoryID
	}

	if arg.Description != nil {
		next.Description = *arg.Description
	}

	return next
}
