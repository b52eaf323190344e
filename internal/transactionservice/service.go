// Package transactionservice manages business logic layer of the transactions ledger.
package transactionservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ledger"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/rs/zerolog"
)

// DefaultLimit is the page size of transactions listing when none is requested.
const DefaultLimit = 20

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Count(ctx context.Context, accountID int32) (int64, error)
	Update(ctx context.Context, arg domain.UpdateTransactionParams) (domain.TransactionTxResult, error)
	Delete(ctx context.Context, id int64) (domain.TransactionTxResult, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Create posts a transaction of amount to the account.
//
// The amount is parsed before any storage access, a malformed amount never
// reaches the ledger.
func (s *Service) Create(ctx context.Context, accountID, categoryID int32, amount, description string) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	parsed, err := ledger.ParseAmount(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.TransactionTxResult{}, err
	}

	arg := domain.CreateTransactionParams{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      parsed,
		Description: description,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns transaction by id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.repo.Get(ctx, id)
}

// List returns the requested page of transactions. Zero accountID lists all transactions.
func (s *Service) List(ctx context.Context, accountID, page, limit int32) ([]domain.Transaction, pagepkg.Meta, error) {
	p := pagepkg.New(page, limit, DefaultLimit)

	arg := domain.ListTransactionsParams{
		AccountID: accountID,
		Limit:     p.Limit,
		Offset:    p.Offset(),
	}

	transactions, err := s.repo.List(ctx, arg)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	total, err := s.repo.Count(ctx, accountID)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	return transactions, p.Meta(total), nil
}

// Update changes the supplied fields of the transaction. Nil arguments are left untouched.
func (s *Service) Update(ctx context.Context, id int64, amount *string, categoryID *int32, description *string) (domain.TransactionTxResult, error) {
	arg := domain.UpdateTransactionParams{
		ID:          id,
		CategoryID:  categoryID,
		Description: description,
	}

	if amount != nil {
		parsed, err := ledger.ParseAmount(*amount)
		if err != nil {
			zerolog.Ctx(ctx).Info().Err(err).Str("amount", *amount).Send()
			return domain.TransactionTxResult{}, err
		}

		arg.Amount = &parsed
	}

	return s.repo.Update(ctx, arg)
}

// Delete removes the transaction and reverses its effect on the account balance.
func (s *Service) Delete(ctx context.Context, id int64) (domain.TransactionTxResult, error) {
	return s.repo.Delete(ctx, id)
}
