// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ledger"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/shopspring/decimal"
)

// DefaultLimit is the page size of accounts listing when none is requested.
const DefaultLimit = 10

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error)
	Count(ctx context.Context, userID int32) (int64, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns account of the given user.
//
// An empty balance opens the account at zero, otherwise balance is the baseline
// of the account ledger.
func (s *Service) Create(ctx context.Context, userID int32, name, balance string) (domain.Account, error) {
	baseline := decimal.Zero

	if balance != "" {
		var err error

		baseline, err = ledger.ParseAmount(balance)
		if err != nil {
			return domain.Account{}, err
		}
	}

	arg := domain.CreateAccountParams{
		UserID:  userID,
		Name:    strings.TrimSpace(name),
		Balance: baseline,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns the requested page of accounts. Zero userID lists accounts of all users.
func (s *Service) List(ctx context.Context, userID, page, limit int32) ([]domain.Account, pagepkg.Meta, error) {
	p := pagepkg.New(page, limit, DefaultLimit)

	arg := domain.ListAccountsParams{
		UserID: userID,
		Limit:  p.Limit,
		Offset: p.Offset(),
	}

	accounts, err := s.repo.List(ctx, arg)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	return accounts, p.Meta(total), nil
}

// Update changes the supplied fields of the account.
//
// A supplied balance overwrites the stored one and becomes the new baseline.
func (s *Service) Update(ctx context.Context, id int32, name, balance *string) (domain.Account, error) {
	arg := domain.UpdateAccountParams{ID: id}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		arg.Name = &trimmed
	}

	if balance != nil {
		d, err := ledger.ParseAmount(*balance)
		if err != nil {
			return domain.Account{}, err
		}

		arg.Balance = &d
	}

	return s.repo.Update(ctx, arg)
}

// Delete removes the account together with its transactions.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
