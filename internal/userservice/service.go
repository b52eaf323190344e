// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"strings"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
)

// DefaultLimit is the page size of users listing when none is requested.
const DefaultLimit = 5

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int32) (domain.User, error)
	List(ctx context.Context, limit int32, offset int64) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, arg domain.UpdateUserParams) (domain.User, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create creates and returns user.
func (s *Service) Create(ctx context.Context, name, email string) (domain.User, error) {
	arg := domain.CreateUserParams{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}

	return s.repo.Create(ctx, arg)
}

// Get returns user by id.
func (s *Service) Get(ctx context.Context, id int32) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// List returns the requested page of users and its meta.
func (s *Service) List(ctx context.Context, page, limit int32) ([]domain.User, pagepkg.Meta, error) {
	p := pagepkg.New(page, limit, DefaultLimit)

	users, err := s.repo.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	return users, p.Meta(total), nil
}

// Update replaces name and email of the user.
func (s *Service) Update(ctx context.Context, id int32, name, email string) (domain.User, error) {
	arg := domain.UpdateUserParams{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}

	return s.repo.Update(ctx, arg)
}

// Delete removes the user together with its accounts and their transactions.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
