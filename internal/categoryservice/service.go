// Package categoryservice manages business logic layer of categories.
package categoryservice

import (
	"context"
	"strings"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
)

// DefaultLimit is the page size of categories listing when none is requested.
const DefaultLimit = 20

// Repo provides data access layer interface needed by category service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package categoryservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateCategoryParams) (domain.Category, error)
	Get(ctx context.Context, id int32) (domain.Category, error)
	List(ctx context.Context, limit int32, offset int64) ([]domain.Category, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, arg domain.UpdateCategoryParams) (domain.Category, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates category service layer logic.
type Service struct {
	repo Repo
}

// New returns category service.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

// Create creates and returns category.
func (s *Service) Create(ctx context.Context, name, categoryType string) (domain.Category, error) {
	if !domain.IsCategoryType(categoryType) {
		return domain.Category{}, domain.ErrInvalidCategoryType
	}

	arg := domain.CreateCategoryParams{
		Name: strings.TrimSpace(name),
		Type: categoryType,
	}

	return s.repo.Create(ctx, arg)
}

// Get returns category by id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Category, error) {
	return s.repo.Get(ctx, id)
}

// List returns the requested page of categories and its meta.
func (s *Service) List(ctx context.Context, page, limit int32) ([]domain.Category, pagepkg.Meta, error) {
	p := pagepkg.New(page, limit, DefaultLimit)

	categories, err := s.repo.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pagepkg.Meta{}, err
	}

	return categories, p.Meta(total), nil
}

// Update replaces name and type of the category.
func (s *Service) Update(ctx context.Context, id int32, name, categoryType string) (domain.Category, error) {
	if !domain.IsCategoryType(categoryType) {
		return domain.Category{}, domain.ErrInvalidCategoryType
	}

	arg := domain.UpdateCategoryParams{
		ID:   id,
		Name: strings.TrimSpace(name),
		Type: categoryType,
	}

	return s.repo.Update(ctx, arg)
}

// Delete removes the category. Categories referenced by transactions are kept.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}
