// Package categoryrepo manages repository layer of categories.
package categoryrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates category repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns category RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var c domain.Category

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Type,
		&c.CreatedAt,
	)

	return c, err
}

const createQuery = `
INSERT INTO
    categories (name, type)
VALUES
    ($1, $2)
RETURNING id, name, type, created_at
`

// Create creates the category and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCategoryParams) (domain.Category, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCategory(r.db.QueryRowContext(ctx, createQuery, arg.Name, arg.Type))
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Category{}, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT id, name, type, created_at FROM categories
WHERE id = $1
`

// Get returns the category with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Category, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCategory(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Category{}, domain.ErrCategoryNotFound
		}

		return domain.Category{}, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT id, name, type, created_at FROM categories
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns the specified page of categories.
func (r *RepoPGS) List(ctx context.Context, limit int32, offset int64) ([]domain.Category, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Category{}

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
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

const countQuery = `SELECT count(*) FROM categories`

// Count returns the total number of categories.
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
UPDATE categories
SET name = $2, type = $3
WHERE id = $1
RETURNING id, name, type, created_at
`

// Update replaces name and type of the category.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateCategoryParams) (domain.Category, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanCategory(r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.Name, arg.Type))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Category{}, domain.ErrCategoryNotFound
		}

		return domain.Category{}, errorspkg.ErrInternal
	}

	return c, nil
}

const deleteQuery = `
DELETE FROM categories
WHERE id = $1
`

// Delete removes the category unless transactions still reference it.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "transactions_category_id_fkey" {
			return domain.ErrCategoryInUse
		}

		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}
