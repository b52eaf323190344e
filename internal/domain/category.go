package domain

import (
	"errors"
	"time"
)

var (
	// ErrCategoryNotFound indicates that the category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryInUse indicates that transactions still reference the category.
	ErrCategoryInUse = errors.New("category is used by transactions")
	// ErrInvalidCategoryType indicates that the category type is neither INCOME nor EXPENSE.
	ErrInvalidCategoryType = errors.New("invalid category type")
)

// Category types.
const (
	CategoryIncome  = "INCOME"
	CategoryExpense = "EXPENSE"
)

// IsCategoryType returns true if t is a known category type.
func IsCategoryType(t string) bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category is reference data for transactions.
type Category struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryParams is the input data to create a category.
type CreateCategoryParams struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdateCategoryParams holds the replacement fields of a category.
type UpdateCategoryParams struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
